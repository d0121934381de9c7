package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filemanager/internal/service"
)

func setDatabaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_HOST", "localhost")
	t.Setenv("DATABASE_PORT", "5432")
	t.Setenv("DATABASE_USER", "filemanager")
	t.Setenv("DATABASE_PASSWORD", "secret")
	t.Setenv("DATABASE_NAME", "filemanager")
}

func missingFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestNewConfig_LocalDriverFromEnv(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("STORAGE_DRIVER", "local")
	t.Setenv("APP_URL", "https://files.example.com")

	cfg, err := NewConfig(missingFile(t))
	require.NoError(t, err)

	backend, err := cfg.Backend()
	require.NoError(t, err)
	assert.Equal(t, service.BackendLocal, backend)
	assert.Equal(t, "https://files.example.com", cfg.Server.BaseURL)
	assert.Equal(t, "2525", cfg.Server.Port)
	assert.Equal(t, service.DefaultDateLayout, cfg.Server.DateLayout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 8, cfg.Search.Workers)
}

func TestNewConfig_ObjectStoreDrivers(t *testing.T) {
	for _, driver := range []string{"s3", "spaces"} {
		t.Run(driver, func(t *testing.T) {
			setDatabaseEnv(t)
			t.Setenv("STORAGE_DRIVER", driver)
			t.Setenv("S3_KEY", "key")
			t.Setenv("S3_SECRET", "secret")
			t.Setenv("S3_BUCKET", "files")
			t.Setenv("S3_REGION", "fra1")
			t.Setenv("S3_RETRY_INTERVAL", "500ms")

			cfg, err := NewConfig(missingFile(t))
			require.NoError(t, err)

			backend, err := cfg.Backend()
			require.NoError(t, err)
			assert.Equal(t, service.BackendObjectStore, backend)
			assert.Equal(t, "files", cfg.S3.Bucket)
			assert.Equal(t, 500*time.Millisecond, cfg.S3.RetryInterval)
		})
	}
}

func TestNewConfig_UnknownDriverIsFatal(t *testing.T) {
	for _, driver := range []string{"", "ftp", "S3"} {
		t.Run(driver, func(t *testing.T) {
			setDatabaseEnv(t)
			t.Setenv("STORAGE_DRIVER", driver)
			t.Setenv("APP_URL", "https://files.example.com")

			_, err := NewConfig(missingFile(t))
			assert.ErrorIs(t, err, service.ErrUnknownDriver)
		})
	}
}

func TestNewConfig_ObjectStoreRequiresCredentials(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("STORAGE_DRIVER", "s3")

	_, err := NewConfig(missingFile(t))
	assert.ErrorContains(t, err, "invalid s3 configuration")
}

func TestNewConfig_FromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.env")
	content := "DATABASE_HOST=db\n" +
		"DATABASE_PORT=5432\n" +
		"DATABASE_USER=filemanager\n" +
		"DATABASE_PASSWORD=secret\n" +
		"DATABASE_NAME=filemanager\n" +
		"STORAGE_DRIVER=local\n" +
		"APP_URL=http://localhost:2525\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("HTTP_PORT", "8080")

	cfg, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "http://localhost:2525", cfg.Server.BaseURL)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "local", cfg.Storage.Driver)
}

func TestDatabaseConfig_GetURL(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "fm", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/fm?sslmode=disable", db.GetURL())
}
