package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"filemanager/internal/service"
	"filemanager/internal/service/s3"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"Server"`
	Database DatabaseConfig `mapstructure:"Database"`
	Storage  StorageConfig  `mapstructure:"Storage"`
	S3       s3.Config      `mapstructure:"S3"`
	Log      LogConfig      `mapstructure:"Log"`
	Search   SearchConfig   `mapstructure:"Search"`
}

type ServerConfig struct {
	Port       string `mapstructure:"Port"`
	BaseURL    string `mapstructure:"BaseURL"`
	DateLayout string `mapstructure:"DateLayout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"Host"`
	Port     string `mapstructure:"Port"`
	User     string `mapstructure:"User"`
	Password string `mapstructure:"Password"`
	Name     string `mapstructure:"Name"`
	SSLMode  string `mapstructure:"SSLMode"`
}

// StorageConfig выбирает драйвер хранилища: local, s3 или spaces
type StorageConfig struct {
	Driver    string `mapstructure:"Driver"`
	LocalRoot string `mapstructure:"LocalRoot"`
}

type LogConfig struct {
	Level  string `mapstructure:"Level"`
	Format string `mapstructure:"Format"`
}

type SearchConfig struct {
	Workers int `mapstructure:"Workers"`
}

var envBindings = map[string]string{
	"Server.Port":        "HTTP_PORT",
	"Server.BaseURL":     "APP_URL",
	"Server.DateLayout":  "DATE_LAYOUT",
	"Database.Host":      "DATABASE_HOST",
	"Database.Port":      "DATABASE_PORT",
	"Database.User":      "DATABASE_USER",
	"Database.Password":  "DATABASE_PASSWORD",
	"Database.Name":      "DATABASE_NAME",
	"Database.SSLMode":   "DATABASE_SSLMODE",
	"Storage.Driver":     "STORAGE_DRIVER",
	"Storage.LocalRoot":  "STORAGE_LOCAL_ROOT",
	"S3.AccessKeyID":     "S3_KEY",
	"S3.SecretAccessKey": "S3_SECRET",
	"S3.Bucket":          "S3_BUCKET",
	"S3.Region":          "S3_REGION",
	"S3.Endpoint":        "S3_ENDPOINT",
	"S3.UsePathStyle":    "S3_USE_PATH_STYLE",
	"S3.MaxRetries":      "S3_MAX_RETRIES",
	"S3.RetryInterval":   "S3_RETRY_INTERVAL",
	"Log.Level":          "LOG_LEVEL",
	"Log.Format":         "LOG_FORMAT",
	"Search.Workers":     "SEARCH_WORKERS",
}

func NewConfig(path string) (*Config, error) {
	v := viper.New()

	// Устанавливаем файл конфигурации
	v.SetConfigFile(path)

	// Привязываем переменные окружения
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	// Установка значений по умолчанию
	v.SetDefault("Server.Port", "2525")
	v.SetDefault("Server.DateLayout", service.DefaultDateLayout)
	v.SetDefault("Database.SSLMode", "disable")
	v.SetDefault("Storage.LocalRoot", "./storage")
	v.SetDefault("S3.RetryInterval", 200*time.Millisecond)
	v.SetDefault("Log.Level", "info")
	v.SetDefault("Log.Format", "json")
	v.SetDefault("Search.Workers", 8)

	// Файл необязателен, остальное берется из переменных окружения
	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Warning: using only environment variables: %v\n", err)
	}

	// Ключи .env-файла совпадают с именами переменных окружения.
	// Значения из файла используются, если переменная окружения не задана.
	for key, env := range envBindings {
		if v.InConfig(env) {
			v.SetDefault(key, v.Get(env))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет конфигурацию. Неизвестный драйвер хранилища считается фатальной ошибкой запуска.
func (c *Config) Validate() error {
	backend, err := c.Backend()
	if err != nil {
		return fmt.Errorf("invalid storage configuration: %w", err)
	}

	if c.Database.Host == "" ||
		c.Database.Port == "" ||
		c.Database.User == "" ||
		c.Database.Password == "" ||
		c.Database.Name == "" {
		return fmt.Errorf("database configuration is incomplete: host=%s, port=%s, user=%s, name=%s",
			c.Database.Host, c.Database.Port, c.Database.User, c.Database.Name)
	}

	switch backend {
	case service.BackendLocal:
		if c.Server.BaseURL == "" {
			return fmt.Errorf("Server.BaseURL is required for the local storage driver")
		}
	case service.BackendObjectStore:
		if err := c.S3.Validate(); err != nil {
			return fmt.Errorf("invalid s3 configuration: %w", err)
		}
	}

	return nil
}

// Backend возвращает семейство драйвера хранилища
func (c *Config) Backend() (service.BackendKind, error) {
	return service.ResolveBackend(c.Storage.Driver)
}

func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Name,
		c.SSLMode,
	)
}

func (c *DatabaseConfig) GetURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
		c.SSLMode,
	)
}
