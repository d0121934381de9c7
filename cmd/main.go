package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"filemanager/internal/config"
	"filemanager/internal/handler"
	"filemanager/internal/logger"
	"filemanager/internal/repository"
	"filemanager/internal/service"
	"filemanager/internal/service/s3"
	"filemanager/internal/service/search"
)

func connectWithRetry(dsn string, maxAttempts int, delay time.Duration, log *zap.Logger) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	for i := 0; i < maxAttempts; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return db, nil
		}

		log.Warn("failed to connect to database",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxAttempts),
			zap.Error(err),
		)
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", maxAttempts, err)
}

func runMigrations(cfg *config.Config, log *zap.Logger) error {
	var (
		m   *migrate.Migrate
		err error
	)
	for i := 0; i < 5; i++ {
		m, err = migrate.New("file://migrations", cfg.Database.GetURL())
		if err == nil {
			break
		}
		log.Warn("failed to create migrate instance", zap.Int("attempt", i+1), zap.Error(err))
		time.Sleep(time.Second * 5)
	}
	if err != nil {
		return fmt.Errorf("failed to create migrate instance after retries: %w", err)
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if dirty {
		log.Warn("found dirty database state, forcing version", zap.Uint("version", version))
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force version: %w", err)
		}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func main() {
	// Загружаем конфигурацию
	appConfig, err := config.NewConfig(".app.env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(appConfig.Log.Level, appConfig.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Неизвестный драйвер отсекается при загрузке конфигурации
	backend, err := appConfig.Backend()
	if err != nil {
		log.Fatal("invalid storage driver", zap.Error(err))
	}
	log.Info("storage backend resolved",
		zap.String("driver", appConfig.Storage.Driver),
		zap.Stringer("backend", backend),
	)

	// Подключаемся к базе данных
	db, err := connectWithRetry(appConfig.Database.GetDSN(), 5, time.Second*5, log)
	if err != nil {
		log.Fatal("failed to connect to database after retries", zap.Error(err))
	}
	defer db.Close()

	if err := runMigrations(appConfig, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Клиент S3 нужен только для подписи ссылок объектного хранилища
	var signer s3.Signer
	if backend == service.BackendObjectStore {
		s3Client, err := s3.NewClient(&appConfig.S3, log)
		if err != nil {
			log.Fatal("failed to create S3 client", zap.Error(err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := s3Client.Ping(ctx); err != nil {
			log.Warn("object storage is not reachable", zap.Error(err))
		}
		cancel()

		signer = s3Client
	}

	// Инициализация репозиториев
	fileRepo := repository.NewFileRepository(db)
	folderRepo := repository.NewFolderRepository(db)
	shareRepo := repository.NewShareRepository(db)

	// Инициализация сервисов
	urlSigner := service.NewURLSigner(appConfig.Server.BaseURL, signer)
	indexer := search.NewIndexer(appConfig.Search.Workers, log)
	permissionService := service.NewPermissionService(shareRepo, folderRepo)
	fileService := service.NewFileService(
		fileRepo,
		folderRepo,
		permissionService,
		urlSigner,
		indexer,
		backend,
		appConfig.Server.DateLayout,
		log,
	)
	folderService := service.NewFolderService(folderRepo, fileRepo, permissionService, fileService, log)
	trashService := service.NewTrashService(fileRepo, permissionService, fileService, log)
	shareService := service.NewShareService(shareRepo, fileRepo, folderRepo, permissionService, log)

	// Инициализация хендлеров
	router := handler.NewRouter(handler.Handlers{
		File:   handler.NewFileHandler(fileService, trashService, appConfig.Storage.LocalRoot, log),
		Folder: handler.NewFolderHandler(folderService, fileService, log),
		Trash:  handler.NewTrashHandler(trashService, log),
		Share:  handler.NewShareHandler(shareService, log),
	})

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", appConfig.Server.Port),
		Handler: router,
	}

	// Канал для сигналов завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("starting HTTP server", zap.String("port", appConfig.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	// Запускаем очистку просроченных ссылок
	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := shareService.CleanupExpired(cleanupCtx); err != nil {
					log.Error("error during share cleanup", zap.Error(err))
				}
			case <-cleanupCtx.Done():
				return
			}
		}
	}()

	// Ожидаем сигнал завершения
	<-quit
	log.Info("shutting down server")
	stopCleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited properly")
}
