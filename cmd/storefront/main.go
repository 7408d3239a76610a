package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"shopauth/internal/session/adapters/httpapi"
	navadapter "shopauth/internal/session/adapters/nav"
	"shopauth/internal/session/adapters/notify"
	"shopauth/internal/session/adapters/store"
	"shopauth/internal/session/app"
	sessioncfg "shopauth/internal/session/config"
	"shopauth/internal/session/observability"
	portstore "shopauth/internal/session/ports/store"
	"shopauth/internal/session/token"
	"shopauth/internal/storefront/config"
	httpServer "shopauth/internal/storefront/http"
	"shopauth/pkg/logger"
	"shopauth/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "STOREFRONT_LOGGER_MODE"
	EnvLoggerLevel = "STOREFRONT_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrCreateTokenStore     = "failed to create token store"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrWatchTokenStore      = "token store watch stopped with error"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "storefront service started"
	LogServiceShutdownDone = "storefront service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitTokenStore      = "initializing token store"
	LogInitSessionCore     = "initializing session core"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogWatchingStore       = "watching token store for external changes"
)

const notificationBuffer = 16

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		sessionCfg, err := sessioncfg.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitTokenStore, zap.String("backend", sessionCfg.Storage.Backend))
		tokenStore, closeStore, err := newTokenStore(ctx, &sessionCfg.Storage)
		if err != nil {
			log.Error(ctx, ErrCreateTokenStore, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitSessionCore)
		decoder := token.NewDecoder()
		state := app.NewSessionState(ctx, tokenStore, decoder)
		notifier := notify.NewChannelNotifier(notificationBuffer)
		navigator := navadapter.NewLogNavigator()

		registry := prometheus.NewRegistry()
		metrics := observability.NewMetrics(registry)

		client := httpapi.NewClient(&sessionCfg.API, tokenStore, notifier,
			app.NewSessionInvalidator(tokenStore, state), metrics)

		authUsecase := app.NewAuthUsecase(client, tokenStore, state, decoder,
			notifier, navigator, metrics, sessionCfg.PostRegister)
		userUsecase := app.NewUserUsecase(client, state, notifier)
		guard := app.NewRouteGuard(state, navigator)
		checker := app.NewEmailChecker(client, sessionCfg.API.GetEmailCheckDebounce(), metrics)

		watchCtx, stopWatch := context.WithCancel(ctx)
		defer stopWatch()
		if watchable, ok := tokenStore.(portstore.Watchable); ok && sessionCfg.Storage.Watch {
			log.Info(ctx, LogWatchingStore)
			go func() {
				if err := state.WatchStore(watchCtx, watchable); err != nil {
					log.Error(watchCtx, ErrWatchTokenStore, zap.Error(err))
				}
			}()
		}

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(fiberApp, httpServer.Deps{
			Auth:     authUsecase,
			Users:    userUsecase,
			State:    state,
			Guard:    guard,
			Checker:  checker,
			Notifier: notifier,
			Registry: registry,
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// Остановка наблюдения за хранилищем.
			func(ctx context.Context) error {
				stopWatch()
				return nil
			},
			// Закрытие хранилища токенов.
			func(ctx context.Context) error {
				if closeStore != nil {
					log.Info(ctx, "Closing token store")
					return closeStore()
				}
				return nil
			},
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// newTokenStore создает хранилище токенов по конфигурации. Второе
// значение - функция закрытия ресурсов, может быть nil.
func newTokenStore(ctx context.Context, cfg *sessioncfg.StorageConfig) (portstore.TokenStore, func() error, error) {
	switch cfg.Backend {
	case sessioncfg.StorageBackendMemory:
		return store.NewMemoryStore(), nil, nil
	case sessioncfg.StorageBackendRedis:
		redisStore, err := store.NewRedisStore(ctx, &cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return redisStore, redisStore.Close, nil
	default:
		path, err := cfg.ResolvePath()
		if err != nil {
			return nil, nil, err
		}
		fileCfg := *cfg
		fileCfg.Path = path

		fileStore, err := store.NewFileStore(&fileCfg)
		if err != nil {
			return nil, nil, err
		}
		return fileStore, nil, nil
	}
}
