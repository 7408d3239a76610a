// Package main предоставляет точку входа утилиты shopctl - терминального
// клиента магазина, работающего с той же сессией, что и витрина.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"shopauth/internal/session/adapters/httpapi"
	"shopauth/internal/session/adapters/store"
	"shopauth/internal/session/app"
	"shopauth/internal/session/app/dto"
	sessioncfg "shopauth/internal/session/config"
	"shopauth/internal/session/observability"
	"shopauth/internal/session/ports/nav"
	portstore "shopauth/internal/session/ports/store"
	"shopauth/internal/session/token"
	"shopauth/pkg/logger"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "SHOPCTL_LOGGER_MODE"
	EnvLoggerLevel = "SHOPCTL_LOGGER_LEVEL"
)

const (
	appName         = "shopctl"
	defaultLogLevel = "error"
)

const emailCheckWait = 5 * time.Second

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootCmd собирает дерево команд терминального клиента.
func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          appName,
		Short:        "Терминальный клиент магазина",
		Long:         "shopctl управляет сессией покупателя: вход, регистрация,\nобновление токенов и просмотр профиля. Сессия хранится в файле\nи разделяется с другими клиентами на той же машине.",
		SilenceUsage: true,
	}

	cmd.AddCommand(loginCmd())
	cmd.AddCommand(registerCmd())
	cmd.AddCommand(logoutCmd())
	cmd.AddCommand(refreshCmd())
	cmd.AddCommand(whoamiCmd())
	cmd.AddCommand(profileCmd())
	cmd.AddCommand(checkEmailCmd())

	return cmd
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Вход в магазин",
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := buildCore(cmd.Context())
			if err != nil {
				return err
			}
			defer core.close()

			return core.auth.Login(cmd.Context(), &dto.Credentials{Email: email, Password: password})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email покупателя")
	cmd.Flags().StringVar(&password, "password", "", "Пароль")

	return cmd
}

func registerCmd() *cobra.Command {
	var req dto.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового покупателя",
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := buildCore(cmd.Context())
			if err != nil {
				return err
			}
			defer core.close()

			return core.auth.Register(cmd.Context(), &req)
		},
	}

	cmd.Flags().StringVar(&req.DisplayName, "name", "", "Отображаемое имя")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email покупателя")
	cmd.Flags().StringVar(&req.Password, "password", "", "Пароль")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Телефон (необязательно)")
	cmd.Flags().StringVar(&req.DateOfBirth, "birth-date", "", "Дата рождения (необязательно)")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Выход из магазина",
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := buildCore(cmd.Context())
			if err != nil {
				return err
			}
			defer core.close()

			return core.auth.Logout(cmd.Context())
		},
	}
}

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Обновление пары токенов",
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := buildCore(cmd.Context())
			if err != nil {
				return err
			}
			defer core.close()

			if err := core.auth.Refresh(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Token pair refreshed")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Кто вошел в систему",
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := buildCore(cmd.Context())
			if err != nil {
				return err
			}
			defer core.close()

			claims := core.state.Claims()
			if claims == nil {
				fmt.Println("Not signed in")
				return nil
			}

			fmt.Printf("%s (%s), role %s\n", claims.DisplayName, claims.UserID, claims.Role)
			return nil
		},
	}
}

func profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Профиль текущего покупателя",
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := buildCore(cmd.Context())
			if err != nil {
				return err
			}
			defer core.close()

			resolution, err := core.users.Resolve(cmd.Context())
			if err != nil {
				return err
			}

			if !resolution.Resolved() {
				if resolution.Redirect == nav.RouteLogin {
					fmt.Println("Not signed in, run: shopctl login")
				}
				return nil
			}

			p := resolution.Profile
			fmt.Printf("Name:  %s\nEmail: %s\nRole:  %s\n", p.DisplayName, p.Email, p.Role)
			if p.Phone != "" {
				fmt.Printf("Phone: %s\n", p.Phone)
			}
			if p.DateOfBirth != "" {
				fmt.Printf("Birth: %s\n", p.DateOfBirth)
			}
			return nil
		},
	}
}

func checkEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-email <email>",
		Short: "Проверка доступности email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := buildCore(cmd.Context())
			if err != nil {
				return err
			}
			defer core.close()

			core.checker.Submit(cmd.Context(), args[0])

			select {
			case result := <-core.checker.Results():
				switch {
				case !result.Verified:
					fmt.Println("Could not verify email availability")
				case result.Available:
					fmt.Println("Email is available")
				default:
					fmt.Println("Email is already taken")
				}
				return nil
			case <-time.After(emailCheckWait):
				return fmt.Errorf("email check timed out")
			}
		},
	}
}

// core - собранное сессионное ядро терминального клиента.
type core struct {
	auth    *app.AuthUsecase
	users   *app.UserUsecase
	state   *app.SessionState
	checker *app.EmailChecker
	close   func()
}

// buildCore инициализирует логгер, конфигурацию и сессионное ядро
// поверх файлового хранилища в каталоге конфигурации пользователя.
func buildCore(ctx context.Context) (*core, error) {
	env := logger.Production
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "development" {
		env = logger.Development
	}
	level := os.Getenv(EnvLoggerLevel)
	if level == "" {
		level = defaultLogLevel
	}

	log, err := logger.NewLogger(env, level)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	logger.SetGlobalLogger(log)

	cfg, err := sessioncfg.Load(ctx)
	if err != nil {
		return nil, err
	}

	tokenStore, closeStore, err := newTokenStore(ctx, &cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("creating token store: %w", err)
	}

	decoder := token.NewDecoder()
	state := app.NewSessionState(ctx, tokenStore, decoder)
	notifier := newTerminalNotifier()
	navigator := newTerminalNavigator()

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	client := httpapi.NewClient(&cfg.API, tokenStore, notifier,
		app.NewSessionInvalidator(tokenStore, state), metrics)

	return &core{
		auth:    app.NewAuthUsecase(client, tokenStore, state, decoder, notifier, navigator, metrics, cfg.PostRegister),
		users:   app.NewUserUsecase(client, state, notifier),
		state:   state,
		checker: app.NewEmailChecker(client, cfg.API.GetEmailCheckDebounce(), metrics),
		close: func() {
			if closeStore != nil {
				_ = closeStore()
			}
			_ = log.Sync()
		},
	}, nil
}

// newTokenStore создает хранилище токенов по конфигурации.
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
