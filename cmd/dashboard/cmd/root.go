package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"
	"golang.org/x/term"
	"logindash/internal/app/dashboard"
	"logindash/internal/app/dashboard/config"
	"logindash/internal/app/dashboard/tui"
	"logindash/internal/utils/logger"
)

// errSilent - ошибка уже показана пользователю, нужен только ненулевой код выхода
var errSilent = errors.New("silent failure")

var (
	cfgFile  string
	endpoint string
	debug    bool

	cfg        *config.Config
	log        *slog.Logger
	logOutput  io.Closer
	controller *dashboard.Controller
)

var rootCmd = &cobra.Command{
	Use:   "logindash",
	Short: "LoginDash - дашборд входов пользователей",
	Long: `LoginDash запрашивает записи о входах пользователей у login-data API
и показывает их таблицей.

Без подкоманды запускается интерактивный режим: лимит записей, номер страницы,
переключатели "Show Encrypted" и "Group Duplicates" и кнопка "Fetch Data".`,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

// runRoot задается в init: setupApp и runRoot ссылаются на rootCmd через interactive
func runRoot(cmd *cobra.Command, _ []string) error {
	if !interactive(cmd) {
		return cmd.Help()
	}
	return tui.Run(cmd.Context(), dashboard.NewSession(), controller)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			color.New(color.FgRed).Fprintf(os.Stderr, "Ошибка: %v\n", err)
		}
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = loadConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if endpoint != "" {
		cfg.Endpoint = endpoint
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
		}
	}

	log, logOutput, err = newLogger(cfg, debug, interactive(cmd))
	if err != nil {
		return fmt.Errorf("ошибка настройки логгера: %w", err)
	}

	controller = dashboard.NewController(cfg.Endpoint, cfg.RequestTimeout, log)
	log.Debug("Приложение настроено",
		slog.String("endpoint", cfg.Endpoint),
		slog.Duration("timeout", cfg.RequestTimeout),
	)
	return nil
}

// interactive - будет ли запущен TUI: корневая команда и stdout - терминал
func interactive(cmd *cobra.Command) bool {
	return cmd == rootCmd && term.IsTerminal(int(os.Stdout.Fd()))
}

func closeApp(_ *cobra.Command, _ []string) error {
	if logOutput == nil {
		return nil
	}
	return logOutput.Close()
}

func loadConfig(v *viper.Viper) (*config.Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Ищем конфиг в стандартных местах
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".logindash"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// Конфиг не найден, используем значения по умолчанию
	}

	return config.Load(v)
}

// newLogger: интерактивный режим пишет в файл, чтобы не портить экран,
// fetch пишет в stderr и только с --debug
func newLogger(cfg *config.Config, debug, interactive bool) (*slog.Logger, io.Closer, error) {
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}

	if !interactive {
		if !debug {
			return logger.Discard(), nil, nil
		}
		return logger.New(cfg.Env, level, os.Stderr), nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o700); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return logger.New(cfg.Env, level, f), f, nil
}

func init() {
	rootCmd.PersistentPreRunE = setupApp
	rootCmd.RunE = runRoot

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл (по умолчанию ~/.logindash/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "адрес login-data API (переопределяет API_SERVER_ENDPOINT)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")

	rootCmd.AddCommand(fetchCmd)
}
