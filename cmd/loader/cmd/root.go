package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
	"logindash/internal/app/loader/config"
	"logindash/internal/domain/login"
	"logindash/internal/infrastructure/queue/sqs"
	"logindash/internal/infrastructure/storage/postgres"
	"logindash/internal/utils/logger"
)

var (
	envFile string
	once    bool
)

var rootCmd = &cobra.Command{
	Use:   "loader",
	Short: "Загрузка событий входа из SQS в user_logins",
	Long: `loader читает события входа из очереди SQS, отбрасывает события без
user_id, device_type, ip или device_id, шифрует ip и device_id и пишет записи
в таблицу user_logins. Обработанные сообщения удаляются из очереди.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(envFile)
		if err != nil {
			return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
		}
		log := logger.New(cfg.Env, cfg.Logger.LogLevel, os.Stdout)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return run(ctx, cfg, log)
	},
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "файл с переменными окружения")
	rootCmd.Flags().BoolVar(&once, "once", false, "обработать одну пачку сообщений и выйти")
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	storage, err := postgres.New(ctx, cfg.DB.DatabaseURI, cfg.DB.Migrations)
	if err != nil {
		return err
	}
	defer storage.Close()
	log.Info("database initialized")

	cipher, err := login.NewCipher(cfg.Crypto.EncryptionSecret)
	if err != nil {
		return err
	}

	queue := sqs.NewClient(cfg.Queue.Endpoint, cfg.Queue.RequestTimeout, log)
	repo := postgres.NewLoginRepository(storage, log)

	return ingest(ctx, login.NewIngester(queue, repo, cipher, cfg.IngestConfig(), log), once, log)
}

type ingester interface {
	Poll(ctx context.Context) (login.PollStats, error)
	Run(ctx context.Context) error
}

func ingest(ctx context.Context, in ingester, once bool, log *slog.Logger) error {
	if once {
		stats, err := in.Poll(ctx)
		if err != nil {
			return err
		}
		log.Info("Готово",
			slog.Int("received", stats.Received),
			slog.Int("loaded", stats.Loaded),
			slog.Int("rejected", stats.Rejected))
		return nil
	}

	log.Info("loader started")
	if err := in.Run(ctx); err != nil {
		return err
	}
	log.Info("loader stopped")
	return nil
}
