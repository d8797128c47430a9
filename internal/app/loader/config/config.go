package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"logindash/internal/domain/login"
)

const (
	EnvLocal = "local"

	defaultMigrations        = "migrations"
	defaultLogLevel          = "info"
	defaultMaxMessages       = 10
	defaultMaxWaitTime       = 10
	defaultMaxNoResponses    = 3
	defaultIdleStepSeconds   = 1
	defaultRequestTimeoutSec = 10
)

type Config struct {
	Env    string
	DB     DB
	Queue  Queue
	Logger Logger
	Crypto Crypto
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Queue struct {
	// полный URL очереди, например http://localhost:4566/000000000000/login-queue
	Endpoint    string `env:"SQS_ENDPOINT"`
	MaxMessages int    `env:"MAX_MESSAGES"`
	// секунды long polling, от 0 до 20
	MaxWaitTime int `env:"MAX_WAIT_TIME"`
	// после стольких пустых ответов подряд начинается ожидание между запросами
	MaxNoResponses int `env:"MAX_NO_RESPONSES"`
	// 0 - не останавливаться
	MaxConsecutiveNoResponses int `env:"MAX_CONSECUTIVE_NO_RESPONSES"`
	IdleStep                  time.Duration
	RequestTimeout            time.Duration
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL"`
}

type Crypto struct {
	EncryptionSecret string `env:"ENCRYPTION_SECRET"`
}

// Load читает .env по пути path (если он есть) и переменные окружения
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			log.Printf("Ошибка загрузки .env файла: %v\n", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("migrations_path", defaultMigrations)
	v.SetDefault("max_messages", defaultMaxMessages)
	v.SetDefault("max_wait_time", defaultMaxWaitTime)
	v.SetDefault("max_no_responses", defaultMaxNoResponses)
	v.SetDefault("max_consecutive_no_responses", 0)
	v.SetDefault("idle_step_seconds", defaultIdleStepSeconds)
	v.SetDefault("request_timeout_seconds", defaultRequestTimeoutSec)

	cfg := &Config{
		Env: v.GetString("app_env"),
		DB: DB{
			DatabaseURI: v.GetString("database_uri"),
			Migrations:  v.GetString("migrations_path"),
		},
		Queue: Queue{
			Endpoint:                  v.GetString("sqs_endpoint"),
			MaxMessages:               v.GetInt("max_messages"),
			MaxWaitTime:               v.GetInt("max_wait_time"),
			MaxNoResponses:            v.GetInt("max_no_responses"),
			MaxConsecutiveNoResponses: v.GetInt("max_consecutive_no_responses"),
			IdleStep:                  time.Duration(v.GetInt("idle_step_seconds")) * time.Second,
			RequestTimeout:            time.Duration(v.GetInt("request_timeout_seconds")) * time.Second,
		},
		Logger: Logger{LogLevel: v.GetString("log_level")},
		Crypto: Crypto{EncryptionSecret: v.GetString("encryption_secret")},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IngestConfig - параметры цикла опроса очереди
func (c *Config) IngestConfig() login.IngestConfig {
	return login.IngestConfig{
		MaxMessages:              c.Queue.MaxMessages,
		WaitTime:                 time.Duration(c.Queue.MaxWaitTime) * time.Second,
		MaxEmptyPolls:            c.Queue.MaxNoResponses,
		MaxConsecutiveEmptyPolls: c.Queue.MaxConsecutiveNoResponses,
		IdleStep:                 c.Queue.IdleStep,
	}
}

func (c *Config) validate() error {
	if c.DB.DatabaseURI == "" {
		return fmt.Errorf("DATABASE_URI не может быть пустым")
	}
	switch len(c.Crypto.EncryptionSecret) {
	case 16, 24, 32:
	default:
		return fmt.Errorf("ENCRYPTION_SECRET должен быть длиной 16, 24 или 32 байта")
	}

	u, err := url.Parse(c.Queue.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("SQS_ENDPOINT должен быть URL очереди вида http(s)://host/account/queue")
	}
	if c.Queue.MaxMessages < 1 || c.Queue.MaxMessages > 10 {
		return fmt.Errorf("MAX_MESSAGES должен быть от 1 до 10")
	}
	if c.Queue.MaxWaitTime < 0 || c.Queue.MaxWaitTime > 20 {
		return fmt.Errorf("MAX_WAIT_TIME должен быть от 0 до 20 секунд")
	}
	if c.Queue.MaxNoResponses < 0 || c.Queue.MaxConsecutiveNoResponses < 0 {
		return fmt.Errorf("MAX_NO_RESPONSES и MAX_CONSECUTIVE_NO_RESPONSES не могут быть отрицательными")
	}
	if c.Queue.IdleStep <= 0 || c.Queue.RequestTimeout <= 0 {
		return fmt.Errorf("IDLE_STEP_SECONDS и REQUEST_TIMEOUT_SECONDS должны быть больше нуля")
	}
	return nil
}
