package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress = ":8080"
	defaultMigrations = "migrations"
	defaultLogLevel   = "info"
)

type Config struct {
	Env    string
	DB     DB
	Server Server
	Logger Logger
	Crypto Crypto
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type Crypto struct {
	// ключ AES, которым зашифрованы ip и device_id в user_logins (16, 24 или 32 байта)
	EncryptionSecret string `env:"ENCRYPTION_SECRET"`
}

// MustLoad читает .env (если есть) и переменные окружения
func MustLoad() *Config {
	cfg, err := Load(envPath)
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			log.Printf("Ошибка загрузки .env файла: %v\n", err)
		}
	} else {
		log.Println("No .env file found, relying on environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("run_address", defaultRunAddress)
	v.SetDefault("migrations_path", defaultMigrations)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("app_env", EnvLocal)

	cfg := &Config{
		Env: v.GetString("app_env"),
		DB: DB{
			DatabaseURI: v.GetString("database_uri"),
			Migrations:  v.GetString("migrations_path"),
		},
		Server: Server{RunAddress: v.GetString("run_address")},
		Logger: Logger{LogLevel: v.GetString("log_level")},
		Crypto: Crypto{EncryptionSecret: v.GetString("encryption_secret")},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
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
	return nil
}
