package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultEndpoint       = "http://localhost:8080/login-data"
	defaultLogLevel       = "info"
	defaultEnv            = "local"
	defaultTimeoutSeconds = 30
	defaultConfigDir      = ".logindash"
)

type Config struct {
	Env            string        `mapstructure:"app_env"`
	Endpoint       string        `mapstructure:"api_server_endpoint"`
	LogLevel       string        `mapstructure:"log_level"`
	RequestTimeout time.Duration `mapstructure:"-"`
	ConfigDir      string        `mapstructure:"config_dir"`
	LogFile        string        `mapstructure:"log_file"`
}

// Load подхватывает .env (текущая или родительская директория), переменные окружения и
// значения, уже прочитанные v из конфигурационного файла
func Load(v *viper.Viper) (*Config, error) {
	loadDotEnv()

	v.AutomaticEnv()

	v.SetDefault("APP_ENV", defaultEnv)
	v.SetDefault("API_SERVER_ENDPOINT", DefaultEndpoint)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", defaultTimeoutSeconds)
	v.SetDefault("CONFIG_DIR", defaultConfigDir)

	configDir := v.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		configDir = filepath.Join(homeDir, configDir)
	}

	logFile := v.GetString("LOG_FILE")
	if logFile == "" {
		logFile = filepath.Join(configDir, "dashboard.log")
	}

	cfg := &Config{
		Env:            v.GetString("APP_ENV"),
		Endpoint:       v.GetString("API_SERVER_ENDPOINT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		RequestTimeout: time.Duration(v.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
		ConfigDir:      configDir,
		LogFile:        logFile,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadDotEnv() {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}

	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка загрузки .env файла: %v\n", err)
		}
	}
}

func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("api_server_endpoint не может быть пустым")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("api_server_endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_server_endpoint должен начинаться с http:// или https://, получено %q", c.Endpoint)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout_seconds должен быть больше нуля")
	}
	return nil
}
