package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"logindash/internal/domain/login"
)

const testQueue = "http://localhost:4566/000000000000/login-queue"

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			env: map[string]string{
				"DATABASE_URI":      "postgres://localhost:5432/logins",
				"ENCRYPTION_SECRET": "0123456789abcdef",
				"SQS_ENDPOINT":      testQueue,
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, EnvLocal, cfg.Env)
				assert.Equal(t, "info", cfg.Logger.LogLevel)
				assert.Equal(t, "migrations", cfg.DB.Migrations)
				assert.Equal(t, testQueue, cfg.Queue.Endpoint)
				assert.Equal(t, 10, cfg.Queue.MaxMessages)
				assert.Equal(t, 10, cfg.Queue.MaxWaitTime)
				assert.Equal(t, 3, cfg.Queue.MaxNoResponses)
				assert.Equal(t, 0, cfg.Queue.MaxConsecutiveNoResponses)
				assert.Equal(t, time.Second, cfg.Queue.IdleStep)
				assert.Equal(t, 10*time.Second, cfg.Queue.RequestTimeout)
			},
		},
		{
			name: "overrides from env",
			env: map[string]string{
				"DATABASE_URI":                 "postgres://db/logins",
				"ENCRYPTION_SECRET":            "0123456789abcdef0123456789abcdef",
				"SQS_ENDPOINT":                 testQueue,
				"MAX_MESSAGES":                 "5",
				"MAX_WAIT_TIME":                "20",
				"MAX_NO_RESPONSES":             "1",
				"MAX_CONSECUTIVE_NO_RESPONSES": "4",
				"IDLE_STEP_SECONDS":            "2",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, login.IngestConfig{
					MaxMessages:              5,
					WaitTime:                 20 * time.Second,
					MaxEmptyPolls:            1,
					MaxConsecutiveEmptyPolls: 4,
					IdleStep:                 2 * time.Second,
				}, cfg.IngestConfig())
			},
		},
		{
			name: "missing database uri",
			env: map[string]string{
				"DATABASE_URI":      "",
				"ENCRYPTION_SECRET": "0123456789abcdef",
				"SQS_ENDPOINT":      testQueue,
			},
			wantErr: "DATABASE_URI",
		},
		{
			name: "bad key length",
			env: map[string]string{
				"DATABASE_URI":      "postgres://db/logins",
				"ENCRYPTION_SECRET": "short",
				"SQS_ENDPOINT":      testQueue,
			},
			wantErr: "ENCRYPTION_SECRET",
		},
		{
			name: "queue without scheme",
			env: map[string]string{
				"DATABASE_URI":      "postgres://db/logins",
				"ENCRYPTION_SECRET": "0123456789abcdef",
				"SQS_ENDPOINT":      "localhost:4566/login-queue",
			},
			wantErr: "SQS_ENDPOINT",
		},
		{
			name: "too many messages",
			env: map[string]string{
				"DATABASE_URI":      "postgres://db/logins",
				"ENCRYPTION_SECRET": "0123456789abcdef",
				"SQS_ENDPOINT":      testQueue,
				"MAX_MESSAGES":      "11",
			},
			wantErr: "MAX_MESSAGES",
		},
		{
			name: "wait time over limit",
			env: map[string]string{
				"DATABASE_URI":      "postgres://db/logins",
				"ENCRYPTION_SECRET": "0123456789abcdef",
				"SQS_ENDPOINT":      testQueue,
				"MAX_WAIT_TIME":     "21",
			},
			wantErr: "MAX_WAIT_TIME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{
				"APP_ENV", "LOG_LEVEL", "MIGRATIONS_PATH", "MAX_MESSAGES", "MAX_WAIT_TIME",
				"MAX_NO_RESPONSES", "MAX_CONSECUTIVE_NO_RESPONSES", "IDLE_STEP_SECONDS", "REQUEST_TIMEOUT_SECONDS",
			} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(filepath.Join(t.TempDir(), ".env"))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
