package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"logindash/internal/domain/login"
	"logindash/internal/utils/logger"
)

type MockIngester struct {
	mock.Mock
}

func (m *MockIngester) Poll(ctx context.Context) (login.PollStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(login.PollStats), args.Error(1)
}

func (m *MockIngester) Run(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestIngest(t *testing.T) {
	pollErr := errors.New("queue unavailable")

	tests := []struct {
		name    string
		once    bool
		setup   func(m *MockIngester)
		wantErr error
	}{
		{
			name: "once polls a single batch",
			once: true,
			setup: func(m *MockIngester) {
				m.On("Poll", mock.Anything).Return(login.PollStats{Received: 3, Loaded: 2, Rejected: 1}, nil).Once()
			},
		},
		{
			name: "once returns poll error",
			once: true,
			setup: func(m *MockIngester) {
				m.On("Poll", mock.Anything).Return(login.PollStats{}, pollErr).Once()
			},
			wantErr: pollErr,
		},
		{
			name: "loop runs until stopped",
			setup: func(m *MockIngester) {
				m.On("Run", mock.Anything).Return(nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockIngester)
			tt.setup(m)

			err := ingest(context.Background(), m, tt.once, logger.Discard())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestRootCmd_Flags(t *testing.T) {
	f := rootCmd.Flags().Lookup("once")
	if assert.NotNil(t, f) {
		assert.Equal(t, "false", f.DefValue)
	}
	f = rootCmd.Flags().Lookup("env-file")
	if assert.NotNil(t, f) {
		assert.Equal(t, ".env", f.DefValue)
	}
}
