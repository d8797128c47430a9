package login

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, filter Filter) ([]Login, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Login), args.Error(1)
}

func strPtr(s string) *string {
	return &s
}

func newTestService(t *testing.T, repo Repository) (*Service, *Cipher) {
	t.Helper()
	c, err := NewCipher(testKey)
	require.NoError(t, err)
	return NewService(repo, c, slog.Default()), c
}

func TestService_List_Encrypted(t *testing.T) {
	mockRepo := new(MockRepository)
	service, c := newTestService(t, mockRepo)

	filter := Filter{Limit: 5, Page: 1, IsEncrypted: true}
	maskedIP := c.Encrypt("10.0.0.1")
	mockRepo.On("List", mock.Anything, filter).Return([]Login{
		{UserID: strPtr("u1"), IP: strPtr(maskedIP), Locale: "RU"},
	}, nil)

	logins, err := service.List(context.Background(), filter)

	require.NoError(t, err)
	require.Len(t, logins, 1)
	assert.Equal(t, maskedIP, *logins[0].IP)
	mockRepo.AssertExpectations(t)
}

func TestService_List_Decrypts(t *testing.T) {
	mockRepo := new(MockRepository)
	service, c := newTestService(t, mockRepo)

	filter := Filter{Limit: 5, Page: 1, IsEncrypted: false}
	mockRepo.On("List", mock.Anything, filter).Return([]Login{
		{UserID: strPtr("u1"), IP: strPtr(c.Encrypt("10.0.0.1")), DeviceID: strPtr(c.Encrypt("dev-1"))},
		{UserID: strPtr("u2"), IP: nil, DeviceID: strPtr(c.Encrypt("dev-2"))},
	}, nil)

	logins, err := service.List(context.Background(), filter)

	require.NoError(t, err)
	require.Len(t, logins, 2)
	assert.Equal(t, "10.0.0.1", *logins[0].IP)
	assert.Equal(t, "dev-1", *logins[0].DeviceID)
	assert.Nil(t, logins[1].IP)
	assert.Equal(t, "dev-2", *logins[1].DeviceID)
}

func TestService_List_EmptyIsNotNil(t *testing.T) {
	mockRepo := new(MockRepository)
	service, _ := newTestService(t, mockRepo)

	filter := Filter{Limit: 5, Page: 3, IsEncrypted: true}
	mockRepo.On("List", mock.Anything, filter).Return(nil, nil)

	logins, err := service.List(context.Background(), filter)

	require.NoError(t, err)
	assert.NotNil(t, logins)
	assert.Empty(t, logins)
}

func TestService_List_Errors(t *testing.T) {
	t.Run("invalid filter does not hit repository", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service, _ := newTestService(t, mockRepo)

		_, err := service.List(context.Background(), Filter{Limit: 500, Page: 1})

		assert.ErrorIs(t, err, ErrInvalidLimit)
		mockRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("repository error is wrapped", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service, _ := newTestService(t, mockRepo)
		dbErr := errors.New("connection reset")
		filter := Filter{Limit: 5, Page: 1, IsEncrypted: true}
		mockRepo.On("List", mock.Anything, filter).Return(nil, dbErr)

		_, err := service.List(context.Background(), filter)

		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("undecryptable field", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service, _ := newTestService(t, mockRepo)
		filter := Filter{Limit: 5, Page: 1, IsEncrypted: false}
		mockRepo.On("List", mock.Anything, filter).Return([]Login{{IP: strPtr("not-a-ciphertext")}}, nil)

		_, err := service.List(context.Background(), filter)

		assert.ErrorIs(t, err, ErrDecrypt)
	})
}
