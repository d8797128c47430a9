package sqs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"logindash/internal/domain/login"
	"logindash/internal/utils/logger"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) InsertBatch(ctx context.Context, logins []login.Login) error {
	return m.Called(ctx, logins).Error(0)
}

func TestIngester_PollFromQueue(t *testing.T) {
	stub := &sqsStub{body: func(action string) string {
		if action == "DeleteMessageBatch" {
			return deleteOKXML
		}
		return receiveXML
	}}
	client, _ := newStubClient(t, stub)

	cipher, err := login.NewCipher("0123456789abcdef")
	require.NoError(t, err)

	store := new(MockStore)
	var stored []login.Login
	store.On("InsertBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).([]login.Login) }).
		Return(nil).Once()

	in := login.NewIngester(client, store, cipher, login.IngestConfig{
		MaxMessages: 10,
		WaitTime:    time.Second,
		IdleStep:    time.Millisecond,
	}, logger.Discard())

	stats, err := in.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, login.PollStats{Received: 2, Loaded: 1, Rejected: 1}, stats)
	store.AssertExpectations(t)

	require.Len(t, stored, 1)
	assert.Equal(t, "u1", *stored[0].UserID)
	assert.NotEqual(t, "10.0.0.1", *stored[0].IP)
	ip, err := cipher.Decrypt(*stored[0].IP)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", ip)
	deviceID, err := cipher.Decrypt(*stored[0].DeviceID)
	require.NoError(t, err)
	assert.Equal(t, "d1", deviceID)

	// и валидные, и отброшенные сообщения удаляются из очереди
	require.Len(t, stub.requests, 2)
	del := stub.requests[1]
	assert.Equal(t, "DeleteMessageBatch", del["Action"])
	assert.Equal(t, "rh-1", del["DeleteMessageBatchRequestEntry.1.ReceiptHandle"])
	assert.Equal(t, "rh-2", del["DeleteMessageBatchRequestEntry.2.ReceiptHandle"])
}
