package login

import (
	"context"
	"time"
)

type Repository interface {
	List(ctx context.Context, filter Filter) ([]Login, error)
}

// Store сохраняет замаскированные входы пачкой
type Store interface {
	InsertBatch(ctx context.Context, logins []Login) error
}

// Queue - очередь событий входа. Удаление подтверждает обработку, неудаленные сообщения вернутся.
type Queue interface {
	Receive(ctx context.Context, maxMessages int, wait time.Duration) ([]Message, error)
	Delete(ctx context.Context, messages []Message) error
}
