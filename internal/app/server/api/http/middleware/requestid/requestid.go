package requestid

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
)

// Header - заголовок, в котором дашборд передает идентификатор запроса
const Header = "X-Request-ID"

type contextKey string

const RequestIDKey contextKey = "requestID"

type RequestID struct {
	newID func() string
}

func New() *RequestID {
	return &RequestID{newID: uuid.NewString}
}

// Middleware берет X-Request-ID из запроса или генерирует новый, кладет его в контекст и отдает в ответе
func (r *RequestID) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		id := ctx.Header(Header)
		if _, err := uuid.Parse(id); err != nil {
			id = r.newID()
		}

		ctx.SetHeader(Header, id)
		next(huma.WithContext(ctx, WithRequestID(ctx.Context(), id)))
	}
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDKey).(string)
	return id, ok
}
