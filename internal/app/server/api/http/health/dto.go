package health

import "context"

// Pinger - хранилище, доступность которого проверяет health check
type Pinger interface {
	Ping(ctx context.Context) error
}

type checkInput struct{}

type checkOutput struct {
	Body Response
}

type Response struct {
	Status   string `json:"status" example:"OK" doc:"OK, если login-data API может читать user_logins"`
	Database string `json:"database,omitempty" example:"up" doc:"Состояние соединения с PostgreSQL"`
}
