package health

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const (
	StatusOK    = "OK"
	databaseUp  = "up"
	pingTimeout = 2 * time.Second
	unavailable = "database unavailable"
)

type Handler struct {
	db         Pinger
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(db Pinger, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		db:         db,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.checkOp(), h.check)
}

func (h *Handler) check(ctx context.Context, _ *checkInput) (*checkOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("health check: database ping failed", slog.Any("error", err))
		return nil, huma.Error503ServiceUnavailable(unavailable)
	}

	return &checkOutput{
		Body: Response{
			Status:   StatusOK,
			Database: databaseUp,
		},
	}, nil
}
