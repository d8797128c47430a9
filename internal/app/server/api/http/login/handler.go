package login

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
	"logindash/internal/domain/login"
)

type Handler struct {
	service    login.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service login.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	logins, err := h.service.List(ctx, input.filter())
	if err != nil {
		if errors.Is(err, login.ErrInvalidLimit) || errors.Is(err, login.ErrInvalidPage) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		if h.log != nil {
			h.log.Error("failed to fetch logins", slog.Any("error", err))
		}
		return nil, huma.Error500InternalServerError("Error fetching records")
	}

	return &listOutput{Body: logins}, nil
}
