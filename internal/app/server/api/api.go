// GET /login-data      # Страница входов пользователей
// GET /api/v1/health   # Проверка доступности

package api

import (
	healthAPI "logindash/internal/app/server/api/http/health"
	loginAPI "logindash/internal/app/server/api/http/login"
	"logindash/internal/app/server/api/http/middleware"
	"logindash/internal/app/server/api/http/middleware/logger"
	"logindash/internal/app/server/api/http/middleware/requestid"
	"logindash/internal/domain/login"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health *healthAPI.Handler
	Login  *loginAPI.Handler
}

// New создает *chi.Mux со всеми операциями, зарегистрированными через huma.Register
func New(repo login.Repository, db healthAPI.Pinger, cipher *login.Cipher, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(chimw.Recoverer)

	config := huma.DefaultConfig("Login Data API", "1.0.0")
	API := humachi.New(mux, config)

	h := handlers(repo, db, cipher, log)
	h.Health.SetupRoutes(API)
	h.Login.SetupRoutes(API)

	return mux
}

func handlers(repo login.Repository, db healthAPI.Pinger, cipher *login.Cipher, log *slog.Logger) *Handlers {
	requestIDMW := requestid.New()
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(requestIDMW.Middleware(), loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(db, log, middlewares.GetAllAndClear())

	loginService := login.NewService(repo, cipher, log)
	middlewares.Add(requestIDMW.Middleware(), loggerMW.Middleware())
	loginHandler := loginAPI.NewHandler(loginService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Login:  loginHandler,
	}
}
