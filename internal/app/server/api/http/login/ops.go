package login

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "login-data-list",
		Method:      http.MethodGet,
		Path:        "/login-data",
		Summary:     "Список входов пользователей",
		Description: "Возвращает страницу записей о входах, новые первыми. При isEncrypted=false ip и device_id расшифровываются.",
		Tags:        []string{"login-data"},
		Middlewares: h.middleware,
	}
}
