package dashboard

import (
	"errors"
	"fmt"
)

// ErrorMessage переводит ошибку Fetch в текст для пользователя
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var statusErr *StatusError
	var transportErr *TransportError
	var parseErr *ParseError

	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Error fetching data: %d", statusErr.Code)
	case errors.As(err, &transportErr):
		return fmt.Sprintf("Error fetching data: server unreachable (%v)", transportErr.Err)
	case errors.As(err, &parseErr):
		return fmt.Sprintf("Error fetching data: invalid response (%v)", parseErr.Err)
	default:
		return fmt.Sprintf("Error fetching data: %v", err)
	}
}
