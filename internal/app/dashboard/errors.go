package dashboard

import (
	"errors"
	"fmt"
)

var ErrNotArray = errors.New("response is not a JSON array of objects")

// TransportError - запрос не завершился: соединение, таймаут, чтение тела
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError - сервер ответил кодом, отличным от 200
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d", e.Code)
}

// ParseError - тело ответа не является JSON-массивом объектов
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
