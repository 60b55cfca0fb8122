package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOperationFailed - неуспешный конверт API или сбой транспорта.
var ErrOperationFailed = errors.New("operation failed")

// APIError - сервер ответил конвертом со statusCode != 200.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Unwrap - errors.Is(err, ErrOperationFailed) истинно для любого APIError.
func (e *APIError) Unwrap() error { return ErrOperationFailed }

// UserMessage - сообщение сервера, если оно есть, иначе fallback.
// Транспортные ошибки пользователю не показываются.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	return fallback
}
