package ports

import (
	"context"

	"github.com/Gunvolt24/foodorder/internal/domain"
)

// APIClient - HTTP-клиент удалённого сервиса.
// Любой ответ со statusCode != 200 и любая транспортная ошибка возвращаются как ошибка.
type APIClient interface {
	Get(ctx context.Context, path string) (domain.Envelope, error)
	Post(ctx context.Context, path string, body any) (domain.Envelope, error)
	Delete(ctx context.Context, path string) (domain.Envelope, error)
}
