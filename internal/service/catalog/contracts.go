package catalog

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	ListActiveServiceTypes(ctx context.Context) ([]domain.ServiceType, error)
	GetServiceType(ctx context.Context, id int64) (*domain.ServiceType, error)
}

// Cache кэш каталога; nil отключает кэширование
type Cache interface {
	Save(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string, dest any) error
	Delete(ctx context.Context, key string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
