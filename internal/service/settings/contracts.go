package settings

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек студии
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.StudioSettings, error)
	Upsert(ctx context.Context, s *domain.StudioSettings) (*domain.StudioSettings, error)
}

// CacheInvalidator сбрасывает кэшированные представления после изменения настроек
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
