package discounts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// DiscountRepository интерфейс репозитория промокодов и подарочных карт
type DiscountRepository interface {
	GetPromoCode(ctx context.Context, code string) (*domain.PromoCode, error)
	GetGiftCard(ctx context.Context, code string) (*domain.GiftCard, error)
}

// SettingsProvider источник текущих настроек студии
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.StudioSettings, error)
}

// Metrics счетчики результатов проверки кодов
type Metrics interface {
	DiscountResolved(kind, result string)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider, возвращающая реальное время
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
