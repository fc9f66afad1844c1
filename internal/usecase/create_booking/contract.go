package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// DiscountRepository атомарные изменения состояния кодов
type DiscountRepository interface {
	IncrementPromoUsage(ctx context.Context, code string) error
	RedeemGiftCard(ctx context.Context, code string, bookingID int64) error
}

// DiscountResolver проверяет коды без изменения состояния
type DiscountResolver interface {
	ResolvePromoCode(ctx context.Context, code string, settings *domain.StudioSettings) (*domain.Discount, error)
	ResolveGiftCard(ctx context.Context, code string) (*domain.GiftCard, error)
}

// CatalogService разрешает услугу и пакет
type CatalogService interface {
	ResolvePackage(ctx context.Context, serviceID, packageID int64) (*domain.ServiceType, *domain.Package, error)
}

// SettingsProvider источник текущих настроек студии
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.StudioSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics доменные счетчики
type Metrics interface {
	BookingCreated(mode string)
	BookingConflict(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
