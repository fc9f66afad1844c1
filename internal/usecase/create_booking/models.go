package create_booking

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/pricing"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID int64
	PackageID int64
	Date      time.Time        // календарный день студии (без времени)
	StartTime types.TimeString // обязателен для почасовых услуг
	EndTime   types.TimeString // опционален, должен совпадать со start + длительность пакета

	ClientName string
	Email      string
	Phone      *string
	VenueCity  *string // обязателен для услуг с выездом
	VenuePlace *string // обязателен для услуг с выездом
	Notes      *string

	PromoCode    *string
	GiftCardCode *string

	// Значения, показанные клиенту; если переданы, должны совпасть с пересчетом
	QuotedHours         *int
	QuotedPrice         *int64
	QuotedOriginalPrice *int64
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
	Quote   pricing.Quote
}
