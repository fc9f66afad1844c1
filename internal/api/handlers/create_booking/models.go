package create_booking

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	bookingModels "github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
// service, package, hours, price и originalPrice - значения, показанные клиенту.
// Названия справочные, часы и цены сверяются с пересчетом на сервере.
type CreateBookingRequest struct {
	ServiceID     int64   `json:"serviceId" validate:"required,gt=0"`
	PackageID     int64   `json:"packageId" validate:"required,gt=0"`
	Service       *string `json:"service,omitempty"`
	Package       *string `json:"package,omitempty"`
	Hours         *int    `json:"hours,omitempty" validate:"omitempty,gt=0"`
	Price         *int64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	OriginalPrice *int64  `json:"originalPrice,omitempty" validate:"omitempty,gte=0"`

	Date      string `json:"date" validate:"required,datetime=2006-01-02"` // "2025-10-15"
	StartTime string `json:"start_time,omitempty" validate:"whole_hour"`  // "10:00"
	EndTime   string `json:"end_time,omitempty" validate:"whole_hour"`    // "12:00"

	Name       string  `json:"name" validate:"required,max=200"`
	Email      string  `json:"email" validate:"required,email,max=254"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	VenueCity  *string `json:"venue_city,omitempty" validate:"omitempty,max=200"`
	VenuePlace *string `json:"venue_place,omitempty" validate:"omitempty,max=500"`
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=2000"`

	PromoCode    *string `json:"promo_code,omitempty" validate:"omitempty,max=64"`
	GiftCardCode *string `json:"gift_card_code,omitempty" validate:"omitempty,max=64"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking *bookingModels.BookingResponse `json:"booking"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	var startTime, endTime types.TimeString
	if r.StartTime != "" {
		if startTime, err = types.NewTimeStringFromString(r.StartTime); err != nil {
			return nil, err
		}
	}
	if r.EndTime != "" {
		if endTime, err = types.NewTimeStringFromString(r.EndTime); err != nil {
			return nil, err
		}
	}

	return &createBooking.Request{
		ServiceID:           r.ServiceID,
		PackageID:           r.PackageID,
		Date:                date,
		StartTime:           startTime,
		EndTime:             endTime,
		ClientName:          r.Name,
		Email:               r.Email,
		Phone:               r.Phone,
		VenueCity:           r.VenueCity,
		VenuePlace:          r.VenuePlace,
		Notes:               r.Notes,
		PromoCode:           nonEmpty(r.PromoCode),
		GiftCardCode:        nonEmpty(r.GiftCardCode),
		QuotedHours:         r.Hours,
		QuotedPrice:         r.Price,
		QuotedOriginalPrice: r.OriginalPrice,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{Booking: bookingModels.FromDomainBooking(resp.Booking)}
}

// Пустой код в форме означает, что код не вводился
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
