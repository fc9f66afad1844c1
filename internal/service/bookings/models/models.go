package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidField возвращается при некорректном значении поля патча
	ErrInvalidField = errors.New("invalid field value")
)

// Request модели

// ListBookingsRequest фильтр административного списка бронирований
type ListBookingsRequest struct {
	From   *time.Time `json:"from,omitempty"`
	To     *time.Time `json:"to,omitempty"`
	Status *string    `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate: r.From,
		EndDate:   r.To,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// PatchBookingRequest замена полей бронирования администратором
// nil означает "не менять"
type PatchBookingRequest struct {
	Status        *string `json:"status,omitempty"`
	ClientName    *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	VenueCity     *string `json:"venue_city,omitempty"`
	VenuePlace    *string `json:"venue_place,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Date          *string `json:"date,omitempty"`       // "2025-10-15"
	StartTime     *string `json:"start_time,omitempty"` // "10:00"
	EndTime       *string `json:"end_time,omitempty"`   // "12:00"
	Price         *int64  `json:"price,omitempty"`
	OriginalPrice *int64  `json:"originalPrice,omitempty"`
}

// IsStatusOnly возвращает true, если патч меняет только статус
func (r *PatchBookingRequest) IsStatusOnly() bool {
	return r.Status != nil && !r.hasFields()
}

// IsEmpty возвращает true, если в патче нет ни одного поля
func (r *PatchBookingRequest) IsEmpty() bool {
	return r.Status == nil && !r.hasFields()
}

func (r *PatchBookingRequest) hasFields() bool {
	return !(r.ClientName == nil && r.Email == nil && r.Phone == nil &&
		r.VenueCity == nil && r.VenuePlace == nil && r.Notes == nil &&
		r.Date == nil && r.StartTime == nil && r.EndTime == nil &&
		r.Price == nil && r.OriginalPrice == nil)
}

// ToDomainPatch конвертирует request в domain патч
func (r *PatchBookingRequest) ToDomainPatch() (domain.BookingPatch, error) {
	patch := domain.BookingPatch{
		ClientName:    trimmed(r.ClientName),
		Email:         trimmed(r.Email),
		Phone:         r.Phone,
		VenueCity:     r.VenueCity,
		VenuePlace:    r.VenuePlace,
		Notes:         r.Notes,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return patch, err
		}
		patch.Status = &status
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return patch, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidField)
		}
		patch.BookingDate = &date
	}

	var err error
	if patch.StartTime, err = parseTime("start_time", r.StartTime); err != nil {
		return patch, err
	}
	if patch.EndTime, err = parseTime("end_time", r.EndTime); err != nil {
		return patch, err
	}

	return patch, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// parseTime пустая строка очищает время (перевод в бронирование на весь день)
func parseTime(field string, s *string) (*types.TimeString, error) {
	if s == nil {
		return nil, nil
	}
	if *s == "" {
		return &types.TimeString{}, nil
	}
	t, err := types.NewTimeStringFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be HH:MM", ErrInvalidField, field)
	}
	return &t, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64   `json:"id"`
	Service       string  `json:"service"`
	Package       string  `json:"package"`
	Mode          string  `json:"mode"`
	Hours         int     `json:"hours"`
	Date          string  `json:"date"`                 // "2025-10-15"
	StartTime     *string `json:"start_time,omitempty"` // "10:00", нет для бронирований на весь день
	EndTime       *string `json:"end_time,omitempty"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone,omitempty"`
	VenueCity     *string `json:"venue_city,omitempty"`
	VenuePlace    *string `json:"venue_place,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	PromoCode     *string `json:"promo_code,omitempty"`
	GiftCardCode  *string `json:"gift_card_code,omitempty"`
	Price         int64   `json:"price"`
	OriginalPrice int64   `json:"originalPrice"`
	Status        string  `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CalendarEventResponse структурированные данные события для внешнего экспорта в календарь
type CalendarEventResponse struct {
	UID         string    `json:"uid"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	AllDay      bool      `json:"allDay"`
	Date        string    `json:"date"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Timezone    string    `json:"timezone"`
	Location    string    `json:"location,omitempty"`
	Attendee    Attendee  `json:"attendee"`
	Status      string    `json:"status"`
}

// Attendee участник события
type Attendee struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID,
		Service:       b.ServiceName,
		Package:       b.PackageName,
		Mode:          string(b.SchedulingMode),
		Hours:         b.DurationHours,
		Date:          b.BookingDate.Format(domain.DateFormat),
		Name:          b.ClientName,
		Email:         b.Email,
		Phone:         b.Phone,
		VenueCity:     b.VenueCity,
		VenuePlace:    b.VenuePlace,
		Notes:         b.Notes,
		PromoCode:     b.PromoCode,
		GiftCardCode:  b.GiftCardCode,
		Price:         b.Price,
		OriginalPrice: b.OriginalPrice,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	if !b.StartTime.IsZero() {
		start := b.StartTime.String()
		resp.StartTime = &start
	}
	if !b.EndTime.IsZero() {
		end := b.EndTime.String()
		resp.EndTime = &end
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(strings.ToLower(strings.TrimSpace(status)))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
