package domain

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid reports whether s is one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for statuses that automated flows never leave
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Booking represents a studio booking.
// Service, package, duration and prices are snapshots taken at creation time,
// later catalog edits never change them.
type Booking struct {
	ID int64

	// Snapshot of the catalog entry
	ServiceName    string
	PackageName    string
	SchedulingMode SchedulingMode
	DurationHours  int

	BookingDate time.Time        // studio-local calendar day
	StartTime   types.TimeString // zero for whole-day bookings
	EndTime     types.TimeString // zero for whole-day bookings

	ClientName string
	Email      string
	Phone      *string
	VenueCity  *string
	VenuePlace *string
	Notes      *string

	PromoCode    *string // canonical code used, kept after the code is deleted or exhausted
	GiftCardCode *string

	Price         int64 // paid amount in minor units, after discounts
	OriginalPrice int64 // package base price in minor units

	Status BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWholeDay returns true if the booking occupies the whole operating day
func (b *Booking) IsWholeDay() bool {
	return b.SchedulingMode == ModeWholeDay || b.StartTime.IsZero()
}

// HourRange returns the occupied half-open hour interval [start, end).
// Whole-day bookings occupy [0, 24).
func (b *Booking) HourRange() (start, end int) {
	if b.IsWholeDay() {
		return 0, HoursPerDay
	}
	start = b.StartTime.Hour()
	if b.EndTime.IsZero() {
		return start, start + b.DurationHours
	}
	return start, b.EndTime.Hour()
}

// OccupiesSlot reports whether the booking blocks its slot.
// Cancelled bookings keep the slot unless the studio releases cancelled slots.
func (b *Booking) OccupiesSlot(releaseCancelled bool) bool {
	if b.Status == StatusCancelled {
		return !releaseCancelled
	}
	return true
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	StartDate *time.Time     // начало периода (включительно), nil - без ограничения
	EndDate   *time.Time     // конец периода (включительно), nil - без ограничения
	Status    *BookingStatus // фильтр по статусу (опционально)
	Limit     uint64         // 0 - без ограничения
}

// IsSingleDay returns true if the filter selects exactly one date
func (f BookingsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}

// BookingPatch набор полей, которые администратор может заменить после создания.
// nil означает "не менять".
type BookingPatch struct {
	ClientName    *string
	Email         *string
	Phone         *string
	VenueCity     *string
	VenuePlace    *string
	Notes         *string
	BookingDate   *time.Time
	StartTime     *types.TimeString
	EndTime       *types.TimeString
	Price         *int64
	OriginalPrice *int64
	Status        *BookingStatus
}

// IsEmpty returns true if the patch changes nothing
func (p BookingPatch) IsEmpty() bool {
	return p.ClientName == nil && p.Email == nil && p.Phone == nil &&
		p.VenueCity == nil && p.VenuePlace == nil && p.Notes == nil &&
		p.BookingDate == nil && p.StartTime == nil && p.EndTime == nil &&
		p.Price == nil && p.OriginalPrice == nil && p.Status == nil
}

// Apply copies the non-nil fields of the patch onto the booking
func (p BookingPatch) Apply(b *Booking) {
	if p.ClientName != nil {
		b.ClientName = *p.ClientName
	}
	if p.Email != nil {
		b.Email = *p.Email
	}
	if p.Phone != nil {
		b.Phone = p.Phone
	}
	if p.VenueCity != nil {
		b.VenueCity = p.VenueCity
	}
	if p.VenuePlace != nil {
		b.VenuePlace = p.VenuePlace
	}
	if p.Notes != nil {
		b.Notes = p.Notes
	}
	if p.BookingDate != nil {
		b.BookingDate = *p.BookingDate
	}
	if p.StartTime != nil {
		b.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		b.EndTime = *p.EndTime
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.OriginalPrice != nil {
		b.OriginalPrice = *p.OriginalPrice
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
}
