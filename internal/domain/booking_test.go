package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

func TestBooking_HourRange(t *testing.T) {
	session := &Booking{
		SchedulingMode: ModeHourly,
		DurationHours:  2,
		StartTime:      types.MustTimeString("10:00"),
		EndTime:        types.MustTimeString("12:00"),
	}
	start, end := session.HourRange()
	assert.Equal(t, 10, start)
	assert.Equal(t, 12, end)

	noEnd := &Booking{SchedulingMode: ModeHourly, DurationHours: 3, StartTime: types.MustTimeString("14:00")}
	start, end = noEnd.HourRange()
	assert.Equal(t, 14, start)
	assert.Equal(t, 17, end)

	event := &Booking{SchedulingMode: ModeWholeDay, DurationHours: 8}
	start, end = event.HourRange()
	assert.Equal(t, 0, start)
	assert.Equal(t, 24, end)
}

func TestBooking_OccupiesSlot(t *testing.T) {
	for _, s := range OccupyingStatuses {
		b := &Booking{Status: s}
		assert.True(t, b.OccupiesSlot(true), s)
		assert.True(t, b.OccupiesSlot(false), s)
	}

	cancelled := &Booking{Status: StatusCancelled}
	assert.True(t, cancelled.OccupiesSlot(false))
	assert.False(t, cancelled.OccupiesSlot(true))
}

func TestBookingPatch_Apply(t *testing.T) {
	b := &Booking{ClientName: "Anna", Price: 10000, Status: StatusPending}
	name := "Anna Nowak"
	price := int64(9000)
	status := StatusConfirmed

	patch := BookingPatch{ClientName: &name, Price: &price, Status: &status}
	assert.False(t, patch.IsEmpty())
	patch.Apply(b)

	assert.Equal(t, "Anna Nowak", b.ClientName)
	assert.Equal(t, int64(9000), b.Price)
	assert.Equal(t, StatusConfirmed, b.Status)
	assert.True(t, BookingPatch{}.IsEmpty())
}

func TestPromoCode_Expiry(t *testing.T) {
	loc := time.UTC
	expiry := time.Date(2025, 6, 30, 0, 0, 0, 0, loc)
	p := &PromoCode{ExpiresAt: &expiry}

	assert.False(t, p.IsExpired(time.Date(2025, 6, 30, 23, 0, 0, 0, loc)), "last day is still valid")
	assert.True(t, p.IsExpired(time.Date(2025, 7, 1, 0, 0, 0, 0, loc)))
	assert.False(t, (&PromoCode{}).IsExpired(time.Now()))
}

func TestPromoCode_Exhausted(t *testing.T) {
	limit := 2
	assert.False(t, (&PromoCode{MaxUses: &limit, UsedCount: 1}).IsExhausted())
	assert.True(t, (&PromoCode{MaxUses: &limit, UsedCount: 2}).IsExhausted())
	assert.False(t, (&PromoCode{UsedCount: 1000}).IsExhausted())
}

func TestStudioSettings_ActiveGlobalPromo(t *testing.T) {
	s := &StudioSettings{
		GlobalPromo:       &Discount{Code: "Lato25", Type: DiscountPercentage, Value: 25},
		GlobalPromoActive: true,
	}

	d, ok := s.ActiveGlobalPromo(" lato25 ")
	assert.True(t, ok)
	assert.Equal(t, "LATO25", d.Code)
	assert.True(t, d.Global)

	_, ok = s.ActiveGlobalPromo("OTHER")
	assert.False(t, ok)

	s.GlobalPromoActive = false
	_, ok = s.ActiveGlobalPromo("LATO25")
	assert.False(t, ok)
}
