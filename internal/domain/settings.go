package domain

import "time"

// StudioSettings is the studio-wide configuration read by the availability and pricing engines.
// It is fetched once per request and passed explicitly, never read from a global.
type StudioSettings struct {
	OpenHour                int // first bookable hour, inclusive
	CloseHour               int // end of the operating day, exclusive
	MinBookingNoticeMinutes int
	AdvanceBookingDays      int // 0 = unlimited
	ReleaseCancelledSlots   bool

	// Studio-wide promo, a promo code with unlimited uses
	GlobalPromo       *Discount
	GlobalPromoActive bool

	Location  *time.Location // fixed studio timezone, comes from process config
	UpdatedAt time.Time
}

// IsWithinHours reports whether [start, end) fits into the operating window
func (s *StudioSettings) IsWithinHours(start, end int) bool {
	return start >= s.OpenHour && end <= s.CloseHour && start < end
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (s *StudioSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// ActiveGlobalPromo returns the global promo if it is enabled and matches code
func (s *StudioSettings) ActiveGlobalPromo(code string) (*Discount, bool) {
	if !s.GlobalPromoActive || s.GlobalPromo == nil {
		return nil, false
	}
	if NormalizeCode(s.GlobalPromo.Code) != NormalizeCode(code) {
		return nil, false
	}
	d := *s.GlobalPromo
	d.Code = NormalizeCode(d.Code)
	d.Global = true
	return &d, true
}

// Today returns the current studio-local calendar day at midnight
func (s *StudioSettings) Today(now time.Time) time.Time {
	local := s.Local(now)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

// Local converts t into the studio timezone
func (s *StudioSettings) Local(t time.Time) time.Time {
	if s.Location == nil {
		return t
	}
	return t.In(s.Location)
}
