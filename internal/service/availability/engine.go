// Package availability вычисляет почасовые слоты студии по снимку бронирований.
// Функции пакета чистые: одинаковые входные данные всегда дают одинаковый результат.
package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Params входные данные движка доступности
type Params struct {
	Mode          domain.SchedulingMode
	DurationHours int
	Date          time.Time // календарный день студии
	Now           time.Time
	Settings      *domain.StudioSettings
	Bookings      []*domain.Booking // бронирования на Date (в любом статусе)
}

// occupancy сводка занятости дня
type occupancy struct {
	hasEvent bool
	sessions [][2]int // занятые интервалы [start, end) почасовых бронирований
}

// ComputeSlots возвращает слоты для каждого часа в рабочем окне [open, close)
//
// Приоритет причин: booked_event, booked_session, outside_hours.
// Для услуг на весь день все часы получают одинаковый результат
func ComputeSlots(p Params) []domain.AvailabilitySlot {
	s := p.Settings
	occ := collectOccupancy(p.Date, p.Bookings, s.ReleaseCancelledSlots)
	cutoff := noticeCutoff(p.Date, p.Now, s)

	slots := make([]domain.AvailabilitySlot, 0, s.CloseHour-s.OpenHour)

	if p.Mode == domain.ModeWholeDay {
		reason := domain.ReasonNone
		switch {
		case occ.hasEvent:
			reason = domain.ReasonBookedEvent
		case len(occ.sessions) > 0:
			reason = domain.ReasonBookedSession
		case cutoff > s.OpenHour*60:
			// день уже начался (или начнется раньше минимального срока уведомления)
			reason = domain.ReasonOutsideHours
		}
		for h := s.OpenHour; h < s.CloseHour; h++ {
			slots = append(slots, slotFor(h, reason))
		}
		return slots
	}

	for h := s.OpenHour; h < s.CloseHour; h++ {
		end := h + p.DurationHours
		reason := domain.ReasonNone
		switch {
		case occ.hasEvent:
			reason = domain.ReasonBookedEvent
		case occ.overlaps(h, end):
			reason = domain.ReasonBookedSession
		case end > s.CloseHour || h*60 < cutoff:
			reason = domain.ReasonOutsideHours
		}
		slots = append(slots, slotFor(h, reason))
	}

	return slots
}

// CheckStart проверяет один старт на момент фиксации бронирования.
// Возвращает ReasonNone, если слот свободен. Для услуг на весь день startHour не используется
func CheckStart(p Params, startHour int) domain.SlotReason {
	slots := ComputeSlots(p)
	if len(slots) == 0 {
		return domain.ReasonOutsideHours
	}

	if p.Mode == domain.ModeWholeDay {
		return slots[0].Reason
	}

	for _, slot := range slots {
		if slot.Hour == startHour {
			return slot.Reason
		}
	}
	return domain.ReasonOutsideHours
}

// ValidateDate проверяет, что дата не в прошлом и укладывается в горизонт бронирования
func ValidateDate(date, now time.Time, s *domain.StudioSettings) error {
	today := dayKey(s.Today(now))
	day := dayKey(date)

	if day.Before(today) {
		return ErrDateInPast
	}

	if s.HasAdvanceBookingLimit() && day.After(today.AddDate(0, 0, s.AdvanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, s.AdvanceBookingDays)
	}

	return nil
}

// Overlaps проверка пересечения полуоткрытых интервалов [s1,e1) и [s2,e2)
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

func collectOccupancy(date time.Time, bookings []*domain.Booking, releaseCancelled bool) occupancy {
	var occ occupancy
	day := dayKey(date)

	for _, b := range bookings {
		if !dayKey(b.BookingDate).Equal(day) || !b.OccupiesSlot(releaseCancelled) {
			continue
		}
		if b.IsWholeDay() {
			occ.hasEvent = true
			continue
		}
		start, end := b.HourRange()
		occ.sessions = append(occ.sessions, [2]int{start, end})
	}

	return occ
}

func (o occupancy) overlaps(start, end int) bool {
	for _, iv := range o.sessions {
		if Overlaps(start, end, iv[0], iv[1]) {
			return true
		}
	}
	return false
}

// noticeCutoff минута дня, раньше которой нельзя начинать; 0 для будущих дат
func noticeCutoff(date, now time.Time, s *domain.StudioSettings) int {
	local := s.Local(now)
	if !dayKey(date).Equal(dayKey(local)) {
		return 0
	}
	return local.Hour()*60 + local.Minute() + s.MinBookingNoticeMinutes
}

// dayKey календарный день без времени и часового пояса
func dayKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func slotFor(hour int, reason domain.SlotReason) domain.AvailabilitySlot {
	if reason == domain.ReasonNone {
		return domain.Free(hour)
	}
	return domain.Unavailable(hour, reason)
}
