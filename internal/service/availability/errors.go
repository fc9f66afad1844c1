package availability

import "errors"

var (
	// ErrDateInPast возвращается для даты раньше текущего дня студии
	ErrDateInPast = errors.New("availability: date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("availability: date is too far in the future")
)
