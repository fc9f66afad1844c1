package domain

// Default studio configuration values
const (
	DefaultOpenHour                = 8
	DefaultCloseHour               = 20
	DefaultMinBookingNoticeMinutes = 60 // 1 hour
	DefaultAdvanceBookingDays      = 0  // 0 = unlimited
)

// Business validation constants
const (
	HoursPerDay             = 24
	MinDurationHours        = 1
	MaxPercentageDiscount   = 100
	MaxAdvanceBookingDays   = 730
	MaxBookingNoticeMinutes = 10080 // 1 week
	MaxNotesLength          = 2000
	MaxNameLength           = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses statuses that always hold a slot
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// AllStatuses every known booking status
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}
