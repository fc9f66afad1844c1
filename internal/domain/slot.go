package domain

// SlotReason explains why a slot is unavailable
type SlotReason string

const (
	ReasonNone          SlotReason = ""
	ReasonBookedSession SlotReason = "booked_session"
	ReasonBookedEvent   SlotReason = "booked_event"
	ReasonOutsideHours  SlotReason = "outside_hours"
)

// AvailabilitySlot is a candidate start hour; derived on every query and never stored
type AvailabilitySlot struct {
	Hour      int
	Available bool
	Reason    SlotReason
}

// Unavailable builds an unavailable slot with the given reason
func Unavailable(hour int, reason SlotReason) AvailabilitySlot {
	return AvailabilitySlot{Hour: hour, Available: false, Reason: reason}
}

// Free builds an available slot
func Free(hour int) AvailabilitySlot {
	return AvailabilitySlot{Hour: hour, Available: true}
}
