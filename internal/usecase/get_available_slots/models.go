package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID типа услуги
	PackageID int64     // ID пакета
	Date      time.Time // Календарный день студии (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date          time.Time
	ServiceID     int64
	PackageID     int64
	Mode          domain.SchedulingMode
	DurationHours int
	Slots         []domain.AvailabilitySlot // по одному на каждый час рабочего окна
}
