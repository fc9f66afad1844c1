package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_available_slots"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date      string          `json:"date"`
	ServiceID int64           `json:"serviceId"`
	PackageID int64           `json:"packageId"`
	Mode      string          `json:"mode"`
	Hours     int             `json:"hours"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot модель часового слота; reason = null для свободного слота
type AvailableSlot struct {
	Hour      int     `json:"hour"`
	Available bool    `json:"available"`
	Reason    *string `json:"reason"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{Hour: slot.Hour, Available: slot.Available}
		if slot.Reason != domain.ReasonNone {
			reason := string(slot.Reason)
			slots[i].Reason = &reason
		}
	}

	return &AvailabilityResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		ServiceID: resp.ServiceID,
		PackageID: resp.PackageID,
		Mode:      string(resp.Mode),
		Hours:     resp.DurationHours,
		Slots:     slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(serviceID, packageID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID: serviceID,
		PackageID: packageID,
		Date:      date,
	}, nil
}
