package create_booking

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса (без обращения к хранилищу)
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.PackageID <= 0 {
		return fmt.Errorf("%w: packageId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	for field, t := range map[string]types.TimeString{"start_time": req.StartTime, "end_time": req.EndTime} {
		if t.IsZero() {
			continue
		}
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: invalid %s: %v", ErrInvalidInput, field, err)
		}
		if !t.IsWholeHour() {
			return fmt.Errorf("%w: %s must be a whole hour", ErrInvalidInput, field)
		}
	}

	return nil
}

// validateAgainstPackage проверяет согласованность запроса с режимом услуги и пакетом
func validateAgainstPackage(req *Request, service *domain.ServiceType, pkg *domain.Package) error {
	if service.RequiresVenue {
		if isBlank(req.VenueCity) || isBlank(req.VenuePlace) {
			return fmt.Errorf("%w: venue_city and venue_place are required for %s", ErrInvalidInput, service.Name)
		}
	}

	if service.Mode == domain.ModeWholeDay {
		return nil
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: start_time is required for %s", ErrInvalidInput, service.Name)
	}

	end := req.StartTime.Hour() + pkg.DurationHours
	if end > domain.HoursPerDay {
		return fmt.Errorf("%w: booking cannot pass midnight", ErrInvalidTimeSlot)
	}
	if !req.EndTime.IsZero() && req.EndTime.Hour() != end {
		return fmt.Errorf("%w: end_time must be %02d:00 for a %dh package", ErrInvalidTimeSlot, end, pkg.DurationHours)
	}

	return nil
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
