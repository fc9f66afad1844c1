package patch_booking

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
)

type BookingService interface {
	TransitionStatus(ctx context.Context, id int64, status string) (*models.BookingResponse, error)
	AdminReplaceBookingFields(ctx context.Context, id int64, req *models.PatchBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
