package patch_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmptyPatch         = "нет полей для обновления"
	msgNotFound           = "бронирование не найдено"
	msgInvalidStatus      = "некорректный статус бронирования"
	msgConflict           = "новое время пересекается с другим бронированием"
	msgStatusConflict     = "слот отмененного бронирования уже занят другим бронированием"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings?id=<id>
// Только для администратора. Тело только со status меняет статус,
// любые другие поля заменяются без проверки доступности и скидок
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.QueryInt64(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /bookings - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.PatchBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings - Invalid request body: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var result *models.BookingResponse
	switch {
	case req.IsEmpty():
		h.logger.Warn("PATCH /bookings - Empty patch: booking_id=%d", bookingID)
		handlers.RespondBadRequest(w, msgEmptyPatch)
		return
	case req.IsStatusOnly():
		result, err = h.service.TransitionStatus(r.Context(), bookingID, *req.Status)
	default:
		result, err = h.service.AdminReplaceBookingFields(r.Context(), bookingID, &req)
	}

	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("PATCH /bookings - Invalid status: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, bookings.ErrStatusConflict):
			h.logger.Warn("PATCH /bookings - Status conflict: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgStatusConflict)

		case errors.Is(err, bookings.ErrConflict):
			h.logger.Warn("PATCH /bookings - Conflict: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PATCH /bookings - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings - Booking updated: booking_id=%d, status=%s", bookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
