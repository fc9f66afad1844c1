package start_checkout

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	startCheckout "github.com/m04kA/SMC-StudioBooking/internal/usecase/start_checkout"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgNotPending       = "бронирование не ожидает оплаты"
	msgNothingToPay     = "нечего оплачивать"
	msgPaymentFailed    = "платежный сервис недоступен, попробуйте позже"
	msgDisabled         = "онлайн-оплата не настроена"
)

type Handler struct {
	useCase StartCheckoutUseCase
	logger  Logger
}

func NewHandler(useCase StartCheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/checkout - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &startCheckout.Request{BookingID: bookingID})
	if err != nil {
		switch {
		case errors.Is(err, startCheckout.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/checkout - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, startCheckout.ErrNotPending):
			h.logger.Warn("POST /bookings/{id}/checkout - Not pending: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, startCheckout.ErrNothingToPay):
			h.logger.Info("POST /bookings/{id}/checkout - Nothing to pay: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNothingToPay)

		case errors.Is(err, startCheckout.ErrCheckoutDisabled):
			h.logger.Warn("POST /bookings/{id}/checkout - Checkout disabled")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgDisabled)

		case errors.Is(err, startCheckout.ErrPaymentProvider):
			h.logger.Error("POST /bookings/{id}/checkout - Provider error: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentFailed)

		default:
			h.logger.Error("POST /bookings/{id}/checkout - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/checkout - Session created: booking_id=%d, session=%s, amount=%d",
		bookingID, result.SessionID, result.Amount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
