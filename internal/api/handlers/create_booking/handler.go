package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-StudioBooking/pkg/validator"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "ошибка валидации"
	msgInvalidDateTime    = "некорректный формат даты или времени"
	msgServiceNotFound    = "услуга не найдена"
	msgPackageNotFound    = "пакет не найден"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
	msgSlotNotAvailable   = "этот слот только что заняли, выберите другой"
	msgPromoCodeInvalid   = "промокод недействителен"
	msgPromoCodeExpired   = "срок действия промокода истек"
	msgGiftCardNotFound   = "подарочная карта не найдена"
	msgGiftCardUsed       = "подарочная карта уже использована"
	msgPriceChanged       = "цена изменилась, обновите страницу"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := validator.Validate(&req); fields != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", fields)
		handlers.RespondValidationError(w, msgValidationFailed, fields)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: service_id=%d, package_id=%d, date=%s, start=%s",
				req.ServiceID, req.PackageID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrGiftCardAlreadyUsed):
			h.logger.Warn("POST /bookings - Gift card already used")
			handlers.RespondConflict(w, msgGiftCardUsed)

		case errors.Is(err, createBooking.ErrPriceChanged):
			h.logger.Warn("POST /bookings - Quoted price mismatch: package_id=%d", req.PackageID)
			handlers.RespondConflict(w, msgPriceChanged)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrPackageNotFound):
			h.logger.Warn("POST /bookings - Package not found: service_id=%d, package_id=%d", req.ServiceID, req.PackageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, createBooking.ErrPromoCodeInvalid):
			h.logger.Warn("POST /bookings - Promo code invalid")
			handlers.RespondNotFound(w, msgPromoCodeInvalid)

		case errors.Is(err, createBooking.ErrPromoCodeExpired):
			h.logger.Warn("POST /bookings - Promo code expired")
			handlers.RespondNotFound(w, msgPromoCodeExpired)

		case errors.Is(err, createBooking.ErrGiftCardNotFound):
			h.logger.Warn("POST /bookings - Gift card not found")
			handlers.RespondNotFound(w, msgGiftCardNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: start=%s, end=%s", req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: date=%s, start=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: service_id=%d, package_id=%d, date=%s, error=%v",
				req.ServiceID, req.PackageID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, date=%s, price=%d",
		result.Booking.ID, req.Date, result.Booking.Price)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
