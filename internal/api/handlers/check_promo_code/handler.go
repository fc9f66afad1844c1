package check_promo_code

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/service/discounts"
	"github.com/m04kA/SMC-StudioBooking/pkg/validator"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "ошибка валидации"
	msgPromoCodeInvalid   = "промокод недействителен"
	msgPromoCodeExpired   = "срок действия промокода истек"
)

type Handler struct {
	service DiscountService
	logger  Logger
}

func NewHandler(service DiscountService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/promo-codes
// Неизвестный и исчерпанный промокод не различаются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckPromoCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /promo-codes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := validator.Validate(&req); fields != nil {
		h.logger.Warn("POST /promo-codes - Validation failed: %v", fields)
		handlers.RespondValidationError(w, msgValidationFailed, fields)
		return
	}

	discount, err := h.service.CheckPromoCode(r.Context(), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, discounts.ErrPromoCodeExpired):
			handlers.RespondNotFound(w, msgPromoCodeExpired)

		case errors.Is(err, discounts.ErrPromoCodeInvalid), errors.Is(err, discounts.ErrInvalidRequest):
			handlers.RespondNotFound(w, msgPromoCodeInvalid)

		default:
			h.logger.Error("POST /promo-codes - Failed to check promo code: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(discount))
}
