package check_gift_card

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
	msgGiftCardNotFound   = "подарочная карта не найдена"
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

// Handle POST /api/v1/gift-cards
// Погашенная карта возвращается с is_used = true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckGiftCardRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /gift-cards - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := validator.Validate(&req); fields != nil {
		h.logger.Warn("POST /gift-cards - Validation failed: %v", fields)
		handlers.RespondValidationError(w, msgValidationFailed, fields)
		return
	}

	card, err := h.service.CheckGiftCard(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, discounts.ErrGiftCardNotFound) || errors.Is(err, discounts.ErrInvalidRequest) {
			handlers.RespondNotFound(w, msgGiftCardNotFound)
			return
		}
		h.logger.Error("POST /gift-cards - Failed to check gift card: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(card))
}
