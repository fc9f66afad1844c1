package check_gift_card

import "github.com/m04kA/SMC-StudioBooking/internal/domain"

// CheckGiftCardRequest HTTP request model
type CheckGiftCardRequest struct {
	Code string `json:"code" validate:"required,max=64"`
}

// CheckGiftCardResponse HTTP response model
type CheckGiftCardResponse struct {
	GiftCard GiftCardResponse `json:"gift_card"`
}

type GiftCardResponse struct {
	Amount int64 `json:"amount"`
	IsUsed bool  `json:"is_used"`
}

func FromDomain(c *domain.GiftCard) *CheckGiftCardResponse {
	return &CheckGiftCardResponse{GiftCard: GiftCardResponse{Amount: c.Amount, IsUsed: c.IsUsed}}
}
