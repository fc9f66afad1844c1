package check_promo_code

import "github.com/m04kA/SMC-StudioBooking/internal/domain"

// CheckPromoCodeRequest HTTP request model
type CheckPromoCodeRequest struct {
	Code string `json:"code" validate:"required,max=64"`
}

// CheckPromoCodeResponse HTTP response model
type CheckPromoCodeResponse struct {
	PromoCode PromoCodeResponse `json:"promo_code"`
}

type PromoCodeResponse struct {
	DiscountValue int64  `json:"discount_value"`
	DiscountType  string `json:"discount_type"`
}

func FromDomain(d *domain.Discount) *CheckPromoCodeResponse {
	return &CheckPromoCodeResponse{PromoCode: PromoCodeResponse{
		DiscountValue: d.Value,
		DiscountType:  string(d.Type),
	}}
}
