package check_promo_code

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

type DiscountService interface {
	CheckPromoCode(ctx context.Context, code string) (*domain.Discount, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
