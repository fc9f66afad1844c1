package check_gift_card

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

type DiscountService interface {
	CheckGiftCard(ctx context.Context, code string) (*domain.GiftCard, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
