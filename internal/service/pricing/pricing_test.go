package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

func TestComputeFinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		base     int64
		promo    *domain.Discount
		giftCard *domain.GiftCard
		want     Quote
	}{
		{
			name: "no discounts",
			base: 20000,
			want: Quote{OriginalPrice: 20000, Price: 20000},
		},
		{
			name:     "percentage promo then gift card",
			base:     35000,
			promo:    &domain.Discount{Type: domain.DiscountPercentage, Value: 10},
			giftCard: &domain.GiftCard{Amount: 5000},
			want:     Quote{OriginalPrice: 35000, PromoDiscount: 3500, GiftCardDiscount: 5000, Price: 26500},
		},
		{
			name:     "oversized fixed promo clamps to zero and gift card stays at zero",
			base:     10000,
			promo:    &domain.Discount{Type: domain.DiscountFixed, Value: 15000},
			giftCard: &domain.GiftCard{Amount: 5000},
			want:     Quote{OriginalPrice: 10000, PromoDiscount: 10000, GiftCardDiscount: 0, Price: 0},
		},
		{
			name:  "percentage discount is floored",
			base:  999,
			promo: &domain.Discount{Type: domain.DiscountPercentage, Value: 15},
			// 999 * 15 / 100 = 149.85 -> 149
			want: Quote{OriginalPrice: 999, PromoDiscount: 149, Price: 850},
		},
		{
			name:  "hundred percent",
			base:  12345,
			promo: &domain.Discount{Type: domain.DiscountPercentage, Value: 100},
			want:  Quote{OriginalPrice: 12345, PromoDiscount: 12345, Price: 0},
		},
		{
			name:     "gift card larger than price",
			base:     3000,
			giftCard: &domain.GiftCard{Amount: 10000},
			want:     Quote{OriginalPrice: 3000, GiftCardDiscount: 3000, Price: 0},
		},
		{
			name:  "free package",
			base:  0,
			promo: &domain.Discount{Type: domain.DiscountFixed, Value: 500},
			want:  Quote{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeFinalPrice(tt.base, tt.promo, tt.giftCard))
		})
	}
}

func TestComputeFinalPrice_NeverNegative(t *testing.T) {
	bases := []int64{0, 1, 99, 100, 101, 35000, 1_000_000}
	promos := []*domain.Discount{
		nil,
		{Type: domain.DiscountPercentage, Value: 1},
		{Type: domain.DiscountPercentage, Value: 33},
		{Type: domain.DiscountPercentage, Value: 100},
		{Type: domain.DiscountFixed, Value: 1},
		{Type: domain.DiscountFixed, Value: 50_000},
	}
	cards := []*domain.GiftCard{nil, {Amount: 1}, {Amount: 5000}, {Amount: 2_000_000}}

	for _, base := range bases {
		for _, promo := range promos {
			for _, card := range cards {
				q := ComputeFinalPrice(base, promo, card)
				assert.GreaterOrEqual(t, q.Price, int64(0))
				assert.LessOrEqual(t, q.Price, base)
				assert.Equal(t, base, q.OriginalPrice)
				assert.Equal(t, base, q.Price+q.PromoDiscount+q.GiftCardDiscount)
			}
		}
	}
}
