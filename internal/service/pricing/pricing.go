// Package pricing вычисляет итоговую стоимость бронирования.
// Вся арифметика в целых минорных единицах валюты.
package pricing

import (
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Quote разбивка стоимости
type Quote struct {
	OriginalPrice    int64 // базовая цена пакета
	PromoDiscount    int64 // фактически вычтено промокодом
	GiftCardDiscount int64 // фактически вычтено подарочной картой
	Price            int64 // к оплате, всегда >= 0
}

// ComputeFinalPrice применяет скидки в фиксированном порядке:
// процентный промокод (скидка округляется вниз), затем фиксированный промокод, затем подарочная карта.
// После каждого шага цена не опускается ниже нуля, остаток скидки сгорает
func ComputeFinalPrice(basePrice int64, promo *domain.Discount, giftCard *domain.GiftCard) Quote {
	if basePrice < 0 {
		basePrice = 0
	}

	q := Quote{OriginalPrice: basePrice, Price: basePrice}

	if promo != nil {
		before := q.Price
		switch promo.Type {
		case domain.DiscountPercentage:
			q.Price = subtract(q.Price, percentOf(q.Price, promo.Value))
		case domain.DiscountFixed:
			q.Price = subtract(q.Price, promo.Value)
		}
		q.PromoDiscount = before - q.Price
	}

	if giftCard != nil {
		before := q.Price
		q.Price = subtract(q.Price, giftCard.Amount)
		q.GiftCardDiscount = before - q.Price
	}

	return q
}

// percentOf возвращает floor(amount * percent / 100), percent ограничен 0..100
func percentOf(amount, percent int64) int64 {
	if percent <= 0 {
		return 0
	}
	if percent > domain.MaxPercentageDiscount {
		percent = domain.MaxPercentageDiscount
	}
	return amount * percent / 100
}

func subtract(price, amount int64) int64 {
	if amount <= 0 {
		return price
	}
	if amount >= price {
		return 0
	}
	return price - amount
}
