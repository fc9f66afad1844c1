package discounts

import "errors"

var (
	// ErrInvalidRequest возвращается для пустого кода
	ErrInvalidRequest = errors.New("discounts.service: invalid request")

	// ErrPromoCodeInvalid возвращается для неизвестного, неактивного или исчерпанного промокода.
	// Эти случаи намеренно не различаются
	ErrPromoCodeInvalid = errors.New("discounts.service: promo code invalid")

	// ErrPromoCodeExpired возвращается для промокода с истекшим сроком действия
	ErrPromoCodeExpired = errors.New("discounts.service: promo code expired")

	// ErrGiftCardNotFound возвращается, когда подарочная карта не найдена
	ErrGiftCardNotFound = errors.New("discounts.service: gift card not found")

	// ErrGiftCardAlreadyUsed возвращается, когда подарочная карта уже погашена
	ErrGiftCardAlreadyUsed = errors.New("discounts.service: gift card already used")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("discounts.service: internal error")
)
