package discount

import "errors"

var (
	// ErrPromoCodeNotFound возвращается, когда промокод не найден
	ErrPromoCodeNotFound = errors.New("discount.repository: promo code not found")

	// ErrPromoCodeExhausted возвращается, когда лимит использований промокода исчерпан
	ErrPromoCodeExhausted = errors.New("discount.repository: promo code exhausted")

	// ErrGiftCardNotFound возвращается, когда подарочная карта не найдена
	ErrGiftCardNotFound = errors.New("discount.repository: gift card not found")

	// ErrGiftCardAlreadyUsed возвращается, когда подарочная карта уже погашена
	ErrGiftCardAlreadyUsed = errors.New("discount.repository: gift card already used")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("discount.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("discount.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("discount.repository: failed to scan row")
)
