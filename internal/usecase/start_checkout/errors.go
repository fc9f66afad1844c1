package start_checkout

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("start_checkout: booking not found")

	// ErrNotPending возвращается, когда бронирование уже подтверждено или отменено
	ErrNotPending = errors.New("start_checkout: booking is not pending")

	// ErrNothingToPay возвращается для полностью оплаченного скидками бронирования
	ErrNothingToPay = errors.New("start_checkout: nothing to pay")

	// ErrCheckoutDisabled возвращается, когда оплата не настроена
	ErrCheckoutDisabled = errors.New("start_checkout: checkout is not configured")

	// ErrPaymentProvider возвращается при ошибке платежного провайдера
	ErrPaymentProvider = errors.New("start_checkout: payment provider error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("start_checkout: internal error")
)
