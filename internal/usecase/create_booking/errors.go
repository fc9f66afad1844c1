package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrPackageNotFound возвращается, когда пакет не найден, неактивен или не относится к услуге
	ErrPackageNotFound = errors.New("create_booking: package not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrSlotNotAvailable возвращается, когда слот или день уже заняты на момент фиксации
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда время вне рабочего окна студии или не согласовано с длительностью пакета
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается, когда старт нарушает минимальный срок уведомления
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrPromoCodeInvalid возвращается для неизвестного или исчерпанного промокода
	ErrPromoCodeInvalid = errors.New("create_booking: promo code invalid")

	// ErrPromoCodeExpired возвращается для просроченного промокода
	ErrPromoCodeExpired = errors.New("create_booking: promo code expired")

	// ErrGiftCardNotFound возвращается, когда подарочная карта не найдена
	ErrGiftCardNotFound = errors.New("create_booking: gift card not found")

	// ErrGiftCardAlreadyUsed возвращается, когда подарочная карта уже погашена
	ErrGiftCardAlreadyUsed = errors.New("create_booking: gift card already used")

	// ErrPriceChanged возвращается, когда цена, показанная клиенту, не совпадает с пересчитанной
	ErrPriceChanged = errors.New("create_booking: price changed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
