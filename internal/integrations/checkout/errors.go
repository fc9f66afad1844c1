package checkout

import "errors"

var (
	// ErrInvalidRequest возвращается при некорректных параметрах сессии оплаты
	ErrInvalidRequest = errors.New("checkout client: invalid request")

	// ErrProvider возвращается, когда платежный провайдер отклонил запрос или недоступен
	ErrProvider = errors.New("checkout client: payment provider error")

	// ErrInvalidResponse возвращается, когда в ответе провайдера нет ссылки на оплату
	ErrInvalidResponse = errors.New("checkout client: invalid response")
)
