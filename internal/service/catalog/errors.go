package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда тип услуги не найден или неактивен
	ErrServiceNotFound = errors.New("catalog.service: service not found")

	// ErrPackageNotFound возвращается, когда пакет не найден, неактивен или принадлежит другой услуге
	ErrPackageNotFound = errors.New("catalog.service: package not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog.service: internal error")
)
