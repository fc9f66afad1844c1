package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда тип услуги не найден
	ErrServiceNotFound = errors.New("catalog.repository: service type not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")
)
