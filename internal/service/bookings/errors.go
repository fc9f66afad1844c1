package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrInvalidStatus возвращается при попытке установить неизвестный статус
	ErrInvalidStatus = errors.New("bookings.service: invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings.service: invalid input data")

	// ErrConflict возвращается, когда правка администратора нарушает ограничение на пересечение в БД
	ErrConflict = errors.New("bookings.service: booking overlaps another booking")

	// ErrStatusConflict возвращается, когда отмененное бронирование нельзя вернуть в работу:
	// его слот уже занят другим бронированием
	ErrStatusConflict = errors.New("bookings.service: slot of cancelled booking is taken")

	// ErrNotCalendarEvent возвращается для бронирований, которые еще не подтверждены или отменены
	ErrNotCalendarEvent = errors.New("bookings.service: booking is not confirmed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
