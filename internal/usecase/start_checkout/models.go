package start_checkout

// Request модель запроса на оплату бронирования
type Request struct {
	BookingID int64
}

// Response ссылка на оплату
type Response struct {
	BookingID int64
	SessionID string
	URL       string
	Amount    int64
}
