package checkout

// SessionRequest данные для создания сессии оплаты
type SessionRequest struct {
	BookingID   int64
	Amount      int64 // минорные единицы валюты
	Email       string
	Description string
}

// Session созданная сессия оплаты
type Session struct {
	ID  string
	URL string // адрес для перенаправления клиента
}

// Config настройки клиента
type Config struct {
	SecretKey  string
	Currency   string
	SuccessURL string
	CancelURL  string
}
