package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
)

// AdminTokenHeader заголовок с токеном администратора
const AdminTokenHeader = "X-Admin-Token"

const msgUnauthorized = "требуется токен администратора"

// AdminAuth пропускает запросы только с корректным токеном администратора.
// Пустой токен в конфигурации закрывает административные маршруты полностью
func AdminAuth(token string, log Logger) func(http.Handler) http.Handler {
	expected := []byte(token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := []byte(r.Header.Get(AdminTokenHeader))

			if len(expected) == 0 || subtle.ConstantTimeCompare(provided, expected) != 1 {
				log.Warn("%s %s - admin token rejected (ip=%s)", r.Method, r.URL.Path, ClientIP(r))
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
