package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
)

// Recover перехватывает панику в обработчике и отвечает 500
func Recover(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					requestID, _ := GetRequestID(r.Context())
					log.Error("%s %s - panic recovered (request_id=%s): %v\n%s",
						r.Method, r.URL.Path, requestID, rec, debug.Stack())
					handlers.RespondInternalError(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
