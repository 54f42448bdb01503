package middleware

import (
	"net/http"

	"github.com/usluga-market/MPB-BookingService/internal/api/handlers"
)

// Auth проверяет наличие заголовка X-User-ID. Сервис доверяет шлюзу,
// который аутентифицирует пользователя и проставляет заголовок
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := handlers.ActorID(r); err != nil {
			handlers.RespondUnauthorized(w, "не указан пользователь")
			return
		}
		next.ServeHTTP(w, r)
	})
}
