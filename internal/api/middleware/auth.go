// Package middleware содержит HTTP middleware: идентификация
// пользователя и сбор метрик запросов.
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sunstate-driving/scheduling-service/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

const msgMissingUserID = "X-User-ID header is required"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth извлекает идентификатор пользователя из заголовка X-User-ID.
// Аутентификацию выполняет шлюз перед сервисом, здесь заголовку доверяем.
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDStr := r.Header.Get("X-User-ID")
			userID, err := strconv.ParseInt(userIDStr, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("%s %s - Missing or invalid X-User-ID header", r.Method, r.URL.Path)
				handlers.RespondError(w, http.StatusUnauthorized, msgMissingUserID)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID возвращает идентификатор пользователя из контекста запроса
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
