package middleware

import (
	"context"
	"net/http"
	"strconv"
)

type callerKey struct{}

// Identity достаёт идентификатор вызывающего из заголовка X-User-Id,
// который проставляет внешний слой аутентификации, и кладёт его в контекст.
// Отсутствие заголовка не ошибка: публичные выборки работают без него.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := r.Header.Get("X-User-Id"); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				r = r.WithContext(context.WithValue(r.Context(), callerKey{}, id))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// CallerID возвращает идентификатор вызывающего из контекста.
func CallerID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(callerKey{}).(int64)
	return id, ok
}
