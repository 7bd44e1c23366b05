package middleware

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"cat-health-api/internal/httpx"
)

// Recover converts handler panics into a generic JSON 500 instead of letting
// the connection die. The panic value and stack reach the log, never the client.
func Recover(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if log != nil {
						log.Errorw("panic in handler",
							"method", r.Method,
							"uri", r.RequestURI,
							"panic", fmt.Sprint(rec),
						)
					}
					httpx.Error(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
