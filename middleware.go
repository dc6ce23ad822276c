package routedoc

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Middleware wraps a Mux with a standard net/http handler chain.
type Middleware func(next http.Handler) http.Handler

// Recovery returns middleware that recovers from panics and responds with
// a generic 500 problem details body. The panic value is only logged.
func Recovery(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.ErrorContext(r.Context(), "panic recovered",
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					)
					writeErrorResponse(w, &ProblemDetail{
						Type:   "about:blank",
						Title:  http.StatusText(http.StatusInternalServerError),
						Status: http.StatusInternalServerError,
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
