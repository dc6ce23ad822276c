package routedoc

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// dispatch is what a Mux reports about one request to the Logger
// middleware wrapping it.
type dispatch struct {
	pattern string
	accept  string
	stage   FilterStage
	failed  bool
}

type dispatchKey struct{}

// dispatchFrom returns the record installed by Logger, or nil.
func dispatchFrom(ctx context.Context) *dispatch {
	d, _ := ctx.Value(dispatchKey{}).(*dispatch)
	return d
}

func (d *dispatch) matched(pattern, accept string) {
	if d != nil {
		d.pattern, d.accept = pattern, accept
	}
}

func (d *dispatch) filterFailed(stage FilterStage) {
	if d != nil && !d.failed {
		d.stage, d.failed = stage, true
	}
}

// responseRecorder wraps http.ResponseWriter to capture the status code and size.
type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Unwrap returns the underlying ResponseWriter (supports http.ResponseController).
func (r *responseRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Logger returns middleware that logs each request. Behind a Mux the entry
// also carries the matched route pattern, the accept type of the variant
// that served it and the filter stage that failed, if any.
func Logger(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			d := &dispatch{}
			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), dispatchKey{}, d)))

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Duration("latency", time.Since(start)),
				slog.Int("size", rec.size),
				slog.String("remote", r.RemoteAddr),
			}
			if d.pattern != "" {
				attrs = append(attrs, slog.String("pattern", d.pattern))
			}
			if d.accept != "" {
				attrs = append(attrs, slog.String("accept_type", d.accept))
			}
			if d.failed {
				attrs = append(attrs, slog.String("failed_stage", d.stage.String()))
			}

			logger.LogAttrs(r.Context(), slog.LevelInfo, "request", attrs...)
		})
	}
}
