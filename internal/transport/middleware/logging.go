package middleware

import (
	"net/http"
	"time"

	"github.com/frahmantamala/cost-manager/pkg/logger"

	chiMiddleware "github.com/go-chi/chi/middleware"
)

// RequestLogger logs one line per request with method, path, status and
// latency, using the context logger so the trace ID rides along.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		logger.From(r.Context()).Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds())
	})
}
