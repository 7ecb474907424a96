package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"

	"culinary-be/internal/logger"
	"culinary-be/internal/metrics"

	"go.uber.org/zap"
)

// responseRecorder lets us capture HTTP status codes
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack keeps websocket upgrades working through the recorder.
func (r *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return h.Hijack()
}

// Logging logs every request and records it in m. It must wrap the ServeMux
// directly so the matched route pattern is visible after the call.
func Logging(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			timer := metrics.StartTimer()

			rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			duration := timer.Duration()
			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			if m != nil {
				m.ObserveRequest(r.Method, route, rec.statusCode, duration)
			}

			logger.FromCtx(r.Context()).Info("HTTP Request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("route", route),
				zap.Int("status", rec.statusCode),
				zap.Duration("duration", duration),
				zap.String("remote_ip", r.RemoteAddr),
			)
		})
	}
}
