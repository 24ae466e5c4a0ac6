package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/howzue/pkg/ctxutil"
)

// Logger returns middleware that logs each HTTP request with method, path,
// status code, duration, and context identifiers (request_id, identity).
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			duration := time.Since(start)
			requestID := ctxutil.RequestIDFromCtx(r.Context())

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Duration("duration", duration),
				slog.String("request_id", requestID),
			}
			if id, ok := identityOf(r, sw); ok {
				attrs = append(attrs, slog.String("identity", id))
			}

			level := slog.LevelInfo
			if sw.status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

// identityOf prefers the identity reported through SetIdentity by Auth,
// which runs inside Logger.
func identityOf(r *http.Request, sw *statusWriter) (string, bool) {
	if sw.identity != "" {
		return sw.identity, true
	}
	return ctxutil.IdentityFromCtx(r.Context())
}

// statusWriter wraps http.ResponseWriter to capture the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	identity    string
}

// SetIdentity lets an inner middleware report the authenticated identity.
func (w *statusWriter) SetIdentity(id string) { w.identity = id }

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}
