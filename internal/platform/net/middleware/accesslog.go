package middleware

import (
	"net/http"
	"time"

	"numwash/internal/platform/logger"
)

// AccessLogOptions tunes the per-request log line
type AccessLogOptions struct {
	// Slow promotes requests taking >= Slow to warn level; 0 disables the promotion
	Slow time.Duration
}

// statusWriter records the status code and body size on the way through
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	n, err := sw.ResponseWriter.Write(b)
	sw.bytes += n
	return n, err
}

// AccessLogZerolog emits one structured line per request through the
// request scoped logger: method, path, status, elapsed and bytes written
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(sw, r)

			took := time.Since(start)
			log := logger.C(r.Context())
			line := log.Info()
			if opt.Slow > 0 && took >= opt.Slow {
				line = log.Warn()
			}
			line.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sw.status).
				Dur("elapsed", took).
				Int("bytes", sw.bytes).
				Msg("request complete")
		})
	}
}
