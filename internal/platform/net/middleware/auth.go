package middleware

import (
	"crypto/subtle"
	stdhttp "net/http"

	perr "numwash/internal/platform/errors"
	pnet "numwash/internal/platform/net"
)

// GuardPort authorizes a request before it reaches a module mux
type GuardPort interface {
	// Authorize returns nil when the request may proceed
	Authorize(r *stdhttp.Request) error
}

// Guard enforces p on every request. A nil port leaves the chain open,
// so callers can Guard unconditionally and decide at wiring time.
func Guard(p GuardPort, write func(w stdhttp.ResponseWriter, status int, body any)) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			if err := p.Authorize(r); err != nil {
				reqID := pnet.RequestID(r.Context())
				if reqID != "" {
					w.Header().Set("X-Request-ID", reqID)
				}
				status := perr.HTTPStatus(err)
				write(w, status, errWire{
					StatusCode: status,
					Status:     stdhttp.StatusText(status),
					Error:      err.Error(),
					RequestID:  reqID,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// StaticKey authorizes requests carrying the key in X-API-Key.
// The empty key matches nothing; wire a nil port to disable guarding instead.
type StaticKey string

// Authorize implements GuardPort
func (k StaticKey) Authorize(r *stdhttp.Request) error {
	got := r.Header.Get("X-API-Key")
	if k == "" || subtle.ConstantTimeCompare([]byte(got), []byte(k)) != 1 {
		return perr.Unauthorizedf("missing or invalid api key")
	}
	return nil
}
