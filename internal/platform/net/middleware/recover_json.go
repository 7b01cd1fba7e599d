// Package middleware provides thin adapters over chi middleware without leaking chi types
package middleware

import (
	stdjson "encoding/json"
	stdhttp "net/http"
	"runtime/debug"
	"strings"

	perr "numwash/internal/platform/errors"
	"numwash/internal/platform/logger"
	pnet "numwash/internal/platform/net"
)

// errWire is the minimal JSON error body this package can emit on its own.
// It mirrors the envelope the response helpers produce, minus the data field.
type errWire struct {
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

// indentedStack renders the goroutine stack with continuation lines tab
// indented, matching what chi's recoverer prints
func indentedStack() string {
	return strings.Join(strings.Split(string(debug.Stack()), "\n"), "\n\t")
}

// RecoverJSON turns a panic into a JSON 500 and logs the stack with the request id
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			cause := recover()
			if cause == nil {
				return
			}
			reqID := pnet.RequestID(r.Context())

			log := logger.C(r.Context())
			if log == nil {
				log = logger.Named("http")
			}
			log.Error().
				Str("request_id", reqID).
				Interface("panic", cause).
				Msgf("panic recovered\n%s", indentedStack())

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(stdhttp.StatusInternalServerError)
			_ = stdjson.NewEncoder(w).Encode(errWire{
				StatusCode: stdhttp.StatusInternalServerError,
				Status:     stdhttp.StatusText(stdhttp.StatusInternalServerError),
				Error:      perr.Root(perr.PanicErrf("panic recovered")).Error(),
				RequestID:  reqID,
			})
		}()
		next.ServeHTTP(w, r)
	})
}
