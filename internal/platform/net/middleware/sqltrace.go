package middleware

import (
	stdhttp "net/http"

	pnet "numwash/internal/platform/net"
	"numwash/internal/platform/store"
)

// TagSQLTrace copies the inbound request id onto the store's context key so
// SQL traces can be matched back to the request that issued them
func TagSQLTrace() func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			if id := pnet.RequestID(r.Context()); id != "" {
				r = r.WithContext(store.WithRequestID(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}
