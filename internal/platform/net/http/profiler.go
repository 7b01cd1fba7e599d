package http

import (
	stdhttp "net/http"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler exposes the chi pprof mux under prefix, e.g. "/debug".
// A disabled mount registers nothing at all.
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	// the profiler mux expects to live at root, so strip the prefix first
	h := stdhttp.StripPrefix(prefix, mw.Profiler())

	// cover both the bare prefix and everything below it
	for _, pattern := range []string{prefix, prefix + "/*"} {
		r.Get(pattern, func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			h.ServeHTTP(w, req)
		})
	}
}
