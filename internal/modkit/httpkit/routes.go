package httpkit

import "net/http"

// MountUnder scopes a module under prefix. Its middlewares apply to the
// subtree only, then mount registers the routes on it
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		sub.Use(mw...)
		mount(sub)
	})
}
