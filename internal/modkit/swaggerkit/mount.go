// Package swaggerkit mounts the Swagger UI and the doc.json it renders.
// The generated spec only exists under the swag build tag; the default
// build serves a skeleton so the UI keeps working either way.
package swaggerkit

import (
	"net/http"

	phttp "numwash/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SpecMutator edits the parsed spec before it is encoded to the client
type SpecMutator func(map[string]any)

var mutators []SpecMutator

// Register queues a mutator for doc.json. It applies on both builds, so
// modules can call it from init without carrying the swag tag themselves.
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// Mount wires the UI and the spec route when docs are enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON())
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
