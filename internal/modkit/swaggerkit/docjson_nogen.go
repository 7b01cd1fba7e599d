//go:build !swag

package swaggerkit

import (
	"encoding/json"
	"net/http"
)

// Builds without the swag tag carry no generated spec. Serve a skeleton,
// mutators applied, so the UI and any registered tweaks behave the same.
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		spec := map[string]any{
			"openapi": "3.0.3",
			"info":    map[string]any{"title": "numwash API", "version": "0.0.0"},
			"paths":   map[string]any{},
		}
		for _, m := range mutators {
			m(spec)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}
