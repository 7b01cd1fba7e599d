//go:build swag

package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"numwash/internal/platform/config"
	perr "numwash/internal/platform/errors"

	docs "numwash/internal/services/api/docs"
)

// serveDocJSON parses the generated spec, normalizes it for the UI and
// applies registered mutators before encoding
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		// OAS3 keeps the base url in servers, not BasePath
		ensureServers(spec, "/api/v1")
		applyTitleSuffix(spec)
		ensureErrorEnvelope(spec)

		addDefaultResponse(spec, "500", envelopeExample(
			http.StatusInternalServerError, perr.ErrorCodePanic, "panic recovered"))
		addDefaultResponse(spec, "400", envelopeExample(
			http.StatusBadRequest, perr.ErrorCodeValidation,
			"raw may only contain digits, spaces and a leading +"))

		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureServers normalizes the spec version for the UI. http-swagger cannot
// render 3.1 yet, so swagger 2 is lifted and 3.1 is pinned back to 3.0.3.
func ensureServers(spec map[string]any, url string) {
	if _, ok := spec["swagger"]; ok {
		delete(spec, "swagger")
		spec["openapi"] = "3.0.3"
	}
	if v, ok := spec["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// applyTitleSuffix appends the configured suffix to the spec title so a
// staging deployment can label its docs
func applyTitleSuffix(spec map[string]any) {
	suffix := config.New().Prefix("NUMWASH_API_").MayString("DOCS_TITLE_SUFFIX", "")
	if suffix == "" {
		return
	}
	info, ok := spec["info"].(map[string]any)
	if !ok {
		return
	}
	if title, ok := info["title"].(string); ok {
		info["title"] = title + " " + suffix
	}
}

// ensureErrorEnvelope declares the error schema the annotations reference.
// Fields mirror the runtime envelope so the docs never drift from the wire.
func ensureErrorEnvelope(spec map[string]any) {
	schemas := childMap(childMap(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}

	text := map[string]any{"type": "string"}
	i32 := map[string]any{"type": "integer", "format": "int32"}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": i32,
			"status":      text,
			"code":        i32,
			"error":       text,
			"request_id":  text,
		},
		"required": []any{"status_code", "status"},
	}
}

// envelopeExample builds a response node whose example carries the same
// status and code the runtime would put on the wire
func envelopeExample(status int, code perr.ErrorCode, msg string) map[string]any {
	return map[string]any{
		"description": http.StatusText(status),
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": status,
					"status":      http.StatusText(status),
					"code":        int(code),
					"error":       msg,
					"request_id":  "7f3c21aa90d1/XbGpQr4sLm-000042",
				},
			},
		},
	}
}

// eachOperation visits every operation node under paths
func eachOperation(spec map[string]any, visit func(op map[string]any)) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	for _, pathAny := range paths {
		path, ok := pathAny.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range path {
			if op, ok := opAny.(map[string]any); ok {
				visit(op)
			}
		}
	}
}

// addDefaultResponse fills in the given status response on every operation
// where the annotation left it out
func addDefaultResponse(spec map[string]any, status string, resp map[string]any) {
	eachOperation(spec, func(op map[string]any) {
		responses := childMap(op, "responses")
		if _, exists := responses[status]; !exists {
			responses[status] = resp
		}
	})
}

// childMap returns the named child map, creating it when absent or mistyped
func childMap(parent map[string]any, key string) map[string]any {
	if m, ok := parent[key].(map[string]any); ok {
		return m
	}
	m := map[string]any{}
	parent[key] = m
	return m
}
