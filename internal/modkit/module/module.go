// Package module carries the module contract plus the port plumbing that
// lets one module consume what another publishes.
package module

import (
	phttp "numwash/internal/platform/net/http"
)

// Module mirrors the modkit contract. It lives here as well so the port
// helpers can accept modules without importing modkit back
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
