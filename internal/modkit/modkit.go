// Package modkit holds the small contract every mountable module satisfies
// plus the option plumbing used to assemble one
package modkit

import (
	"numwash/internal/modkit/repokit"
	"numwash/internal/platform/config"
	"numwash/internal/platform/logger"
	phttp "numwash/internal/platform/net/http"
)

// Module is what the server mounts. Three methods keep modules decoupled
// from each other
type Module interface {
	// MountRoutes attaches the module's endpoints to the router seam
	MountRoutes(r phttp.Router)
	// Ports exposes the module's cross-wiring surface; the concrete type
	// is the module's own
	Ports() any
	// Name identifies the module in logs and the registry
	Name() string
}

// Deps carries the process-wide handles modules build on. Plain wiring,
// no behavior
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
}
