// Package api assembles the HTTP surface: the module set, docs, and the
// guarded v1 router.
package api

import (
	"numwash/internal/platform/config"
	"numwash/internal/platform/logger"
	phttp "numwash/internal/platform/net/http"
	"numwash/internal/platform/net/middleware"
	"numwash/internal/platform/store"

	"numwash/internal/modkit"
	"numwash/internal/modkit/httpkit"
	"numwash/internal/modkit/module"
	"numwash/internal/modkit/swaggerkit"

	apicleanup "numwash/internal/services/api/cleanup/module"
	metamod "numwash/internal/services/api/meta/module"

	cleanupdom "numwash/internal/services/cleanup/domain"

	// Worker cleanup module (owns the Session port)
	workercleanup "numwash/internal/services/cleanup/module"
)

// Options carries everything Mount needs
type Options struct {
	Config         config.Conf
	Store          *store.Store // nil unless the pg contact store is selected
	Logger         *logger.Logger
	Contacts       cleanupdom.StorePort
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount hangs the assembled module set off r under /api/v1
func Mount(r phttp.Router, opt Options) {
	// every module sees the same platform deps
	deps := modkit.Deps{
		Cfg: opt.Config,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}

	// Construct the WORKER cleanup module first and extract its Session port
	workerCleanup := workercleanup.New(
		deps,
		workercleanup.Options{},
		modkit.WithPorts(cleanupdom.Ports{Store: opt.Contacts}),
	)
	session := module.MustPortsOf[workercleanup.Ports](workerCleanup).Session

	// Inject that Session into the API cleanup module
	apiCleanup := apicleanup.New(
		deps,
		modkit.WithPorts(apicleanup.Ports{
			Session: session,
		}),
	)

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Contacts: opt.Contacts})),
		workerCleanup, // include worker so its ports are registered
		apiCleanup,    // API module that depends on the worker's Session
	}

	// versioned API with the common stack; a configured KEY gates every route
	stack := httpkit.CommonStack()
	if key := opt.Config.MayString("KEY", ""); key != "" {
		stack = append(stack, httpkit.Guard(middleware.StaticKey(key)))
	}
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		// docs and the profiler mount on the root router, outside the v1 stack
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// ports land in the registry under the module name so other
			// modules can look them up
			module.Register(m.Name(), m.Ports())

			m.MountRoutes(api)
		}
	})
}
