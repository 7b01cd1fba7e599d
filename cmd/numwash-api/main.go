// @title         numwash API
// @version       1.0.0
// @description   Phone cleanup sessions over the configured contact store

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"numwash/internal/adapters/contactstore"
	"numwash/internal/modkit/repokit"
	"numwash/internal/platform/config"
	"numwash/internal/platform/logger"
	phttp "numwash/internal/platform/net/http"
	"numwash/internal/platform/store"

	"numwash/internal/services/api"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	// service-scoped config for HTTP etc (NUMWASH_API_*)
	root := config.New()
	apiCfg := root.Prefix("NUMWASH_API_")

	// logging comes up first so later failures land somewhere visible
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	csCfg := contactstore.FromConfig(root)

	// the platform store comes up only when the pg backend is selected
	var st *store.Store
	var pgdb store.TxRunner
	if csCfg.Kind == contactstore.KindPG {
		pgCfg := root.Prefix("NUMWASH_PGSQL_") // pgCfg lives under NUMWASH_PGSQL_*
		var err error
		st, err = store.Open(
			ctx,
			store.Config{
				PG: store.PGConfig{
					Enabled:     true,
					URL:         pgCfg.MustString("DBURL"),
					MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
					SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
					LogSQL:      pgCfg.MayBool("LOG_SQL", true),
				},
			},
			store.WithLogger(*logger.Get()),
		)
		if err != nil {
			l.Panic().Err(err).Msg("store.Open failed")
		}
		defer func() {
			if err := st.Close(ctx); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()

		// fail fast when the pool cannot actually reach the database
		repokit.MustGuard(ctx, st)
		pgdb = st.PG
	}

	contacts, closeContacts, err := contactstore.Open(ctx, csCfg, pgdb)
	if err != nil {
		l.Panic().Err(err).Msg("contact store open failed")
	}
	defer func() {
		if err := closeContacts(ctx); err != nil {
			l.Error().Err(err).Msg("failed to close contact store")
		}
	}()

	// http server (reads NUMWASH_API_ADDR / NUMWASH_API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			Contacts:       contacts,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run until a signal lands; Run drains in-flight requests on its own
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server exited")
	}
}
