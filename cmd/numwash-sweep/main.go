package main

import (
	"context"
	"flag"
	"os"

	"numwash/internal/adapters/contactstore"
	"numwash/internal/core/classify"
	"numwash/internal/modkit"
	"numwash/internal/modkit/module"
	"numwash/internal/modkit/repokit"
	"numwash/internal/platform/config"
	"numwash/internal/platform/logger"
	"numwash/internal/platform/store"

	cleanupdom "numwash/internal/services/cleanup/domain"
	cleanupmod "numwash/internal/services/cleanup/module"

	"github.com/joho/godotenv"
)

// setFlagEnv surfaces a non-empty flag to the env-driven config readers
func setFlagEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	_ = godotenv.Load()

	root := config.New()
	l := logger.Get()

	var (
		fStore   = flag.String("store", "", "contact store kind: pg | mongo | vcf (defaults to NUMWASH_CONTACT_STORE)")
		fVCF     = flag.String("vcf", "", "path to the .vcf file when -store vcf")
		fWorkers = flag.Int("workers", 0, "fallback submit concurrency (0 keeps the configured value)")
		fDryRun  = flag.Bool("dry-run", false, "load and detect, print the plan, change nothing")
	)
	flag.Parse()

	// Surface flags to modules that read FromConfig
	setFlagEnv("NUMWASH_CONTACT_STORE", *fStore)
	setFlagEnv("NUMWASH_CONTACT_VCF_PATH", *fVCF)

	csCfg := contactstore.FromConfig(root)

	ctx := context.Background()

	// the platform store comes up only when the pg backend is selected
	var st *store.Store
	var pgdb store.TxRunner
	if csCfg.Kind == contactstore.KindPG {
		pgCfg := root.Prefix("NUMWASH_PGSQL_")
		var err error
		st, err = store.Open(ctx, store.Config{
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
		}, store.WithLogger(*l))
		if err != nil {
			l.Panic().Err(err).Msg("store.Open failed")
		}
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()

		// a mutating job should not start against a half reachable store
		repokit.MustGuard(ctx, st)
		pgdb = st.PG
	}

	contacts, closeContacts, err := contactstore.Open(ctx, csCfg, pgdb)
	if err != nil {
		l.Panic().Err(err).Msg("contact store open failed")
	}
	defer func() {
		if err := closeContacts(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close contact store")
		}
	}()

	// Shared deps for modules
	deps := modkit.Deps{
		Cfg: root,
		PG:  pgdb,
		Log: *l,
	}

	cm := cleanupmod.New(
		deps,
		cleanupmod.Options{Workers: *fWorkers},
		modkit.WithPorts(cleanupdom.Ports{Store: contacts}),
	)
	module.Register(cm.Name(), cm.Ports())

	session := module.MustPortsOf[cleanupmod.Ports](cm).Session

	// log phase transitions while the run progresses
	go func() {
		for ev := range session.Events() {
			l.Debug().
				Str("phase", ev.Phase.String()).
				Int("contacts", ev.Contacts).
				Str("last_error", ev.LastError).
				Msg("session state")
		}
	}()

	if _, err := session.Load(ctx); err != nil {
		l.Fatal().Err(err).Msg("load failed")
	}

	snap, err := session.Detect()
	if err != nil {
		l.Fatal().Err(err).Msg("detect failed")
	}

	pending := 0
	for _, c := range session.Contacts() {
		pending += c.PendingEdits()
	}
	l.Info().
		Int("contacts", snap.Contacts).
		Int("phones", snap.Phones).
		Int("pending", pending).
		Msg("detect complete")

	if *fDryRun {
		for _, c := range session.Contacts() {
			for _, p := range c.Phones {
				if p.Action == classify.ActionSkip && p.Reason == "" {
					continue
				}
				l.Info().
					Str("contact", c.DisplayName).
					Str("raw", p.RawNumber).
					Str("action", p.Action.String()).
					Str("reason", p.Reason).
					Msg("planned edit")
			}
		}
		return
	}

	res, err := session.Apply(ctx)
	if err != nil {
		l.Fatal().Err(err).Msg("apply failed")
	}

	l.Info().
		Int("updated", res.Updated).
		Int("prefixed", res.Prefixed).
		Int("deleted", res.Deleted).
		Int("failed", res.Failed).
		Msg("apply complete")

	if res.HadErrors() {
		l.Fatal().Int("failed", res.Failed).Msg("apply finished with failures")
	}
}
