// Package contactstore selects and wires a concrete contact store backend.
//
// Three backends are supported: Postgres rows, Mongo documents and a plain
// vCard file. All of them satisfy the cleanup domain StorePort.
package contactstore

import (
	"context"
	"strings"

	"numwash/internal/modkit/repokit"
	"numwash/internal/platform/config"
	perr "numwash/internal/platform/errors"
	"numwash/internal/services/cleanup/domain"

	mongostore "numwash/internal/adapters/contactstore/mongo"
	pgstore "numwash/internal/adapters/contactstore/pg"
	vcfstore "numwash/internal/adapters/contactstore/vcf"
)

// Supported backend kinds
const (
	KindPG    = "pg"
	KindMongo = "mongo"
	KindVCF   = "vcf"
)

// Config selects and parameterizes the backend
type Config struct {
	Kind     string
	VCFPath  string
	MongoURL string
	MongoDB  string
}

// FromConfig reads the NUMWASH_CONTACT_* knobs
func FromConfig(cfg config.Conf) Config {
	c := cfg.Prefix("NUMWASH_CONTACT_")
	return Config{
		Kind:     c.MayEnum("STORE", KindPG, KindPG, KindMongo, KindVCF),
		VCFPath:  c.MayString("VCF_PATH", ""),
		MongoURL: c.MayString("MONGO_URL", ""),
		MongoDB:  c.MayString("MONGO_DB", "numwash"),
	}
}

// Closer releases backend resources; backends without any return a no-op
type Closer func(ctx context.Context) error

func noopCloser(context.Context) error { return nil }

// Open builds the selected backend
// pgdb is only consulted when the pg backend is selected
func Open(ctx context.Context, cfg Config, pgdb repokit.TxRunner) (domain.StorePort, Closer, error) {
	switch strings.ToLower(cfg.Kind) {
	case KindPG, "":
		if pgdb == nil {
			return nil, nil, perr.Newf(perr.ErrorCodeInvalidArgument,
				"contact store pg selected but postgres is not open")
		}
		s := pgstore.New(pgdb)
		if err := s.EnsureSchema(ctx); err != nil {
			return nil, nil, err
		}
		return s, noopCloser, nil

	case KindMongo:
		s, err := mongostore.Open(ctx, mongostore.Config{URL: cfg.MongoURL, Database: cfg.MongoDB})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case KindVCF:
		if cfg.VCFPath == "" {
			return nil, nil, perr.Newf(perr.ErrorCodeInvalidArgument,
				"contact store vcf selected but NUMWASH_CONTACT_VCF_PATH is empty")
		}
		return vcfstore.New(cfg.VCFPath), noopCloser, nil

	default:
		return nil, nil, perr.Newf(perr.ErrorCodeInvalidArgument,
			"unknown contact store kind %q", cfg.Kind)
	}
}
