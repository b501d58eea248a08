package shared

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"stayhub/internal/adapters/apper"
	"stayhub/internal/domain"
	"stayhub/internal/storage/memory"
	mysqlrepo "stayhub/internal/storage/mysql"
)

// OpenBackend builds the table store selected by cfg.Backend. The returned
// func releases whatever the backend holds open.
func OpenBackend(ctx context.Context, cfg Config) (domain.Backend, func(), error) {
	noop := func() {}
	switch cfg.Backend {
	case "apper":
		c, err := apper.New(cfg.ApperBase, cfg.ApperProjectID, cfg.ApperPublicKey, cfg.ApperRPS)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("base", cfg.ApperBase).Int("rps", cfg.ApperRPS).Msg("using apper backend")
		return c, noop, nil

	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("sql.Open: %w", err)
		}
		db.SetMaxOpenConns(20)
		db.SetConnMaxLifetime(5 * time.Minute)
		pctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := db.PingContext(pctx); err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("db ping: %w", err)
		}
		log.Info().Msg("database connection ok")
		return mysqlrepo.New(db), func() { _ = db.Close() }, nil

	case "memory":
		s := memory.New()
		if cfg.SeedFile != "" {
			n, err := s.LoadSeed(cfg.SeedFile)
			if err != nil {
				return nil, noop, err
			}
			log.Info().Str("file", cfg.SeedFile).Int("records", n).Msg("memory backend seeded")
		}
		return s, noop, nil
	}
	return nil, noop, fmt.Errorf("unknown BACKEND %q (want apper, mysql or memory)", cfg.Backend)
}
