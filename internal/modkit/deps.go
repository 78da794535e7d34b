// Package modkit provides module wiring and core deps
package modkit

import (
	"itemsexport/internal/platform/config"
	"itemsexport/internal/platform/logger"
	"itemsexport/internal/platform/store/pg"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  *pg.PG // nil when no database is configured
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check for optional stores
func (d Deps) ZeroOK() bool { return true }

// HasPG reports whether a Postgres client was wired
func (d Deps) HasPG() bool { return d.PG != nil && d.PG.Pool != nil }
