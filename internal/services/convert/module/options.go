package module

import (
	"time"

	"itemsexport/internal/platform/config"
)

// Options holds configuration options for the convert module
type Options struct {
	Source string
	Fixed  string
	Output string

	// Postgres load, off when DBURL is empty
	DBURL    string
	Table    string
	MaxConns int
	SlowMs   int
	LogSQL   bool
	Timeout  time.Duration
}

// FromConfig reads the convert options from config with ITEMS_ prefix
func FromConfig(cfg config.Conf) Options {
	it := cfg.Prefix("ITEMS_")
	pg := it.Prefix("PG_")
	return Options{
		Source:   it.MayString("SOURCE", "items.json"),
		Fixed:    it.MayString("FIXED", "fixed_data.json"),
		Output:   it.MayString("OUTPUT", "data.csv"),
		DBURL:    pg.MayString("DBURL", ""),
		Table:    pg.MayString("TABLE", "items"),
		MaxConns: pg.MayInt("MAX_CONNS", 4),
		SlowMs:   pg.MayInt("SLOW_MS", 500),
		LogSQL:   pg.MayBool("LOG_SQL", false),
		Timeout:  pg.MayDuration("TIMEOUT", 30*time.Second),
	}
}

// PGEnabled reports whether a database load was requested
func (o Options) PGEnabled() bool { return o.DBURL != "" }
