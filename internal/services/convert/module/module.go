// Package module provides the convert module implementation
package module

import (
	"itemsexport/internal/modkit"

	"itemsexport/internal/services/convert/domain"
	"itemsexport/internal/services/convert/ingest"
	"itemsexport/internal/services/convert/repo"
	"itemsexport/internal/services/convert/service"
	"itemsexport/internal/services/convert/sink/csvsink"
)

// Ports defines the convert module ports
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements the convert module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

var _ modkit.Module = (*Module)(nil)

// New constructs the convert module using ITEMS_* options from deps.Cfg
func New(deps modkit.Deps) *Module {
	return NewWithOptions(deps, FromConfig(deps.Cfg))
}

// NewWithOptions wires the file adapters, the normalizer and, when deps
// carries a Postgres client, the item store
func NewWithOptions(deps modkit.Deps, opts Options) *Module {
	svc := service.New(
		ingest.NewFiles(),
		service.NewNormalizer(nil),
		csvsink.New(),
		service.Config{
			Source: opts.Source,
			Fixed:  opts.Fixed,
			Output: opts.Output,
		},
	)
	if deps.HasPG() {
		svc.WithStore(repo.NewPG(deps.PG, opts.Table))
	}

	m := &Module{deps: deps, opts: opts}
	m.ports = Ports{Runner: svc}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return "convert" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Runner returns the typed run port
func (m *Module) Runner() domain.RunnerPort { return m.ports.Runner }

// Options returns the options the module was built with
func (m *Module) Options() Options { return m.opts }
