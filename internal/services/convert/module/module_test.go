package module

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"itemsexport/internal/modkit"
	"itemsexport/internal/platform/config"
	"itemsexport/internal/platform/testkit"
	"itemsexport/internal/services/convert/service"
)

func TestFromConfig_Defaults(t *testing.T) {
	for _, k := range []string{"ITEMS_SOURCE", "ITEMS_FIXED", "ITEMS_OUTPUT", "ITEMS_PG_DBURL", "ITEMS_PG_TABLE", "ITEMS_PG_TIMEOUT"} {
		t.Setenv(k, "")
	}
	o := FromConfig(config.New())
	if o.Source != "items.json" || o.Fixed != "fixed_data.json" || o.Output != "data.csv" {
		t.Fatalf("paths = %+v", o)
	}
	if o.PGEnabled() || o.Table != "items" || o.Timeout != 30*time.Second {
		t.Fatalf("pg opts = %+v", o)
	}
}

func TestFromConfig_Env(t *testing.T) {
	t.Setenv("ITEMS_SOURCE", "in.ndjson")
	t.Setenv("ITEMS_OUTPUT", "out.csv")
	t.Setenv("ITEMS_PG_DBURL", "postgres://u:p@h/db")
	t.Setenv("ITEMS_PG_TABLE", "media.items")
	t.Setenv("ITEMS_PG_MAX_CONNS", "2")
	t.Setenv("ITEMS_PG_LOG_SQL", "true")

	o := FromConfig(config.New())
	if o.Source != "in.ndjson" || o.Output != "out.csv" || o.Fixed != "fixed_data.json" {
		t.Fatalf("paths = %+v", o)
	}
	if !o.PGEnabled() || o.Table != "media.items" || o.MaxConns != 2 || !o.LogSQL {
		t.Fatalf("pg opts = %+v", o)
	}
}

func TestNewWithOptions_RunsWithoutPG(t *testing.T) {
	dir := t.TempDir()
	src := testkit.WriteFile(t, dir, "items.json", `{"title":"Show","redo":false,"itemtype":"episode","updated_date":{"$date":"2023-01-01T00:00:00Z"},"createdAt":{"$date":"2023-01-01T00:00:00Z"},"updatedAt":{"$date":"2023-01-01T00:00:00Z"}}`+"\n")
	opts := Options{Source: src, Fixed: filepath.Join(dir, "fixed_data.json"), Output: filepath.Join(dir, "data.csv")}

	m := NewWithOptions(modkit.Deps{Cfg: config.New()}, opts)
	if m.Name() != "convert" || m.Options() != opts {
		t.Fatalf("module meta = %s %+v", m.Name(), m.Options())
	}
	if svc, ok := m.Ports().(Ports).Runner.(*service.Service); !ok || svc.Store != nil {
		t.Fatalf("runner = %#v, want service without store", m.Ports())
	}

	sum, err := m.Runner().Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sum.Records != 1 {
		t.Fatalf("records = %d", sum.Records)
	}
	b, err := os.ReadFile(opts.Output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), ",Show,,,,,,False,episode,2023-01-01 00:00:00,") {
		t.Fatalf("csv:\n%s", b)
	}
}
