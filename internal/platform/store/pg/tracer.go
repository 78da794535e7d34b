package pg

import (
	"context"
	"strings"
	"time"

	"itemsexport/internal/platform/logger"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives one event per finished statement
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer returns a QueryTracer that always prints SQL, independent of the
// process-wide root level
func Tracer(root logger.Logger) QueryTracer {
	ll := root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()
	return &zlTracer{log: ll}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	elapsedMs := float64(ev.ElapsedUS) / 1000.0
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}

	evt.Float64("elapsed_ms", elapsedMs).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("pg query")
}

// pgxTracer bridges pgx's query and copy hooks to a QueryTracer
type pgxTracer struct {
	qt     QueryTracer
	slowMs int
}

type traceKey struct{}

type traceStart struct {
	sql  string
	args any
	at   time.Time
}

var now = time.Now

func (t *pgxTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{sql: data.SQL, args: data.Args, at: now()})
}

func (t *pgxTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	t.finish(ctx, data.Err)
}

func (t *pgxTracer) TraceCopyFromStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceCopyFromStartData) context.Context {
	sql := "copy " + data.TableName.Sanitize() + " (" + strings.Join(data.ColumnNames, ", ") + ") from stdin"
	return context.WithValue(ctx, traceKey{}, traceStart{sql: sql, at: now()})
}

func (t *pgxTracer) TraceCopyFromEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceCopyFromEndData) {
	t.finish(ctx, data.Err)
}

func (t *pgxTracer) finish(ctx context.Context, err error) {
	st, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}
	el := now().Sub(st.at)
	t.qt.OnQuery(ctx, QueryEvent{
		SQL:       st.sql,
		Args:      st.args,
		ElapsedUS: el.Microseconds(),
		Err:       err,
		Slow:      t.slowMs > 0 && el >= time.Duration(t.slowMs)*time.Millisecond,
	})
}

func compact(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' || r == ' ' {
			if !space {
				out = append(out, ' ')
				space = true
			}
			continue
		}
		space = false
		out = append(out, r)
	}
	return string(out)
}
