// Package repo provides postgres access for loading converted items
package repo

import (
	"context"
	"fmt"
	"strings"

	perr "itemsexport/internal/platform/errors"
	"itemsexport/internal/platform/logger"
	"itemsexport/internal/services/convert/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// TxRunner runs fn inside one transaction; *pg.PG satisfies it
type TxRunner interface {
	Tx(ctx context.Context, fn func(pgx.Tx) error) error
}

// PG loads items into a Postgres table with COPY
type PG struct {
	db    TxRunner
	table pgx.Identifier
}

// NewPG returns an item store writing to table, which may be schema qualified
func NewPG(db TxRunner, table string) *PG {
	if db == nil {
		panic("convert.repo requires a non nil TxRunner")
	}
	return &PG{db: db, table: Identifier(table)}
}

// Identifier splits a possibly schema-qualified table name
func Identifier(table string) pgx.Identifier {
	if table == "" {
		table = "items"
	}
	return pgx.Identifier(strings.Split(table, "."))
}

// columnTypes follows domain.Columns
var columnTypes = map[string]string{
	"id":              "uuid PRIMARY KEY",
	"title":           "text",
	"author":          "text",
	"director":        "text",
	"season":          "bigint",
	"published_year":  "bigint",
	"belongs_to_year": "bigint",
	"redo":            "boolean",
	"itemtype":        "text",
	"updated_date":    "timestamp",
	"created_at":      "timestamp",
	"updated_at":      "timestamp",
}

// CreateTableSQL returns the DDL for the items table
func CreateTableSQL(table pgx.Identifier) string {
	defs := make([]string, 0, len(domain.Columns))
	for _, c := range domain.Columns {
		defs = append(defs, fmt.Sprintf("\t%s %s", c, columnTypes[c]))
	}
	return "CREATE TABLE IF NOT EXISTS " + table.Sanitize() + " (\n" + strings.Join(defs, ",\n") + "\n)"
}

// Load creates the table if needed and copies items in one transaction
func (r *PG) Load(ctx context.Context, items []domain.Item) (int64, error) {
	rows, err := CopyRows(items)
	if err != nil {
		return 0, err
	}

	var n int64
	err = r.db.Tx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, CreateTableSQL(r.table)); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeDB, "create table %s", r.table.Sanitize())
		}
		c, err := tx.CopyFrom(ctx, r.table, domain.Columns, pgx.CopyFromRows(rows))
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeDB, "copy into %s", r.table.Sanitize())
		}
		n = c
		return nil
	})
	if err != nil {
		if _, ok := perr.As(err); !ok {
			err = perr.Wrap(err, perr.ErrorCodeDB, "items transaction")
		}
		return 0, err
	}

	logger.C(ctx).Info().Str("component", "repo").Str("table", r.table.Sanitize()).Int64("rows", n).Msg("items loaded")
	return n, nil
}

// CopyRows converts items to COPY values in domain.Columns order
func CopyRows(items []domain.Item) ([][]any, error) {
	out := make([][]any, 0, len(items))
	for i, it := range items {
		id, err := uuid.Parse(it.ID)
		if err != nil {
			return nil, perr.WithOp(perr.WithField(perr.Wrapf(err, perr.ErrorCodeDB, "id %q is not a uuid", it.ID), "id"), fmt.Sprintf("record %d", i))
		}
		redo, err := it.Redo.Bool()
		if err != nil {
			return nil, perr.WithOp(perr.WithField(err, "redo"), fmt.Sprintf("record %d", i))
		}
		out = append(out, []any{
			pgtype.UUID{Bytes: [16]byte(id), Valid: true},
			it.Title.Text(),
			it.Author.Text(),
			it.Director.Text(),
			it.Season,
			it.PublishedYear,
			it.BelongsToYear,
			redo,
			it.ItemType.Text(),
			it.UpdatedDate,
			it.CreatedAt,
			it.UpdatedAt,
		})
	}
	return out, nil
}
