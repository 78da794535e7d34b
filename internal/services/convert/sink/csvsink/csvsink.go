// Package csvsink writes normalized items as a CSV file
package csvsink

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"itemsexport/internal/core/coerce"
	perr "itemsexport/internal/platform/errors"
	"itemsexport/internal/platform/logger"
	"itemsexport/internal/services/convert/domain"
)

// Sink implements domain.Sink with an atomic temp-file-and-rename write
type Sink struct {
	perm os.FileMode
}

// New returns a CSV sink
func New() *Sink { return &Sink{perm: 0o644} }

var rename = os.Rename

// Write renders items to path. Rows go to a temp file beside path which
// replaces path only once every row is flushed
func (s *Sink) Write(ctx context.Context, path string, items []domain.Item) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "create temp for %s", path)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = Encode(ctx, tmp, items); err != nil {
		return perr.Wrapf(err, perr.CodeOf(err), "write %s", path)
	}
	if err = tmp.Chmod(s.perm); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "chmod %s", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "close %s", tmp.Name())
	}
	if err = rename(tmp.Name(), path); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "rename into %s", path)
	}

	logger.C(ctx).Info().Str("component", "csvsink").Str("path", path).Int("rows", len(items)).Msg("csv written")
	return nil
}

// Encode writes the header and one row per item to w
func Encode(ctx context.Context, w io.Writer, items []domain.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.Columns); err != nil {
		return perr.Wrap(err, perr.ErrorCodeIO, "header")
	}
	for i := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := cw.Write(Row(items[i])); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeIO, "row %d", i)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeIO, "flush")
	}
	return nil
}

// Row renders it in Columns order; nulls are empty cells
func Row(it domain.Item) []string {
	return []string{
		it.ID,
		it.Title.String(),
		it.Author.String(),
		it.Director.String(),
		intCell(it.Season),
		intCell(it.PublishedYear),
		intCell(it.BelongsToYear),
		it.Redo.String(),
		it.ItemType.String(),
		timeCell(it.UpdatedDate),
		timeCell(it.CreatedAt),
		timeCell(it.UpdatedAt),
	}
}

func intCell(n *int64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(*n, 10)
}

func timeCell(t *time.Time) string {
	if t == nil {
		return ""
	}
	return coerce.FormatTimestamp(*t)
}
