package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"itemsexport/internal/core/coerce"
	perr "itemsexport/internal/platform/errors"
	"itemsexport/internal/platform/logger"
	"itemsexport/internal/platform/validate"
	"itemsexport/internal/services/convert/domain"

	"github.com/google/uuid"
)

// Normalizer maps raw records to output rows, one to one and in order
type Normalizer struct {
	NewID domain.IDFunc
}

// NewNormalizer returns a Normalizer; a nil id generates random UUIDs
func NewNormalizer(id domain.IDFunc) *Normalizer {
	if id == nil {
		id = uuid.NewString
	}
	return &Normalizer{NewID: id}
}

// All normalizes every record into a fresh slice. The first failing record
// aborts the whole batch
func (n *Normalizer) All(ctx context.Context, raws []domain.RawItem) ([]domain.Item, error) {
	log := logger.C(ctx).With().Str("component", "normalize").Logger()
	out := make([]domain.Item, 0, len(raws))
	for i := range raws {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		it, err := n.One(i, raws[i])
		if err != nil {
			return nil, err
		}
		ev := log.Debug().Int("index", i)
		if it.Season != nil {
			ev = ev.Int64("season", *it.Season)
		} else {
			ev = ev.Interface("season", nil)
		}
		ev.Msg("record normalized")
		out = append(out, it)
	}
	return out, nil
}

// One normalizes the record at index i
func (n *Normalizer) One(i int, raw domain.RawItem) (domain.Item, error) {
	op := fmt.Sprintf("record %d", i)
	if err := validate.Struct(raw); err != nil {
		return domain.Item{}, perr.WithOp(err, op)
	}

	it := domain.Item{
		ID:       n.NewID(),
		Title:    domain.Value(raw.Title),
		Author:   domain.Value(raw.Author),
		Director: domain.Value(raw.Director),
		Redo:     domain.Value(raw.Redo),
		ItemType: domain.Value(raw.ItemType),
	}

	var err error
	if it.Season, err = intField(raw.Season); err != nil {
		return domain.Item{}, perr.WithOp(perr.WithField(err, "season"), op)
	}
	if it.PublishedYear, err = intField(raw.PublishedYear); err != nil {
		return domain.Item{}, perr.WithOp(perr.WithField(err, "published_year"), op)
	}
	if it.BelongsToYear, err = intField(raw.BelongsToYear); err != nil {
		return domain.Item{}, perr.WithOp(perr.WithField(err, "belongs_to_year"), op)
	}

	dates := []struct {
		key string
		ref *domain.DateRef
		dst **time.Time
	}{
		{"updated_date", raw.UpdatedDate, &it.UpdatedDate},
		{"createdAt", raw.CreatedAt, &it.CreatedAt},
		{"updatedAt", raw.UpdatedAt, &it.UpdatedAt},
	}
	for _, d := range dates {
		ts, err := dateField(d.ref)
		if err != nil {
			return domain.Item{}, perr.WithOp(perr.WithField(err, d.key+"."+domain.DateKey), op)
		}
		*d.dst = ts
	}
	return it, nil
}

// intField coerces a raw value; only malformed JSON is an error
func intField(raw json.RawMessage) (*int64, error) {
	v, err := domain.Value(raw).Decode()
	if err != nil {
		return nil, err
	}
	return coerce.Int(v), nil
}

// dateField parses ref.$date; an explicit null yields nil
func dateField(ref *domain.DateRef) (*time.Time, error) {
	if ref == nil {
		return nil, perr.Validationf("date object is missing")
	}
	raw := bytes.TrimSpace(ref.Date)
	if string(raw) == "null" {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, perr.Parsef("timestamp %s is not a string", string(raw))
	}
	ts, err := coerce.Timestamp(s)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
