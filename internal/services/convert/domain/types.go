// Package domain holds the record shapes and ports of the items conversion
package domain

import (
	"encoding/json"
	"time"

	"itemsexport/internal/core/repair"
	perr "itemsexport/internal/platform/errors"
)

// Columns is the fixed output column order
var Columns = []string{
	"id",
	"title",
	"author",
	"director",
	"season",
	"published_year",
	"belongs_to_year",
	"redo",
	"itemtype",
	"updated_date",
	"created_at",
	"updated_at",
}

// DateKey is the nested key holding the timestamp inside each date object
const DateKey = "$date"

var (
	// ErrEmptyInput is returned when the source has no non-blank lines
	ErrEmptyInput = repair.ErrEmpty

	// ErrNoRecords is returned when the source parses to an empty array
	ErrNoRecords = perr.New(perr.ErrorCodeInvalidArgument, "input has no records")
)

// DateRef is the exporter's date wrapper, e.g. {"$date": "2023-01-01T00:00:00.000Z"}
type DateRef struct {
	Date json.RawMessage `json:"$date" validate:"required"`
}

// RawItem is one source object before normalization. Fields stay raw so an
// absent key (nil) can be told apart from an explicit null ("null").
// Unknown keys are ignored
type RawItem struct {
	Title         json.RawMessage `json:"title" validate:"required"`
	Author        json.RawMessage `json:"author"`
	Director      json.RawMessage `json:"director"`
	Season        json.RawMessage `json:"season"`
	PublishedYear json.RawMessage `json:"published_year"`
	BelongsToYear json.RawMessage `json:"belongs_to_year"`
	Redo          json.RawMessage `json:"redo" validate:"required"`
	ItemType      json.RawMessage `json:"itemtype" validate:"required"`
	UpdatedDate   *DateRef        `json:"updated_date" validate:"required"`
	CreatedAt     *DateRef        `json:"createdAt" validate:"required"`
	UpdatedAt     *DateRef        `json:"updatedAt" validate:"required"`
}

// Item is one normalized output row; it always carries all of Columns
type Item struct {
	ID            string
	Title         Value
	Author        Value
	Director      Value
	Season        *int64
	PublishedYear *int64
	BelongsToYear *int64
	Redo          Value
	ItemType      Value
	UpdatedDate   *time.Time
	CreatedAt     *time.Time
	UpdatedAt     *time.Time
}

// Source is the decoded content of the input file
type Source struct {
	Path    string
	Content string
	Lines   []string
	Bytes   int
}

// Summary describes a finished run
type Summary struct {
	Lines    int
	Bytes    int
	Wrapped  bool
	Records  int
	Output   string
	Loaded   int64
	Duration time.Duration
}
