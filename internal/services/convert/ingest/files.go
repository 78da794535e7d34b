// Package ingest holds the filesystem adapters for the convert ingest port
package ingest

import (
	"context"
	"encoding/json"
	"os"
	"unicode/utf8"

	"itemsexport/internal/core/repair"
	perr "itemsexport/internal/platform/errors"
	"itemsexport/internal/platform/logger"
	"itemsexport/internal/services/convert/domain"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sampleRawMax = 256 // max bytes of the first line to log

// files implements domain.Ingest on the local filesystem
type files struct {
	perm os.FileMode
}

// NewFiles constructs the filesystem ingest adapter
func NewFiles() domain.Ingest { return files{perm: 0o644} }

// Load reads path, strips a byte-order mark (decoding UTF-16 when the mark
// says so) and splits the text into lines
func (f files) Load(ctx context.Context, path string) (domain.Source, error) {
	if err := ctx.Err(); err != nil {
		return domain.Source{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Source{}, perr.Wrapf(err, perr.ErrorCodeIO, "read source %s", path)
	}
	text, err := decodeText(b)
	if err != nil {
		return domain.Source{}, perr.Wrapf(err, perr.ErrorCodeIO, "decode source %s", path)
	}

	lines := repair.Split(text)
	if len(lines) > 0 {
		logger.C(ctx).Debug().
			Str("path", path).
			Int("bytes", len(b)).
			Int("lines", len(lines)).
			Str("sample_raw", truncateUTF8(lines[0], sampleRawMax)).
			Msg("ingest: source loaded")
	}
	return domain.Source{Path: path, Content: text, Lines: lines, Bytes: len(b)}, nil
}

// Stage writes text to path in one write, replacing what was there
func (f files) Stage(ctx context.Context, path, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), f.perm); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "write intermediate %s", path)
	}
	return nil
}

// Parse reads path and decodes it as a JSON array of raw records
func (f files) Parse(ctx context.Context, path string) ([]domain.RawItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "read intermediate %s", path)
	}
	return DecodeArray(b, path)
}

// DecodeArray decodes a JSON array of raw records; name is used in errors
func DecodeArray(b []byte, name string) ([]domain.RawItem, error) {
	var raws []domain.RawItem
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "parse %s", name)
	}
	return raws, nil
}

// decodeText honours a UTF-8 or UTF-16 byte-order mark and otherwise
// treats b as UTF-8, replacing invalid sequences
func decodeText(b []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// truncateUTF8 cuts s to at most max bytes without splitting a rune
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
