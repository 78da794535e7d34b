package domain

import (
	"bytes"
	"encoding/json"
)

// UnmarshalJSON fills r from exact key matches only. encoding/json folds
// case on struct fields, which would let "Redo" stand in for "redo"
func (r *RawItem) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*r = RawItem{
		Title:         m["title"],
		Author:        m["author"],
		Director:      m["director"],
		Season:        m["season"],
		PublishedYear: m["published_year"],
		BelongsToYear: m["belongs_to_year"],
		Redo:          m["redo"],
		ItemType:      m["itemtype"],
	}

	var err error
	if r.UpdatedDate, err = dateRef(m, "updated_date"); err != nil {
		return err
	}
	if r.CreatedAt, err = dateRef(m, "createdAt"); err != nil {
		return err
	}
	if r.UpdatedAt, err = dateRef(m, "updatedAt"); err != nil {
		return err
	}
	return nil
}

// UnmarshalJSON reads only the exact DateKey
func (d *DateRef) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*d = DateRef{Date: m[DateKey]}
	return nil
}

// dateRef returns nil for an absent or null date object
func dateRef(m map[string]json.RawMessage, key string) (*DateRef, error) {
	raw, ok := m[key]
	if !ok || string(bytes.TrimSpace(raw)) == "null" {
		return nil, nil
	}
	var d DateRef
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
