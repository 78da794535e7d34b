package domain

import (
	"encoding/json"
	"testing"
)

func TestRawItem_ExactKeysOnly(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		check func(RawItem) bool
	}{
		{
			name:  "case variants do not fill passthroughs",
			in:    `{"Title":"A","Redo":true,"ItemType":"x","SEASON":3}`,
			check: func(r RawItem) bool { return r.Title == nil && r.Redo == nil && r.ItemType == nil && r.Season == nil },
		},
		{
			name:  "case variant date object is absent",
			in:    `{"UpdatedAt":{"$date":"2023-01-01T00:00:00Z"},"Updated_Date":{"$date":"2023-01-01T00:00:00Z"}}`,
			check: func(r RawItem) bool { return r.UpdatedAt == nil && r.UpdatedDate == nil },
		},
		{
			name:  "case variant $date is absent",
			in:    `{"createdAt":{"$DATE":"2023-01-01T00:00:00Z"}}`,
			check: func(r RawItem) bool { return r.CreatedAt != nil && r.CreatedAt.Date == nil },
		},
		{
			name:  "null date object is absent",
			in:    `{"updatedAt":null}`,
			check: func(r RawItem) bool { return r.UpdatedAt == nil },
		},
		{
			name: "exact keys fill",
			in:   `{"title":"A","redo":false,"itemtype":"x","updated_date":{"$date":"2023-01-01T00:00:00Z"}}`,
			check: func(r RawItem) bool {
				return string(r.Title) == `"A"` && string(r.Redo) == "false" && string(r.ItemType) == `"x"` &&
					r.UpdatedDate != nil && string(r.UpdatedDate.Date) == `"2023-01-01T00:00:00Z"`
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var r RawItem
			if err := json.Unmarshal([]byte(c.in), &r); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !c.check(r) {
				t.Fatalf("unexpected decode of %s: %+v", c.in, r)
			}
		})
	}
}

func TestRawItem_DecodeErrors(t *testing.T) {
	cases := []string{
		`5`,
		`{"updatedAt":"2023-01-01T00:00:00Z"}`,
	}
	for _, in := range cases {
		var r RawItem
		if err := json.Unmarshal([]byte(in), &r); err == nil {
			t.Fatalf("unmarshal %s: expected error", in)
		}
	}
}

func TestRawItem_NullElement(t *testing.T) {
	var rs []RawItem
	if err := json.Unmarshal([]byte(`[null]`), &rs); err != nil {
		t.Fatal(err)
	}
	if len(rs) != 1 || rs[0].Title != nil {
		t.Fatalf("null element = %+v", rs)
	}
}
