package coerce

import (
	"encoding/json"
	"math"
	"testing"
)

func TestInt(t *testing.T) {
	five := int64(5)
	cases := []struct {
		name string
		in   any
		want *int64
	}{
		{"string int", "5", &five},
		{"float with zero fraction", 5.0, &five},
		{"plain int", 5, &five},
		{"json number", json.Number("5"), &five},
		{"json number with fraction", json.Number("5.0"), &five},
		{"string float", "3.0", ptr(3)},
		{"string padded", "  2020 ", ptr(2020)},
		{"truncates positive", 5.9, &five},
		{"truncates negative toward zero", -5.9, ptr(-5)},
		{"string exponent", "1e3", ptr(1000)},
		{"int64", int64(-7), ptr(-7)},
		{"bool true", true, ptr(1)},
		{"bool false", false, ptr(0)},
		{"nil", nil, nil},
		{"empty string", "", nil},
		{"NaN sentinel", "NaN", nil},
		{"lowercase nan", "nan", nil},
		{"garbage", "abc", nil},
		{"hex float", "0x1p4", nil},
		{"signed hex float", "-0X10", nil},
		{"leading zero decimal", "007", ptr(7)},
		{"whitespace only", "   ", nil},
		{"infinite float", math.Inf(1), nil},
		{"NaN float", math.NaN(), nil},
		{"out of range", 1e300, nil},
		{"object", map[string]any{"a": 1}, nil},
		{"array", []any{1}, nil},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got := Int(tt.in)
			switch {
			case tt.want == nil && got != nil:
				t.Fatalf("Int(%#v) = %d, want nil", tt.in, *got)
			case tt.want != nil && got == nil:
				t.Fatalf("Int(%#v) = nil, want %d", tt.in, *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Fatalf("Int(%#v) = %d, want %d", tt.in, *got, *tt.want)
			}
		})
	}
}

func TestInt_DecodedJSON(t *testing.T) {
	var vals []any
	if err := json.Unmarshal([]byte(`["5", 5.0, 5, null, "", "NaN", "abc"]`), &vals); err != nil {
		t.Fatal(err)
	}
	for i, v := range vals {
		got := Int(v)
		if i < 3 {
			if got == nil || *got != 5 {
				t.Fatalf("element %d: Int(%#v) = %v, want 5", i, v, got)
			}
			continue
		}
		if got != nil {
			t.Fatalf("element %d: Int(%#v) = %d, want nil", i, v, *got)
		}
	}
}
