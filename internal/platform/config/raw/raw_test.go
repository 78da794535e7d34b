package raw

import "testing"

func TestConfGet(t *testing.T) {
	t.Setenv("APP_NAME", " itemsexport ")
	t.Setenv("LOG_LEVEL", " warn ")

	root := New()
	lg := root.Prefix("LOG_")

	cases := []struct {
		name string
		conf Conf
		key  string
		def  string
		want string
	}{
		{name: "root trimmed", conf: root, key: "APP_NAME", def: "x", want: "itemsexport"},
		{name: "prefixed hit", conf: lg, key: "LEVEL", def: "x", want: "warn"},
		{name: "missing returns default", conf: lg, key: "MISSING", def: "defv", want: "defv"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conf.Get(tt.key, tt.def); got != tt.want {
				t.Fatalf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestConfLookupBlank(t *testing.T) {
	t.Setenv("RAW_BLANK", "   ")
	if _, ok := New().Prefix("RAW_").Lookup("BLANK"); ok {
		t.Fatalf("blank value should be reported as unset")
	}
}

func TestConfGetBool(t *testing.T) {
	c := New().Prefix("LOG_")

	t.Setenv("LOG_T1", "true")
	t.Setenv("LOG_T2", "1")
	t.Setenv("LOG_T3", "YES")
	t.Setenv("LOG_F1", "false")
	t.Setenv("LOG_F2", "nah")

	cases := []struct {
		key  string
		def  bool
		want bool
	}{
		{"T1", false, true},
		{"T2", false, true},
		{"T3", false, true},
		{"F1", true, false},
		{"F2", true, false},
		{"MISSING", true, true},
		{"MISSING", false, false},
	}
	for _, c2 := range cases {
		if got := c.GetBool(c2.key, c2.def); got != c2.want {
			t.Fatalf("GetBool(%q, %v) = %v, want %v", c2.key, c2.def, got, c2.want)
		}
	}
}

func TestConfGetInt(t *testing.T) {
	c := New().Prefix("SYS_")

	t.Setenv("SYS_OK", "42")
	t.Setenv("SYS_WS", "  7  ")
	t.Setenv("SYS_NONNUM", "12x")
	t.Setenv("SYS_NEG", "-5")

	cases := []struct {
		key  string
		def  int
		want int
	}{
		{"OK", 0, 42},
		{"WS", 1, 7},
		{"NONNUM", 9, 9},
		{"NEG", 3, 3},
		{"MISSING", 11, 11},
	}
	for _, c2 := range cases {
		if got := c.GetInt(c2.key, c2.def); got != c2.want {
			t.Fatalf("GetInt(%q) = %d, want %d", c2.key, got, c2.want)
		}
	}
}
