package raw

import "testing"

func TestConf(t *testing.T) {
	t.Setenv("LOG_LEVEL", " info ")
	t.Setenv("LOG_CALLER", "YES")
	t.Setenv("LOG_COLOR", "off")
	t.Setenv("LOG_SAMPLE_EVERY", "5")
	t.Setenv("LOG_SAMPLE_BAD", "-3")
	t.Setenv("LOG_SAMPLE_TEXT", "five")
	log := New().Prefix("LOG_")

	cases := []struct {
		name string
		got  any
		want any
	}{
		{"get trims", log.Get("LEVEL", "debug"), "info"},
		{"get default", log.Get("FORMAT", "console"), "console"},
		{"prefix composes", New().Prefix("LO").Prefix("G_").Get("LEVEL", ""), "info"},
		{"bool yes", log.GetBool("CALLER", false), true},
		{"bool other is false", log.GetBool("COLOR", true), false},
		{"bool default", log.GetBool("MISSING", true), true},
		{"int", log.GetInt("SAMPLE_EVERY", 0), 5},
		{"int negative", log.GetInt("SAMPLE_BAD", 1), 1},
		{"int text", log.GetInt("SAMPLE_TEXT", 2), 2},
		{"int missing", log.GetInt("MISSING", 3), 3},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}
