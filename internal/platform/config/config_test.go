package config

import (
	"reflect"
	"testing"
	"time"

	"admissions/internal/platform/testkit"
)

func TestPrefix(t *testing.T) {
	t.Setenv("CORE_API_PORT", ":8080")
	c := New().Prefix("CORE_").Prefix("API_")

	if got := c.key("PORT"); got != "CORE_API_PORT" {
		t.Fatalf("key = %q", got)
	}
	if got := c.MayString("PORT", ":4000"); got != ":8080" {
		t.Fatalf("PORT = %q", got)
	}
}

func TestMustString(t *testing.T) {
	t.Setenv("CORE_API_TOKEN_SECRET", "  s3cret  ")
	t.Setenv("CORE_API_BLANK", "   ")
	c := New().Prefix("CORE_API_")

	if got := c.MustString("TOKEN_SECRET"); got != "s3cret" {
		t.Fatalf("MustString = %q", got)
	}
	testkit.MustPanic(t, func() { c.MustString("MISSING") })
	testkit.MustPanic(t, func() { c.MustString("BLANK") })
}

func TestMayScalars(t *testing.T) {
	t.Setenv("T_RATE", "25")
	t.Setenv("T_RATE_BAD", "ten")
	t.Setenv("T_SWAGGER", "false")
	t.Setenv("T_SWAGGER_BAD", "maybe")
	t.Setenv("T_TTL", "90m")
	t.Setenv("T_TTL_BAD", "forever")
	c := New().Prefix("T_")

	cases := []struct {
		name string
		got  any
		want any
	}{
		{"int set", c.MayInt("RATE", 10), 25},
		{"int invalid", c.MayInt("RATE_BAD", 10), 10},
		{"int missing", c.MayInt("NOPE", 10), 10},
		{"bool set", c.MayBool("SWAGGER", true), false},
		{"bool invalid", c.MayBool("SWAGGER_BAD", true), true},
		{"duration set", c.MayDuration("TTL", time.Hour), 90 * time.Minute},
		{"duration invalid", c.MayDuration("TTL_BAD", time.Hour), time.Hour},
		{"string missing", c.MayString("NOPE", "admissions-api"), "admissions-api"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestMayCSV(t *testing.T) {
	def := []string{"http://localhost:3000"}
	cases := []struct {
		name string
		env  string
		want []string
	}{
		{"origins", "https://a.example.com, https://b.example.com", []string{"https://a.example.com", "https://b.example.com"}},
		{"blanks dropped", " ,https://a.example.com,, ", []string{"https://a.example.com"}},
		{"only separators", " , , ", def},
		{"missing", "", def},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("CORS_ORIGINS", tc.env)
			if got := New().MayCSV("CORS_ORIGINS", def); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("MayCSV = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMayEnum(t *testing.T) {
	t.Setenv("E_LEVEL", "WARN")
	t.Setenv("E_BAD", "loud")
	c := New().Prefix("E_")

	if got := c.MayEnum("LEVEL", "info", "debug", "info", "warn"); got != "WARN" {
		t.Fatalf("MayEnum = %q", got)
	}
	if got := c.MayEnum("MISSING", "info", "debug", "info"); got != "info" {
		t.Fatalf("default = %q", got)
	}
	if got := c.MayEnum("MISSING", "", "debug"); got != "" {
		t.Fatalf("empty default = %q", got)
	}
	if got := c.MayEnum("BAD", "info", "debug", "info"); got != "info" {
		t.Fatalf("invalid value = %q, want the default", got)
	}
	if got := c.MayEnum("MISSING", "production", "development", "test"); got != "production" {
		t.Fatalf("default outside allowed = %q", got)
	}
}
