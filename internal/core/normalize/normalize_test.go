package normalize

import (
	"testing"
)

func TestText_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "identity", in: "Asha Kumari", out: "Asha Kumari"},
		{name: "trim and collapse", in: "  Asha \t  Kumari \n", out: "Asha Kumari"},
		{name: "line breaks flattened", in: "Pune\r\nMaharashtra", out: "Pune Maharashtra"},
		{name: "zero widths removed", in: "As\u200Bha\uFEFF", out: "Asha"},
		{name: "nfc composes accents", in: "Jose\u0301", out: "Jos\u00e9"},
		{name: "case preserved", in: "ST. XAVIER'S", out: "ST. XAVIER'S"},
		{name: "controls dropped", in: "Ash\x00a\x7f", out: "Asha"},
		{name: "empty", in: "", out: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Text(tc.in)
			if got != tc.out {
				t.Fatalf("Text(%q) = %q, want %q", tc.in, got, tc.out)
			}
			if again := Text(got); again != got {
				t.Fatalf("Text not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestMultiline_KeepsParagraphs(t *testing.T) {
	t.Parallel()

	in := "  Great hostel.  \n\n\n  Food   was good\t\n"
	want := "Great hostel.\nFood was good"
	if got := Multiline(in); got != want {
		t.Fatalf("Multiline(%q) = %q, want %q", in, got, want)
	}
}

func TestEmail(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		" Asha.K@Example.COM ":                 "asha.k@example.com",
		"\uff41\uff53\uff48\uff41@example.com": "asha@example.com",
		"a sha@example.com":                    "asha@example.com",
		"asha\u200D@example.com":               "asha@example.com",
		"":                                     "",
	}
	for in, want := range cases {
		if got := Email(in); got != want {
			t.Fatalf("Email(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPhone_FoldsFullwidthDigits(t *testing.T) {
	t.Parallel()

	if got := Phone(" +91 \uff19\uff18\uff17\uff16\uff15 \uff14\uff13\uff12\uff11\uff10 "); got != "+91 98765 43210" {
		t.Fatalf("Phone = %q", got)
	}
}

func TestOptional(t *testing.T) {
	t.Parallel()

	if Optional(nil) != nil {
		t.Fatal("nil should stay nil")
	}
	blank := "  \n "
	if Optional(&blank) != nil {
		t.Fatal("blank should become nil")
	}
	msg := " hello  there "
	if got := Optional(&msg); got == nil || *got != "hello there" {
		t.Fatalf("Optional = %v", got)
	}
}

func TestCollapseSpaces(t *testing.T) {
	t.Parallel()

	in := " \t a \n b   c \r\n "
	if got := collapseSpaces(in, false); got != "a b c" {
		t.Fatalf("collapseSpaces(flat) = %q", got)
	}
	if got := collapseSpaces(in, true); got != "a\nb c" {
		t.Fatalf("collapseSpaces(lines) = %q", got)
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	clean := "plain ascii\nwith lines\t"
	if got := Sanitize(clean); got != clean {
		t.Fatalf("clean input changed: %q", got)
	}
	dirty := "a\x00b\x01c\u0085d" + string([]byte{0xff}) + "e"
	if got := Sanitize(dirty); got != "abcde" {
		t.Fatalf("Sanitize(%q) = %q", dirty, got)
	}
}
