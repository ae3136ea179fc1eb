package utils

import (
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]float64{
		"30":     30,
		" 42.5 ": 42.5,
		"12,75":  12.75,
	}
	for in, want := range cases {
		got, err := ParseAmount(in)
		if err != nil {
			t.Fatalf("ParseAmount(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseAmount(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"", "abc", "12.3.4"} {
		if _, err := ParseAmount(in); err == nil {
			t.Fatalf("ParseAmount(%q) should fail", in)
		}
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  Kyiv   Central  "); got != "Kyiv Central" {
		t.Fatalf("got %q", got)
	}
	if got := NormalizeSpace("\tWarsaw\n"); got != "Warsaw" {
		t.Fatalf("got %q", got)
	}
}

func TestParseDateTimeRoundTrip(t *testing.T) {
	ts, err := ParseDateTime("2026-08-29T06:45")
	if err != nil {
		t.Fatalf("ParseDateTime: %v", err)
	}
	if got := FormatDateTime(ts); got != "2026-08-29T06:45" {
		t.Fatalf("FormatDateTime = %q", got)
	}

	if _, err := ParseDateTime("2026-08-29T25:99"); err == nil {
		t.Fatal("out-of-range time should fail")
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	if got := FormatDate(ts); got != "2026-08-29" {
		t.Fatalf("FormatDate = %q", got)
	}
	if !ValidDate("2026-08-29") || ValidDate("29.08.2026") {
		t.Fatal("ValidDate mismatch")
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(42.5); got != "42.50" {
		t.Fatalf("FormatMoney = %q", got)
	}
}

func TestNormalizeSeat(t *testing.T) {
	if got := NormalizeSeat(" 12a "); got != "12A" {
		t.Fatalf("NormalizeSeat = %q", got)
	}
}
