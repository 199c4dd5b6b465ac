package textnorm

import (
	"testing"
	"time"
)

func TestInsight(t *testing.T) {
	cases := map[string]string{
		"  Budget concerns!! ": "budget concerns",
		"Pricing pressure.":    "pricing pressure",
		"No punctuation":       "no punctuation",
		"":                     "",
	}
	for in, want := range cases {
		if got := Insight(in); got != want {
			t.Fatalf("Insight(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNamePartStripsHonorific(t *testing.T) {
	if got := NamePart("Dr. Jane"); got != "jane" {
		t.Fatalf("expected honorific stripped, got %q", got)
	}
	if got := NamePart("Professor O'Brien"); got != "obrien" {
		t.Fatalf("expected non-letters removed, got %q", got)
	}
	// "miss" only counts as an honorific when leading
	if got := NamePart("Anna Miss"); got != "anna miss" {
		t.Fatalf("unexpected strip of trailing word: %q", got)
	}
}

func TestNameKey(t *testing.T) {
	if got := NameKey(" John ", "SMITH-Jones"); got != "john_smithjones" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestFullName(t *testing.T) {
	if got := FullName("Mrs  Jane", "Doe"); got != "jane doe" {
		t.Fatalf("unexpected full name %q", got)
	}
}

func TestDateKeyDropsTime(t *testing.T) {
	ts := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	if got := DateKey(ts); got != "2025-03-14" {
		t.Fatalf("unexpected date key %q", got)
	}
}
