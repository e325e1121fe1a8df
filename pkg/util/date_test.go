package util

import (
	"testing"
	"time"
)

func TestParseDateCalendar(t *testing.T) {
	got, ok := ParseDate("2024-03-31")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseDateMonthOnly(t *testing.T) {
	got, ok := ParseDate("2024-01")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Day() != 1 || got.Month() != time.January || got.Year() != 2024 {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseDateRFC3339TruncatesTime(t *testing.T) {
	got, ok := ParseDate("2024-10-10T10:10:10Z")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Fatalf("time not truncated: %v", got)
	}
}

func TestParseDateMalformed(t *testing.T) {
	if _, ok := ParseDate("not-a-date"); ok {
		t.Fatalf("expected failure")
	}
	if _, ok := ParseDate(""); ok {
		t.Fatalf("expected failure for empty string")
	}
}

func TestParseDateDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	if got := ParseDateDefault("", def); !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestMedianGapDays(t *testing.T) {
	d := func(s string) time.Time {
		t2, _ := ParseDate(s)
		return t2
	}
	quarterly := []time.Time{d("2023-03-31"), d("2023-06-30"), d("2023-09-30"), d("2023-12-31")}
	got := MedianGapDays(quarterly)
	if got < 85 || got > 95 {
		t.Fatalf("expected ~91 day gap, got %d", got)
	}
	if MedianGapDays(quarterly[:1]) != 0 {
		t.Fatalf("expected 0 for single date")
	}
}
