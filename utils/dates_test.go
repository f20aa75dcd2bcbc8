package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-01")
	if err != nil {
		t.Fatalf("ParseDate plain date: %v", err)
	}
	if got.Year() != 2025 || got.Month() != time.March || got.Day() != 1 {
		t.Fatalf("ParseDate plain date = %v", got)
	}

	got, err = ParseDate("2025-03-01T10:30:00Z")
	if err != nil {
		t.Fatalf("ParseDate RFC3339: %v", err)
	}
	if got.Hour() != 10 {
		t.Fatalf("ParseDate RFC3339 hour = %d", got.Hour())
	}

	if _, err := ParseDate(""); err == nil {
		t.Fatal("ParseDate empty should fail")
	}
	if _, err := ParseDate("not-a-date"); err == nil {
		t.Fatal("ParseDate garbage should fail")
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 8, 2, 0, 0, 0, time.UTC)
	if got := DaysBetween(start, end); got != 7 {
		t.Fatalf("DaysBetween = %d, want 7", got)
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"0634567890", "252634567890", "+252 63 456 7890", "634-567-890"}
	for _, p := range valid {
		if !ValidatePhone(p) {
			t.Fatalf("ValidatePhone(%q) = false, want true", p)
		}
	}
	invalid := []string{"", "abc", "12345", "+12 34"}
	for _, p := range invalid {
		if ValidatePhone(p) {
			t.Fatalf("ValidatePhone(%q) = true, want false", p)
		}
	}
}
