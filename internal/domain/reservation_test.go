package domain_test

import (
	"testing"
	"time"

	"roomdesk/internal/domain"
)

func d(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	res := domain.Reservation{RoomNumber: 101, CheckIn: d("2024-01-10"), CheckOut: d("2024-01-12")}

	cases := []struct {
		name    string
		in, out string
		want    bool
	}{
		{"same range", "2024-01-10", "2024-01-12", true},
		{"contained", "2024-01-10", "2024-01-11", true},
		{"containing", "2024-01-09", "2024-01-13", true},
		{"one day overlap at end", "2024-01-11", "2024-01-13", true},
		{"one day overlap at start", "2024-01-09", "2024-01-11", true},
		{"starts on checkout day", "2024-01-12", "2024-01-14", false},
		{"ends on checkin day", "2024-01-08", "2024-01-10", false},
		{"entirely before", "2024-01-01", "2024-01-05", false},
		{"entirely after", "2024-02-01", "2024-02-05", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := res.Overlaps(d(tc.in), d(tc.out)); got != tc.want {
				t.Fatalf("Overlaps(%s, %s) = %v, want %v", tc.in, tc.out, got, tc.want)
			}
		})
	}
}

func TestNights(t *testing.T) {
	if n := domain.Nights(d("2024-01-10"), d("2024-01-12")); n != 2 {
		t.Fatalf("expected 2 nights, got %d", n)
	}
	if n := domain.Nights(d("2024-01-31"), d("2024-02-01")); n != 1 {
		t.Fatalf("expected 1 night across month boundary, got %d", n)
	}
}

func TestQuote(t *testing.T) {
	cases := []struct {
		c      domain.Category
		nights int
		want   int64
	}{
		{domain.CategoryStandard, 2, 200},
		{domain.CategoryDeluxe, 3, 450},
		{domain.CategorySuite, 1, 250},
	}
	for _, tc := range cases {
		if got := domain.Quote(tc.c, tc.nights); got != tc.want {
			t.Fatalf("Quote(%s, %d) = %d, want %d", tc.c, tc.nights, got, tc.want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	if c, err := domain.ParseCategory("DELUXE"); err != nil || c != domain.CategoryDeluxe {
		t.Fatalf("ParseCategory(DELUXE) = %v, %v", c, err)
	}
	if _, err := domain.ParseCategory("penthouse"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestParseDate(t *testing.T) {
	got, err := domain.ParseDate("2024-01-10")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !got.Equal(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", got)
	}
	if _, err := domain.ParseDate("10/01/2024"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}
