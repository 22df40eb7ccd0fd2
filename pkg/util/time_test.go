package util

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"7d", 7 * 24 * time.Hour},
		{"24h", 24 * time.Hour},
		{"30m", 30 * time.Minute},
		{"90", 90 * time.Second},
	}
	for _, c := range cases {
		got, err := ParseDuration(c.in)
		if err != nil {
			t.Fatalf("ParseDuration(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestCeilHours(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want int
	}{
		{0, 0},
		{-time.Hour, 0},
		{time.Minute, 1},
		{time.Hour, 1},
		{90 * time.Minute, 2},
		{24 * time.Hour, 24},
	}
	for _, c := range cases {
		if got := CeilHours(c.in); got != c.want {
			t.Errorf("CeilHours(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
