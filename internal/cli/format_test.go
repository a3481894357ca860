package cli

import (
	"testing"
	"time"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		currency string
		amount   float64
		want     string
	}{
		{"USD", 5.25, "$5.25"},
		{"USD", 42.9, "$42.9"},
		{"USD", 650, "$650"},
		{"USD", 12345, "$12,345"},
		{"INR", 85000, "₹85,000"},
		{"EUR", 99.5, "€99.5"},
		{"AUD", 10, "AUD 10.00"},
		{"", 3, "$3.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.currency, tt.amount); got != tt.want {
			t.Errorf("FormatMoney(%q, %v) = %q, want %q", tt.currency, tt.amount, got, tt.want)
		}
	}
}

func TestFormatAngle(t *testing.T) {
	tests := []struct {
		deg  int
		want string
	}{
		{0, "0° N"},
		{90, "90° E"},
		{200, "200° S"},
		{330, "330° N"},
	}
	for _, tt := range tests {
		if got := FormatAngle(tt.deg); got != tt.want {
			t.Errorf("FormatAngle(%d) = %q, want %q", tt.deg, got, tt.want)
		}
	}
}

func TestFormatRoomType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"living_room", "Living Room"},
		{"bedroom", "Bedroom"},
		{"pooja_room", "Pooja Room"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatRoomType(tt.in); got != tt.want {
			t.Errorf("FormatRoomType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAgo(t *testing.T) {
	if got := FormatAgo(time.Time{}); got != "never" {
		t.Errorf("FormatAgo(zero) = %q, want never", got)
	}
	if got := FormatAgo(time.Now().Add(-10 * time.Second)); got != "just now" {
		t.Errorf("FormatAgo(10s) = %q, want just now", got)
	}
	if got := FormatAgo(time.Now().Add(-5 * time.Minute)); got != "5m ago" {
		t.Errorf("FormatAgo(5m) = %q, want 5m ago", got)
	}
	if got := FormatAgo(time.Now().Add(-26 * time.Hour)); got != "1d ago" {
		t.Errorf("FormatAgo(26h) = %q, want 1d ago", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{-5, "0s"},
		{45, "45s"},
		{125, "2m"},
		{3725, "1h 2m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.secs); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
