package money

import "testing"

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"119,999.99", 119999.99},
		{"50,000", 50000},
		{"10,000.50", 10000.50},
		{"19.005", 19.01},
		{"0.125", 0.13},
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"1,234,567.891", 1234567.89},
		{"-19.005", -19.01},
		{"42", 42},
	}
	for _, tc := range cases {
		if got := Sanitize(tc.in); got != tc.want {
			t.Errorf("Sanitize(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRound(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{19.005, 19.01},
		{19.004, 19.00},
		{0, 0},
		{100.999, 101.00},
		{-19.005, -19.01},
	}
	for _, tc := range cases {
		if got := Round(tc.in); got != tc.want {
			t.Errorf("Round(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
