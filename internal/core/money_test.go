package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"15000.50", 1500050, true},
		{"15000,50", 1500050, true},
		{"0", 0, true},
		{"0.00", 0, true},
		{"12.344", 1234, true},
		{"12.345", 1235, true},
		{"12.346", 1235, true},
		{".50", 50, true},
		{"", 0, false},
		{"-1.00", 0, false},
		{"+1.00", 0, false},
		{"1.2.3", 0, false},
		{"abc", 0, false},
	}
	for i, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("case %d (%q): expected ok, got %v", i, tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d (%q): expected error", i, tc.in)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("case %d (%q): got %d, want %d", i, tc.in, got, tc.want)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1500050, "15000.50"},
		{0, "0.00"},
		{5, "0.05"},
		{230000, "2300.00"},
		{-100, "-1.00"},
	}
	for i, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}

func TestFromUnits(t *testing.T) {
	if got := FromUnits(2300); got.Cents != 230000 {
		t.Fatalf("got %d cents, want 230000", got.Cents)
	}
}
