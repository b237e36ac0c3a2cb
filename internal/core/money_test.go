package core

import "testing"

func TestParseBalance(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"0", "0", true},
		{"0.00", "0", true},
		{"1234.56", "1234.56", true},
		{"12,5", "12.5", true},
		{"3.999", "4", true},
		{"-1", "", false},
		{"+1", "", false},
		{"nope", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseBalance(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(dec(tc.out)) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestParseRate(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"0", "0", true},
		{"12.75", "12.75", true},
		{"0,5", "0.5", true},
		{"19.999", "19.999", true}, // rates keep full precision
		{"-3", "", false},
		{"x", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseRate(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(dec(tc.out)) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestPercentageBasic(t *testing.T) {
	if got := Percentage(dec("50"), dec("200")); !got.Equal(dec("25")) {
		t.Errorf("50/200 = %s, want 25", got)
	}
	if got := Percentage(dec("1"), dec("3")); !got.Equal(dec("33.3")) {
		t.Errorf("1/3 = %s, want 33.3", got)
	}
	if got := Percentage(dec("10"), dec("0")); !got.IsZero() {
		t.Errorf("zero total = %s, want 0", got)
	}
}
