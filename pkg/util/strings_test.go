package util

import "testing"

func TestParseIntDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"6379", 0, 6379},
		{"", 9000, 9000},
		{"not-a-port", 9000, 9000},
		{"-1", 7, -1},
	}
	for _, c := range cases {
		if got := ParseIntDefault(c.in, c.def); got != c.want {
			t.Errorf("ParseIntDefault(%q, %d) = %d, want %d", c.in, c.def, got, c.want)
		}
	}
}

func TestContainsFold(t *testing.T) {
	if !ContainsFold("Form 10-K Annual Report", "annual") {
		t.Fatalf("expected match")
	}
	if ContainsFold("Form 10-K", "8-K") {
		t.Fatalf("unexpected match")
	}
}
