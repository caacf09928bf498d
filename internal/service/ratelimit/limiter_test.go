package ratelimit

import "testing"

func TestAllowConsumesCapacity(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		if !l.Allow("p", 3, 0) {
			t.Fatalf("call %d should be allowed", i)
		}
	}
	if l.Allow("p", 3, 0) {
		t.Fatalf("capacity exhausted, call should be denied")
	}
}

func TestAllowIsPerKey(t *testing.T) {
	l := New()

	if !l.Allow("a", 1, 0) {
		t.Fatalf("first call on a should be allowed")
	}
	if l.Allow("a", 1, 0) {
		t.Fatalf("a exhausted")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatalf("b has its own bucket")
	}
}
