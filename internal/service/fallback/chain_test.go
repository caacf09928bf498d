package fallback

import (
	"context"
	"testing"
)

func source(name string, calls *[]string, result []string, available bool) Source[[]string] {
	return Source[[]string]{
		Name:      name,
		Available: func() bool { return available },
		Fetch: func(context.Context) []string {
			*calls = append(*calls, name)
			return result
		},
	}
}

func TestResolveFirstNonEmptyWins(t *testing.T) {
	var calls []string
	chain := NewChain("whales", Empty[string],
		source("primary", &calls, nil, true),
		source("secondary", &calls, []string{"tx"}, true),
		source("tertiary", &calls, []string{"never"}, true),
	)

	got, served := chain.Resolve(context.Background())

	if len(got) != 1 || got[0] != "tx" {
		t.Fatalf("unexpected result %v", got)
	}
	if served != "secondary" {
		t.Fatalf("expected secondary to serve, got %q", served)
	}
	if len(calls) != 2 || calls[0] != "primary" || calls[1] != "secondary" {
		t.Fatalf("expected in-order invocation of first two sources, got %v", calls)
	}
}

func TestResolveSkipsUnavailable(t *testing.T) {
	var calls []string
	chain := NewChain("whales", Empty[string],
		source("no-credential", &calls, []string{"paid"}, false),
		source("fallback", &calls, []string{"free"}, true),
	)

	got, served := chain.Resolve(context.Background())

	if served != "fallback" || len(got) != 1 || got[0] != "free" {
		t.Fatalf("unexpected result %v from %q", got, served)
	}
	for _, c := range calls {
		if c == "no-credential" {
			t.Fatalf("unavailable source must not be attempted")
		}
	}
}

func TestResolveExhaustionReturnsFinalEmpty(t *testing.T) {
	var calls []string
	chain := NewChain("whales", Empty[string],
		source("a", &calls, nil, true),
		source("b", &calls, nil, true),
	)

	got, served := chain.Resolve(context.Background())

	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
	if served != "b" {
		t.Fatalf("expected last attempted source name, got %q", served)
	}
	if len(calls) != 2 {
		t.Fatalf("every source should have been tried, got %v", calls)
	}
}
