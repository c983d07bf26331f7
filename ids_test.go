package knockout

import (
	"strings"
	"sync"
	"testing"
)

func TestCounterIDs(t *testing.T) {
	g := NewCounterIDs("mask-")
	for i, want := range []string{"mask-1", "mask-2", "mask-3"} {
		if got := g.NextID(); got != want {
			t.Errorf("NextID() #%d = %q, want %q", i, got, want)
		}
	}
}

func TestCounterIDsConcurrent(t *testing.T) {
	g := NewCounterIDs("m")
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]bool)
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := g.NextID()
				mu.Lock()
				if seen[id] {
					t.Errorf("duplicate id %q", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if len(seen) != 800 {
		t.Errorf("got %d ids, want 800", len(seen))
	}
}

func TestRandomIDs(t *testing.T) {
	g := RandomIDs{Prefix: "mask-"}
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := g.NextID()
		if !strings.HasPrefix(id, "mask-") {
			t.Fatalf("NextID() = %q, missing prefix", id)
		}
		if len(id) != len("mask-")+10 {
			t.Fatalf("NextID() = %q, want 10 token characters", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
