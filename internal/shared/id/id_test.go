package id

import (
	"bytes"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestGenerateUnique(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1 == id2 {
		t.Error("Generated IDs should be unique")
	}
	if len(id1.String()) != 26 {
		t.Errorf("ULID should be 26 characters, got %d", len(id1.String()))
	}
}

func TestTypedIDs(t *testing.T) {
	tests := []struct {
		id     string
		prefix string
	}{
		{NewRequestID().String(), RequestPrefix},
		{NewRunID().String(), RunPrefix},
		{NewJobID().String(), JobPrefix},
	}

	for _, tt := range tests {
		if !strings.HasPrefix(tt.id, tt.prefix+"_") {
			t.Errorf("ID should start with '%s_', got: %s", tt.prefix, tt.id)
		}
		if !IsValid(tt.id) {
			t.Errorf("prefixed ID should parse: %s", tt.id)
		}
	}
}

func TestIsValid(t *testing.T) {
	valid := NewGenerator().Generate().String()
	tests := []struct {
		id   string
		want bool
	}{
		{valid, true},
		{"req_" + valid, true},
		{"", false},
		{"not-a-ulid", false},
		{"req_" + valid[:20], false},
	}

	for _, tt := range tests {
		if got := IsValid(tt.id); got != tt.want {
			t.Errorf("IsValid(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestTimestamp(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	gen := NewGeneratorWithEntropy(bytes.NewReader(make([]byte, 1024)))
	gen.now = func() time.Time { return at }

	got, err := Timestamp(gen.GenerateWithPrefix(RunPrefix))
	if err != nil {
		t.Fatalf("Timestamp: %v", err)
	}
	if !got.Equal(at) {
		t.Errorf("Timestamp = %v, want %v", got, at)
	}

	if _, err := Timestamp("garbage"); err == nil {
		t.Error("expected error for invalid ID")
	}
}

func TestMonotonicWithinMillisecond(t *testing.T) {
	at := time.Now()
	gen := NewGenerator()
	gen.now = func() time.Time { return at }

	ids := make([]string, 100)
	for i := range ids {
		ids[i] = gen.Generate().String()
	}
	if !sort.StringsAreSorted(ids) {
		t.Error("IDs from one millisecond should sort in creation order")
	}
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()
	const workers, perWorker = 8, 200

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := gen.GenerateWithPrefix(JobPrefix)
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Errorf("expected %d unique IDs, got %d", workers*perWorker, len(seen))
	}
}

func BenchmarkGenerateWithPrefix(b *testing.B) {
	gen := NewGenerator()
	for i := 0; i < b.N; i++ {
		_ = gen.GenerateWithPrefix(RequestPrefix)
	}
}
