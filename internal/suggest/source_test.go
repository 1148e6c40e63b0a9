package suggest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/atomicstack/title-page-form/internal/logging"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "suggest-test")
	if err == nil {
		logging.Configure(filepath.Join(dir, "test.log"))
	}
	code := m.Run()
	if dir != "" {
		os.RemoveAll(dir)
	}
	os.Exit(code)
}

func TestLoadFetchesOnce(t *testing.T) {
	var calls int32
	src := New(FetcherFunc(func(ctx context.Context, endpoint string) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		if endpoint != "/completions/composers" {
			t.Errorf("unexpected endpoint %q", endpoint)
		}
		return []string{"Bach", "Brahms"}, nil
	}), "/completions/composers")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			src.Load(context.Background())
		}()
	}
	wg.Wait()
	got := src.Load(context.Background())
	if calls != 1 {
		t.Fatalf("expected one fetch, got %d", calls)
	}
	if len(got) != 2 || got[1] != "Brahms" {
		t.Fatalf("unexpected suggestions %v", got)
	}
	if !src.Loaded() {
		t.Fatalf("expected source marked loaded")
	}
}

func TestLoadDegradesToEmptyOnFailure(t *testing.T) {
	src := New(FetcherFunc(func(context.Context, string) ([]string, error) {
		return nil, errors.New("connection refused")
	}), "/completions/composers")
	got := src.Load(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil set, got %v", got)
	}
	if src.Err() == nil {
		t.Fatalf("expected failure recorded")
	}
}

func TestSuggestionsAreCopies(t *testing.T) {
	src := New(FetcherFunc(func(context.Context, string) ([]string, error) {
		return []string{"Bach"}, nil
	}), "/c")
	got := src.Load(context.Background())
	got[0] = "mutated"
	if src.Suggestions()[0] != "Bach" {
		t.Fatalf("expected internal set untouched")
	}
}

func TestNoEndpointLoadsNothing(t *testing.T) {
	called := false
	src := New(FetcherFunc(func(context.Context, string) ([]string, error) {
		called = true
		return []string{"x"}, nil
	}), "")
	if got := src.Load(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
	if called {
		t.Fatalf("expected no fetch without endpoint")
	}
}

func TestCacheSharesSourcePerEndpoint(t *testing.T) {
	var calls int32
	cache := NewCache(FetcherFunc(func(context.Context, string) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		return []string{"x"}, nil
	}))
	a := cache.Source("/completions/composers")
	b := cache.Source("/completions/composers")
	if a != b {
		t.Fatalf("expected shared source")
	}
	a.Load(context.Background())
	b.Load(context.Background())
	if cache.Source("/completions/other") == a {
		t.Fatalf("expected distinct source per endpoint")
	}
	if calls != 1 {
		t.Fatalf("expected one fetch, got %d", calls)
	}
}
