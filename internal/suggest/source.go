// Package suggest loads completion candidates for autocomplete inputs.
//
// A Source fetches its endpoint at most once. Failures are logged and the
// source degrades to an empty set: suggestions are an enhancement and never
// block data entry.
package suggest

import (
	"context"
	"sync"

	"github.com/atomicstack/title-page-form/internal/logging"
	"github.com/atomicstack/title-page-form/internal/logging/events"
)

// Fetcher retrieves the candidate list served at endpoint.
type Fetcher interface {
	Completions(ctx context.Context, endpoint string) ([]string, error)
}

// FetcherFunc adapts a plain function to Fetcher.
type FetcherFunc func(ctx context.Context, endpoint string) ([]string, error)

func (f FetcherFunc) Completions(ctx context.Context, endpoint string) ([]string, error) {
	return f(ctx, endpoint)
}

// Source is a lazy one-shot suggestion set bound to a single endpoint.
type Source struct {
	endpoint string
	fetcher  Fetcher

	once   sync.Once
	mu     sync.RWMutex
	items  []string
	loaded bool
	err    error
}

// New returns a Source for endpoint. Nothing is fetched until Load.
func New(fetcher Fetcher, endpoint string) *Source {
	return &Source{endpoint: endpoint, fetcher: fetcher}
}

// Endpoint returns the endpoint the source reads from.
func (s *Source) Endpoint() string {
	if s == nil {
		return ""
	}
	return s.endpoint
}

// Load fetches the suggestion set on first call and returns it. Later calls,
// including concurrent ones, return the same set without another request.
func (s *Source) Load(ctx context.Context) []string {
	if s == nil {
		return nil
	}
	s.once.Do(func() {
		items, err := s.fetch(ctx)
		s.mu.Lock()
		s.items = items
		s.err = err
		s.loaded = true
		s.mu.Unlock()
	})
	return s.Suggestions()
}

func (s *Source) fetch(ctx context.Context) ([]string, error) {
	if s.fetcher == nil || s.endpoint == "" {
		return []string{}, nil
	}
	events.Suggest.Fetch(s.endpoint)
	items, err := s.fetcher.Completions(ctx, s.endpoint)
	if err != nil {
		logging.Errorf("could not get suggestions from %s: %w", s.endpoint, err)
		events.Suggest.Error(s.endpoint, err)
		return []string{}, err
	}
	if items == nil {
		items = []string{}
	}
	events.Suggest.Loaded(s.endpoint, len(items))
	return items, nil
}

// Suggestions returns a copy of the loaded set; empty before Load completes.
func (s *Source) Suggestions() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	dup := make([]string, len(s.items))
	copy(dup, s.items)
	return dup
}

// Loaded reports whether the one-shot fetch has finished.
func (s *Source) Loaded() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Err returns the failure that emptied the set, if any.
func (s *Source) Err() error {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}
