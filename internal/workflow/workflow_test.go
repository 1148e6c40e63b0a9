package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/title-page-form/internal/api"
	"github.com/atomicstack/title-page-form/internal/logging"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "workflow-test")
	if err == nil {
		logging.Configure(filepath.Join(dir, "test.log"))
	}
	code := m.Run()
	if dir != "" {
		os.RemoveAll(dir)
	}
	os.Exit(code)
}

type fakeClient struct {
	artifact   api.Artifact
	combined   api.Combined
	err        error
	generated  []api.Piece
	combinedAs []string
}

func (f *fakeClient) Generate(_ context.Context, piece api.Piece) (api.Artifact, error) {
	f.generated = append(f.generated, piece)
	return f.artifact, f.err
}

func (f *fakeClient) Combine(_ context.Context, name string, _ api.Upload) (api.Combined, error) {
	f.combinedAs = append(f.combinedAs, name)
	return f.combined, f.err
}

func TestGenerateReturnsArtifact(t *testing.T) {
	client := &fakeClient{artifact: api.Artifact{URL: "http://x/a", Filename: "title.pdf"}}
	res := New(client, nil).Generate(context.Background(), api.Piece{Title: "t"})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Artifact.URL != "http://x/a" {
		t.Fatalf("expected artifact url, got %q", res.Artifact.URL)
	}
	if len(client.generated) != 1 || client.generated[0].Title != "t" {
		t.Fatalf("expected piece forwarded, got %+v", client.generated)
	}
}

func TestCombineOpensResult(t *testing.T) {
	client := &fakeClient{combined: api.Combined{URL: "http://x/c.pdf"}}
	var opened []string
	w := New(client, OpenerFunc(func(url string) error {
		opened = append(opened, url)
		return nil
	}))
	res := w.Combine(context.Background(), "title.pdf", api.Upload{Name: "score.pdf"})
	if res.Err != nil || res.URL != "http://x/c.pdf" {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(opened) != 1 || opened[0] != "http://x/c.pdf" {
		t.Fatalf("expected combined url opened once, got %v", opened)
	}
}

func TestCombineFailureDoesNotOpen(t *testing.T) {
	client := &fakeClient{err: errors.New("boom")}
	opened := 0
	w := New(client, OpenerFunc(func(string) error {
		opened++
		return nil
	}))
	res := w.Combine(context.Background(), "title.pdf", api.Upload{})
	if res.Err == nil {
		t.Fatalf("expected error")
	}
	if opened != 0 {
		t.Fatalf("expected opener untouched, got %d calls", opened)
	}
}

func TestCombineReportsOpenFailure(t *testing.T) {
	client := &fakeClient{combined: api.Combined{URL: "http://x/c.pdf"}}
	w := New(client, OpenerFunc(func(string) error { return errors.New("no browser") }))
	res := w.Combine(context.Background(), "title.pdf", api.Upload{})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.OpenErr == nil || res.URL == "" {
		t.Fatalf("expected url with open error, got %+v", res)
	}
}

func TestCombineServerDetailBecomesNotification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Something has gone wrong"})
	}))
	defer srv.Close()

	client, err := api.New(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	res := New(client, nil).Combine(context.Background(), "title.pdf", api.Upload{Name: "score.pdf", Data: []byte("x")})
	if res.Err == nil {
		t.Fatalf("expected combine failure")
	}
	n := NotificationFor(res.Err)
	if n.Message != "Something has gone wrong" {
		t.Fatalf("expected detail text verbatim, got %q", n.Message)
	}
	if n.Severity != SeverityError {
		t.Fatalf("expected error severity, got %s", n.Severity)
	}
}

func TestNotificationForTransportError(t *testing.T) {
	n := NotificationFor(errors.New("dial tcp: connection refused"))
	if n.Message != "dial tcp: connection refused" {
		t.Fatalf("expected raw error text, got %q", n.Message)
	}
}

func TestNotificationForStatusWithoutDetail(t *testing.T) {
	n := NotificationFor(&api.StatusError{Status: http.StatusBadGateway})
	if n.Message != "502 Bad Gateway" {
		t.Fatalf("expected status text fallback, got %q", n.Message)
	}
}

func TestDataEnteredIsWarning(t *testing.T) {
	n := DataEntered()
	if n.Title != "Data Entered" || n.Severity != SeverityWarning {
		t.Fatalf("unexpected notification %+v", n)
	}
}
