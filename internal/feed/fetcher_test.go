package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bilgisen/tldr-relay/internal/models"
)

func newEditionServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/tech/2025-06-03", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(editionHTML))
	})
	mux.HandleFunc("/ai/2025-06-03", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ai", http.StatusFound)
	})
	mux.HandleFunc("/ai", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h1>TLDR AI</h1></body></html>`))
	})
	mux.HandleFunc("/design/2025-06-03", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/devops/2025-06-03", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchEdition(t *testing.T) {
	srv := newEditionServer(t)
	f := NewFetcher(srv.URL+"/", 5*time.Second)

	if got := f.EditionURL(models.CategoryTech, "2025-06-03"); got != srv.URL+"/tech/2025-06-03" {
		t.Fatalf("EditionURL = %q", got)
	}

	entries, err := f.FetchEdition(context.Background(), models.CategoryTech, "2025-06-03")
	if err != nil {
		t.Fatalf("FetchEdition: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 raw entries, got %d", len(entries))
	}
}

func TestFetchEditionRedirectMeansNotPublished(t *testing.T) {
	srv := newEditionServer(t)
	f := NewFetcher(srv.URL, 5*time.Second)

	_, err := f.FetchEdition(context.Background(), models.CategoryAI, "2025-06-03")
	if !errors.Is(err, ErrNotPublished) {
		t.Fatalf("expected ErrNotPublished, got %v", err)
	}
}

func TestFetchEditionNotFound(t *testing.T) {
	srv := newEditionServer(t)
	f := NewFetcher(srv.URL, 5*time.Second)

	_, err := f.FetchEdition(context.Background(), models.CategoryDesign, "2025-06-03")
	if !errors.Is(err, ErrNotPublished) {
		t.Fatalf("expected ErrNotPublished, got %v", err)
	}
}

func TestFetchEditionServerError(t *testing.T) {
	srv := newEditionServer(t)
	f := NewFetcher(srv.URL, 5*time.Second)

	_, err := f.FetchEdition(context.Background(), models.CategoryDevOps, "2025-06-03")
	if err == nil || errors.Is(err, ErrNotPublished) {
		t.Fatalf("expected a hard error, got %v", err)
	}
}
