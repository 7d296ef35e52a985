package fetch

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != UserAgent {
			t.Errorf("User-Agent = %q, want %q", ua, UserAgent)
		}
		w.Write([]byte(`<html><body><h1>Workshops</h1></body></html>`))
	}))
	defer srv.Close()

	doc, err := New().Get(srv.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got := doc.Find("h1").Text(); got != "Workshops" {
		t.Errorf("h1 text = %q, want %q", got, "Workshops")
	}
}

func TestGetNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := New().Get(srv.URL); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
