package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tamkeenai/careerd/internal/core/domain"
)

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/jobs" {
			t.Errorf("expected path /api/jobs, got %s", r.URL.Path)
		}

		// Query parameters are forwarded.
		vals := r.URL.Query()
		if vals.Get("search") != "engineer" {
			t.Errorf("expected search=engineer, got %q", vals.Get("search"))
		}
		if vals.Get("page") != "2" {
			t.Errorf("expected page=2, got %q", vals.Get("page"))
		}
		if vals.Get("pageSize") != "5" {
			t.Errorf("expected pageSize=5, got %q", vals.Get("pageSize"))
		}

		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "job-001", "title": "Software Engineer"},
		})
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL, TimeoutSeconds: 5})
	payload, err := c.Get(context.Background(), "/api/jobs",
		domain.Query{Search: "engineer", Page: 2, PageSize: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, ok := payload.([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected 1 decoded item, got %v", payload)
	}
	job := items[0].(map[string]any)
	if job["title"] != "Software Engineer" {
		t.Errorf("expected title Software Engineer, got %v", job["title"])
	}
}

func TestClient_Get_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no route", http.StatusMethodNotAllowed)
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})
	_, err := c.Get(context.Background(), "/api/jobs", domain.Query{})
	if err == nil {
		t.Fatal("expected an error")
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if se.StatusCode() != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", se.StatusCode())
	}
}

func TestClient_Get_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})
	payload, err := c.Get(context.Background(), "/api/dashboard", domain.Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload != nil {
		t.Errorf("expected nil payload for empty body, got %v", payload)
	}
}

func TestClient_Get_TransportError(t *testing.T) {
	// Nothing listens on this port; the dial fails immediately.
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	_, err := c.Get(context.Background(), "/api/jobs", domain.Query{})
	if err == nil {
		t.Fatal("expected a transport error")
	}
}
