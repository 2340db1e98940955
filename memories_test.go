package mengram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAdd_RequestShape(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/add" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var req addRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "user" {
			t.Errorf("messages = %+v", req.Messages)
		}
		if req.UserID != "ali" {
			t.Errorf("user_id = %q", req.UserID)
		}
		json.NewEncoder(w).Encode(AddResult{IDs: []string{"m-1", "m-2"}})
	})

	out, err := c.Add(context.Background(), []Message{
		{Role: "user", Content: "we use PostgreSQL 15"},
		{Role: "assistant", Content: "good choice"},
	}, &AddOptions{UserID: "ali"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(out.IDs) != 2 {
		t.Errorf("ids = %v", out.IDs)
	}
}

func TestAdd_DefaultsToClientUserID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req addRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.UserID != "team-bot" {
			t.Errorf("user_id = %q, want client default", req.UserID)
		}
		json.NewEncoder(w).Encode(AddResult{})
	}))
	defer server.Close()

	c, err := New(Config{APIKey: "k", BaseURL: server.URL, UserID: "team-bot"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.AddText(context.Background(), "hello", nil); err != nil {
		t.Fatalf("AddText: %v", err)
	}
}

func TestGet_AbsenceIsNotAnError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "memory not found"})
	})

	item, found, err := c.Get(context.Background(), "missing", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found || item != nil {
		t.Errorf("expected absent result, got found=%v item=%+v", found, item)
	}
}

func TestGet_ServerErrorStillPropagates(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, _, err := c.Get(context.Background(), "x", nil)
	if !IsServerError(err) {
		t.Fatalf("expected server error, got %v", err)
	}
}

func TestDelete_NotFoundMeansFalse(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	deleted, err := c.Delete(context.Background(), "missing", nil)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted {
		t.Error("expected deleted=false for 404")
	}
}

func TestSearch_DecodesResults(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req searchRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Query != "database issues" || req.TopK != 3 {
			t.Errorf("request = %+v", req)
		}
		w.Write([]byte(`{"results":[{"memory":{"id":"m-1","memory":"uses PostgreSQL"},"score":0.91}]}`))
	})

	results, err := c.Search(context.Background(), "database issues", &SearchOptions{TopK: 3})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Memory.ID != "m-1" || results[0].Score != 0.91 {
		t.Errorf("results = %+v", results)
	}
}
