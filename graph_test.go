package mengram

import (
	"context"
	"net/http"
	"testing"
)

func TestGraph(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/graph" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("user_id"); got != "default" {
			t.Errorf("user_id = %q", got)
		}
		w.Write([]byte(`{
			"nodes": [{"id": "postgres", "name": "PostgreSQL", "type": "technology", "facts_count": 4, "knowledge_count": 2}],
			"edges": [{"source": "project-alpha", "target": "postgres", "type": "uses", "description": "main database"}]
		}`))
	})

	g, err := c.Graph(context.Background(), nil)
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if len(g.Nodes) != 1 || g.Nodes[0].FactsCount != 4 {
		t.Errorf("nodes = %+v", g.Nodes)
	}
	if len(g.Edges) != 1 || g.Edges[0].Type != "uses" {
		t.Errorf("edges = %+v", g.Edges)
	}
}

func TestRecentKnowledge(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/knowledge/recent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit = %q", got)
		}
		if got := r.URL.Query().Get("user_id"); got != "alice" {
			t.Errorf("user_id = %q", got)
		}
		w.Write([]byte(`{"knowledge": [
			{"entity": "PostgreSQL", "type": "solution", "title": "Pool exhaustion fix", "content": "cap hikari pool at 20"}
		]}`))
	})

	entries, err := c.RecentKnowledge(context.Background(), &RecentKnowledgeOptions{UserID: "alice", Limit: 5})
	if err != nil {
		t.Fatalf("RecentKnowledge: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Pool exhaustion fix" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestRecentKnowledge_OmitsZeroLimit(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("limit") {
			t.Errorf("limit should be omitted, query = %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"knowledge": []}`))
	})

	if _, err := c.RecentKnowledge(context.Background(), nil); err != nil {
		t.Fatalf("RecentKnowledge: %v", err)
	}
}
