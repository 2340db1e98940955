package mengram

import (
	"context"
	"net/http"
	"strconv"
)

// GraphNode is one entity in the knowledge graph.
type GraphNode struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	FactsCount     int    `json:"facts_count"`
	KnowledgeCount int    `json:"knowledge_count"`
}

// GraphEdge is a typed relation between two entities.
type GraphEdge struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// KnowledgeGraph is the full entity/relation view of a user's memory,
// suitable for visualization.
type KnowledgeGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Graph fetches the knowledge graph for a user.
func (c *Client) Graph(ctx context.Context, opts *ListOptions) (*KnowledgeGraph, error) {
	if opts == nil {
		opts = &ListOptions{}
	}
	var out KnowledgeGraph
	if err := c.do(ctx, http.MethodGet, "/v1/graph", query{"user_id": c.resolveUserID(opts.UserID)}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// KnowledgeEntry is one reusable piece of applied knowledge (a solution,
// command, decision) attached to an entity.
type KnowledgeEntry struct {
	Entity   string `json:"entity"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Artifact string `json:"artifact,omitempty"`
}

// RecentKnowledgeOptions configures a RecentKnowledge call.
type RecentKnowledgeOptions struct {
	UserID string
	Limit  int // maximum entries, service default when 0
}

// RecentKnowledge lists the latest knowledge entries across all
// entities, newest first.
func (c *Client) RecentKnowledge(ctx context.Context, opts *RecentKnowledgeOptions) ([]KnowledgeEntry, error) {
	if opts == nil {
		opts = &RecentKnowledgeOptions{}
	}
	q := query{"user_id": c.resolveUserID(opts.UserID)}
	if opts.Limit > 0 {
		q["limit"] = strconv.Itoa(opts.Limit)
	}
	var out struct {
		Knowledge []KnowledgeEntry `json:"knowledge"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/knowledge/recent", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Knowledge, nil
}
