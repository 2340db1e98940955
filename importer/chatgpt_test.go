package importer

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func strPtr(s string) *string { return &s }

func textNode(id, parent, role, text string, children ...string) exportNode {
	n := exportNode{ID: id, Children: children}
	if parent != "" {
		n.Parent = strPtr(parent)
	}
	if role != "" {
		n.Message = &exportMessage{}
		n.Message.Author.Role = role
		n.Message.Content.Parts = []json.RawMessage{json.RawMessage(`"` + text + `"`)}
	}
	return n
}

func TestWalkMapping_FollowsFirstChildOnly(t *testing.T) {
	// root → a → b, with b2 an edited sibling of b and c reachable only
	// through b2. Only root→a→b survives.
	mapping := map[string]exportNode{
		"root": textNode("root", "", "", "", "a"),
		"a":    textNode("a", "root", "user", "original question", "b", "b2"),
		"b":    textNode("b", "a", "assistant", "first answer"),
		"b2":   textNode("b2", "a", "assistant", "regenerated answer", "c"),
		"c":    textNode("c", "b2", "user", "follow-up on the edit"),
	}

	msgs := walkMapping(mapping)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d: %+v", len(msgs), msgs)
	}
	if msgs[0].Role != "user" || msgs[0].Text != "original question" {
		t.Errorf("msg 0 = %+v", msgs[0])
	}
	if msgs[1].Role != "assistant" || msgs[1].Text != "first answer" {
		t.Errorf("msg 1 = %+v", msgs[1])
	}
	for _, m := range msgs {
		if m.Text == "regenerated answer" || m.Text == "follow-up on the edit" {
			t.Errorf("imported content from a non-first-child branch: %+v", m)
		}
	}
}

func TestWalkMapping_NoRoot(t *testing.T) {
	// A cycle: every node has a parent, so there's nothing to walk from.
	mapping := map[string]exportNode{
		"a": textNode("a", "b", "user", "hello", "b"),
		"b": textNode("b", "a", "assistant", "hi", "a"),
	}
	if msgs := walkMapping(mapping); len(msgs) != 0 {
		t.Errorf("expected no messages without a root, got %+v", msgs)
	}
}

func TestWalkMapping_FiltersRolesAndEmptyText(t *testing.T) {
	mapping := map[string]exportNode{
		"root": textNode("root", "", "system", "you are chatgpt", "u1"),
		"u1":   textNode("u1", "root", "user", "real question", "t1"),
		"t1":   textNode("t1", "u1", "tool", "tool output", "blank"),
		"blank": {
			ID: "blank", Parent: strPtr("t1"), Children: []string{"a1"},
			Message: &exportMessage{}, // assistant turn with no parts
		},
		"a1": textNode("a1", "blank", "assistant", "real answer"),
	}
	// give the blank node an assistant role but empty content
	blank := mapping["blank"]
	blank.Message.Author.Role = "assistant"
	mapping["blank"] = blank

	msgs := walkMapping(mapping)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d: %+v", len(msgs), msgs)
	}
	if msgs[0].Text != "real question" || msgs[1].Text != "real answer" {
		t.Errorf("got %+v", msgs)
	}
}

const exportJSON = `[
  {
    "title": "Postgres tuning",
    "mapping": {
      "r": {"id": "r", "parent": null, "children": ["m1"], "message": null},
      "m1": {"id": "m1", "parent": "r", "children": ["m2"],
             "message": {"author": {"role": "user"},
                         "content": {"content_type": "text", "parts": ["how do I tune postgres?"]}}},
      "m2": {"id": "m2", "parent": "m1", "children": [],
             "message": {"author": {"role": "assistant"},
                         "content": {"content_type": "text", "parts": ["start with shared_buffers"]}}}
    }
  },
  {
    "title": "",
    "mapping": {}
  }
]`

func TestParseChatGPTExport_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.json")
	if err := os.WriteFile(path, []byte(exportJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := ParseChatGPTExport(path)
	if err != nil {
		t.Fatalf("ParseChatGPTExport: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if sources[0].Title != "Postgres tuning" || len(sources[0].Messages) != 2 {
		t.Errorf("source 0 = %+v", sources[0])
	}
	if sources[1].Title != "Conversation 2" {
		t.Errorf("untitled conversation should get a positional title, got %q", sources[1].Title)
	}
	if len(sources[1].Messages) != 0 {
		t.Errorf("empty mapping should yield no messages, got %+v", sources[1].Messages)
	}
}

func TestParseChatGPTExport_ZipArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("conversations.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(exportJSON)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	sources, err := ParseChatGPTExport(path)
	if err != nil {
		t.Fatalf("ParseChatGPTExport: %v", err)
	}
	if len(sources) != 2 || sources[0].Title != "Postgres tuning" {
		t.Errorf("sources = %+v", sources)
	}
}

func TestParseChatGPTExport_MissingFile(t *testing.T) {
	if _, err := ParseChatGPTExport(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
