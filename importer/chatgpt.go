package importer

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
)

// exportConversation mirrors one entry of a ChatGPT conversations.json.
// Each conversation is a node graph keyed by id; edits and regenerated
// turns show up as extra children of the same parent.
type exportConversation struct {
	Title   string                `json:"title"`
	Mapping map[string]exportNode `json:"mapping"`
}

type exportNode struct {
	ID       string         `json:"id"`
	Parent   *string        `json:"parent"`
	Children []string       `json:"children"`
	Message  *exportMessage `json:"message"`
}

type exportMessage struct {
	Author struct {
		Role string `json:"role"`
	} `json:"author"`
	Content struct {
		ContentType string            `json:"content_type"`
		Parts       []json.RawMessage `json:"parts"`
	} `json:"content"`
}

// ParseChatGPTExport reads a ChatGPT data export and returns one Source
// per conversation. It accepts either conversations.json directly or
// the export .zip containing it.
func ParseChatGPTExport(filePath string) ([]Source, error) {
	data, err := readConversationsFile(filePath)
	if err != nil {
		return nil, err
	}

	var convs []exportConversation
	if err := json.Unmarshal(data, &convs); err != nil {
		return nil, fmt.Errorf("parse conversations: %w", err)
	}

	sources := make([]Source, 0, len(convs))
	for i, conv := range convs {
		title := strings.TrimSpace(conv.Title)
		if title == "" {
			title = fmt.Sprintf("Conversation %d", i+1)
		}
		sources = append(sources, Source{Title: title, Messages: walkMapping(conv.Mapping)})
	}
	return sources, nil
}

func readConversationsFile(filePath string) ([]byte, error) {
	if strings.HasSuffix(strings.ToLower(filePath), ".zip") {
		return readConversationsZip(filePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	return data, nil
}

func readConversationsZip(filePath string) ([]byte, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("open export archive: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if path.Base(f.Name) != "conversations.json" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open conversations.json: %w", err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read conversations.json: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("conversations.json not found in %s", filePath)
}

// walkMapping reconstructs a single linear message sequence from the
// branching node graph by following only the first child at every step.
// ChatGPT keeps edited and regenerated turns as additional children of
// the same parent; those alternate branches are deliberately not
// imported. Only the one linear path the user last saw is.
//
// A mapping with no parentless node yields no messages.
func walkMapping(mapping map[string]exportNode) []Message {
	root := findRoot(mapping)
	if root == "" {
		return nil
	}

	var msgs []Message
	seen := make(map[string]bool, len(mapping))
	for id := root; id != "" && !seen[id]; {
		seen[id] = true
		node, ok := mapping[id]
		if !ok {
			break
		}
		if m, ok := nodeMessage(node); ok {
			msgs = append(msgs, m)
		}
		if len(node.Children) == 0 {
			break
		}
		id = node.Children[0]
	}
	return msgs
}

// findRoot locates the node with no parent. Keys are visited in sorted
// order so a malformed export with several parentless nodes still walks
// deterministically.
func findRoot(mapping map[string]exportNode) string {
	ids := make([]string, 0, len(mapping))
	for id := range mapping {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		node := mapping[id]
		if node.Parent == nil || *node.Parent == "" {
			return id
		}
	}
	return ""
}

// nodeMessage extracts a user or assistant turn with non-empty text.
// System/tool turns and empty parts (image references, blanks) are
// dropped.
func nodeMessage(node exportNode) (Message, bool) {
	if node.Message == nil {
		return Message{}, false
	}
	role := node.Message.Author.Role
	if role != "user" && role != "assistant" {
		return Message{}, false
	}

	var parts []string
	for _, raw := range node.Message.Content.Parts {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue // non-text part
		}
		if s != "" {
			parts = append(parts, s)
		}
	}
	text := strings.TrimSpace(strings.Join(parts, "\n"))
	if text == "" {
		return Message{}, false
	}
	return Message{Role: role, Text: text}, true
}
