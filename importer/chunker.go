package importer

import "strings"

// DefaultChunkSize is the character budget per submitted chunk. Large
// enough that most notes and conversation segments go out whole, small
// enough that the extraction service receives focused context.
const DefaultChunkSize = 8000

const paragraphSep = "\n\n"

// SplitText splits text into chunks of at most limit characters,
// breaking only on blank-line paragraph boundaries. Paragraph order is
// preserved and no paragraph is ever split: a single paragraph longer
// than the budget is emitted whole as its own oversized chunk rather
// than truncated. Emitted chunks are trimmed; blank paragraphs vanish.
func SplitText(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultChunkSize
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if len(trimmed) <= limit {
		return []string{trimmed}
	}

	var chunks []string
	var buf strings.Builder
	for _, para := range splitParagraphs(trimmed) {
		if buf.Len() > 0 && buf.Len()+len(paragraphSep)+len(para) > limit {
			chunks = append(chunks, buf.String())
			buf.Reset()
		}
		if buf.Len() > 0 {
			buf.WriteString(paragraphSep)
		}
		buf.WriteString(para)
	}
	if buf.Len() > 0 {
		chunks = append(chunks, buf.String())
	}
	return chunks
}

// splitParagraphs breaks text on blank lines. Returned paragraphs are
// trimmed and non-empty.
func splitParagraphs(text string) []string {
	var paras []string
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		p := strings.TrimSpace(strings.Join(current, "\n"))
		if p != "" {
			paras = append(paras, p)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return paras
}
