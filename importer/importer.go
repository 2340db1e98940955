package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mengram "github.com/mengram/mengram-go"
)

// MemoryWriter is the slice of the mengram client the pipeline needs.
// Satisfied by *mengram.Client.
type MemoryWriter interface {
	Add(ctx context.Context, messages []mengram.Message, opts *mengram.AddOptions) (*mengram.AddResult, error)
}

// Importer submits preprocessed sources to the memory service, one
// chunk at a time, collecting failures instead of propagating them.
type Importer struct {
	client MemoryWriter
	logger *slog.Logger
}

func New(client MemoryWriter, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{client: client, logger: logger}
}

// ImportChatGPT imports a ChatGPT data export (conversations.json or
// the export .zip).
func (im *Importer) ImportChatGPT(ctx context.Context, path string, opts Options) (*Result, error) {
	sources, err := ParseChatGPTExport(path)
	if err != nil {
		return nil, err
	}
	return im.run(ctx, sources, nil, opts)
}

// ImportVault imports every note in a vault directory.
func (im *Importer) ImportVault(ctx context.Context, dir string, opts Options) (*Result, error) {
	sources, readErrors, err := LoadVault(dir)
	if err != nil {
		return nil, err
	}
	return im.run(ctx, sources, readErrors, opts)
}

// ImportFiles imports an arbitrary list of text files.
func (im *Importer) ImportFiles(ctx context.Context, paths []string, opts Options) (*Result, error) {
	sources, readErrors := LoadFiles(paths)
	return im.run(ctx, sources, readErrors, opts)
}

// Run imports already-normalized sources. The three Import* front ends
// all land here.
func (im *Importer) Run(ctx context.Context, sources []Source, opts Options) (*Result, error) {
	return im.run(ctx, sources, nil, opts)
}

type unit struct {
	title  string
	chunks []string
}

// saveState persists resume progress. A write failure does not stop the
// import, but it means the next run will re-submit, so it is logged.
func (im *Importer) saveState(state *runState) {
	if state == nil {
		return
	}
	if err := state.Save(); err != nil {
		im.logger.Warn("state save failed", "path", state.path, "error", err)
	}
}

func (im *Importer) run(ctx context.Context, sources []Source, readErrors []string, opts Options) (*Result, error) {
	start := time.Now()

	limit := opts.ChunkSize
	if limit <= 0 {
		limit = DefaultChunkSize
	}

	var state *runState
	if opts.StatePath != "" {
		var err error
		state, err = loadState(opts.StatePath)
		if err != nil {
			return nil, fmt.Errorf("load import state: %w", err)
		}
	}

	res := &Result{
		SourcesFound: len(sources) + len(readErrors),
		Errors:       append([]string(nil), readErrors...),
	}

	// Chunk everything up front so progress reporting has an exact total.
	var units []unit
	total := 0
	for _, src := range sources {
		if state != nil && state.Done(src.Title) {
			im.logger.Debug("source already imported, skipping", "source", src.Title)
			continue
		}
		chunks := SplitText(renderSource(src), limit)
		if len(chunks) == 0 {
			res.Skipped++
			if state != nil {
				state.Mark(src.Title)
			}
			continue
		}
		units = append(units, unit{title: src.Title, chunks: chunks})
		total += len(chunks)
	}

	im.logger.Info("import starting",
		"sources", res.SourcesFound,
		"units", len(units),
		"chunks", total,
		"skipped", res.Skipped,
	)

	done := 0
	for _, u := range units {
		failed := false
		for _, chunk := range u.chunks {
			select {
			case <-ctx.Done():
				im.logger.Info("import interrupted")
				im.saveState(state)
				res.Elapsed = time.Since(start)
				return res, ctx.Err()
			default:
			}

			out, err := im.client.Add(ctx, []mengram.Message{{Role: "user", Content: chunk}}, &mengram.AddOptions{
				UserID:    opts.UserID,
				SessionID: u.title,
			})
			done++
			if err != nil {
				if !failed {
					res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", u.title, err))
				}
				failed = true
				im.logger.Warn("chunk submission failed", "source", u.title, "error", err)
			} else {
				res.ChunksSent++
				res.Created = append(res.Created, out.IDs...)
				if state != nil {
					state.ChunksSent++
				}
			}
			if opts.Progress != nil {
				opts.Progress(done, total, u.title)
			}
		}

		if state != nil && !failed {
			state.Mark(u.title)
			im.saveState(state)
		}
	}

	im.saveState(state)

	res.Elapsed = time.Since(start)
	im.logger.Info("import complete",
		"chunks_sent", res.ChunksSent,
		"created", len(res.Created),
		"errors", len(res.Errors),
		"elapsed", res.Elapsed,
	)
	return res, nil
}

// renderSource flattens a source to plain text. Conversations become a
// Human:/Assistant: transcript so the extraction service sees who said
// what; single-turn sources (notes, files) pass through untouched.
func renderSource(src Source) string {
	if len(src.Messages) == 1 {
		return src.Messages[0].Text
	}

	var sb strings.Builder
	for _, m := range src.Messages {
		switch m.Role {
		case "user":
			sb.WriteString("Human: ")
		case "assistant":
			sb.WriteString("Assistant: ")
		default:
			sb.WriteString(m.Role + ": ")
		}
		sb.WriteString(m.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
