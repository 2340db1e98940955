// Command memgram is a thin CLI over the Mengram client: bulk imports,
// search, profile, and job inspection.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	mengram "github.com/mengram/mengram-go"
	"github.com/mengram/mengram-go/importer"
	"github.com/mengram/mengram-go/internal/config"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if cfg.APIKey == "" {
		slog.Error("MENGRAM_API_KEY is required")
		os.Exit(1)
	}

	client, err := mengram.New(mengram.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		UserID:  cfg.UserID,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		slog.Error("client setup failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, client, cfg, os.Args[1], os.Args[2:]); err != nil {
		slog.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client *mengram.Client, cfg config.Config, command string, args []string) error {
	im := importer.New(client, slog.Default())
	opts := importer.Options{
		UserID:    cfg.UserID,
		ChunkSize: cfg.ChunkSize,
		StatePath: cfg.StatePath,
		Progress:  printProgress,
	}

	switch command {
	case "import-chatgpt":
		fs := flag.NewFlagSet("import-chatgpt", flag.ExitOnError)
		fs.Parse(args)
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: memgram import-chatgpt <conversations.json|export.zip>")
		}
		res, err := im.ImportChatGPT(ctx, fs.Arg(0), opts)
		printSummary(res)
		return err

	case "import-vault":
		fs := flag.NewFlagSet("import-vault", flag.ExitOnError)
		fs.Parse(args)
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: memgram import-vault <dir>")
		}
		res, err := im.ImportVault(ctx, fs.Arg(0), opts)
		printSummary(res)
		return err

	case "import-files":
		fs := flag.NewFlagSet("import-files", flag.ExitOnError)
		fs.Parse(args)
		if fs.NArg() == 0 {
			return fmt.Errorf("usage: memgram import-files <file>...")
		}
		res, err := im.ImportFiles(ctx, fs.Args(), opts)
		printSummary(res)
		return err

	case "search":
		fs := flag.NewFlagSet("search", flag.ExitOnError)
		topK := fs.Int("top", 5, "maximum results")
		fs.Parse(args)
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: memgram search [-top N] <query>")
		}
		results, err := client.Search(ctx, fs.Arg(0), &mengram.SearchOptions{TopK: *topK})
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Printf("%.2f  %s\n", r.Score, r.Memory.Memory)
		}
		return nil

	case "profile":
		profile, err := client.GetProfile(ctx, nil)
		if err != nil {
			return err
		}
		fmt.Println(profile.Prompt)
		return nil

	case "job":
		fs := flag.NewFlagSet("job", flag.ExitOnError)
		wait := fs.Bool("wait", false, "poll until the job finishes")
		maxWait := fs.Duration("max-wait", 5*time.Minute, "give up after this long (with -wait)")
		fs.Parse(args)
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: memgram job [-wait] <id>")
		}

		var job *mengram.Job
		var err error
		if *wait {
			job, err = client.WaitForJob(ctx, fs.Arg(0), 2*time.Second, *maxWait)
		} else {
			job, err = client.GetJob(ctx, fs.Arg(0))
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s\n", job.ID, job.Status)
		if job.Error != "" {
			fmt.Printf("error: %s\n", job.Error)
		}
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func printProgress(done, total int, title string) {
	fmt.Printf("\r[%d/%d] %s\033[K", done, total, title)
	if done == total {
		fmt.Println()
	}
}

func printSummary(res *importer.Result) {
	if res == nil {
		return
	}
	fmt.Printf("\n=== Import Summary ===\n")
	fmt.Printf("Sources found:  %d\n", res.SourcesFound)
	fmt.Printf("Skipped:        %d\n", res.Skipped)
	fmt.Printf("Chunks sent:    %d\n", res.ChunksSent)
	fmt.Printf("Memories:       %d\n", len(res.Created))
	fmt.Printf("Errors:         %d\n", len(res.Errors))
	for _, e := range res.Errors {
		fmt.Printf("  - %s\n", e)
	}
	fmt.Printf("Elapsed:        %s\n", res.Elapsed.Round(time.Millisecond))
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: memgram <command> [args]

commands:
  import-chatgpt <path>   import a ChatGPT data export (.json or .zip)
  import-vault <dir>      import an Obsidian-style note vault
  import-files <file>...  import arbitrary text files
  search <query>          semantic search over memory
  profile                 print the generated cognitive profile
  job <id>                show (or -wait for) an asynchronous job`)
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
