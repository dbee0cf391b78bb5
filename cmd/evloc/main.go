package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/lithoslabs/evidence"
	"github.com/lithoslabs/evidence/gemini"
	"github.com/lithoslabs/evidence/goquery"
	evhttp "github.com/lithoslabs/evidence/http"
	"github.com/lithoslabs/evidence/pdf"
	evslog "github.com/lithoslabs/evidence/slog"
	"github.com/lithoslabs/evidence/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(stderr, nil)),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("evloc"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'evloc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set EVLOC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	highlights := evslog.NewLoggingHighlightService(sqlite.NewHighlightService(m.DB), deps.Logger)
	projects := sqlite.NewProjectService(m.DB)

	// The extract and serve commands call the model; get only reads the
	// database, so it works without an API key.
	var extractor evidence.ClaimExtractor
	if cmd == "extract" || cmd == "serve" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		extractor = evslog.NewLoggingExtractor(
			gemini.NewExtractor(client, gemini.WithRateLimit(extractorRPS)),
			deps.Logger,
		)
	}

	fetcher := evslog.NewLoggingFetcher(evhttp.NewFetcher(), deps.Logger)
	deps.Locator = evidence.NewLocator(
		fetcher,
		pdf.NewService(),
		goquery.NewService(),
		extractor,
		highlights,
		projects,
	)

	return kongCtx.Run(deps)
}

// extractorRPS caps outbound Gemini calls.
const extractorRPS = 2.0

func defaultDBPath() string {
	if path := os.Getenv("EVLOC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "evloc.db"
	}
	dir := filepath.Join(home, ".evloc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "evloc.db")
}
