package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/quickmove/internal/app"
	"github.com/kk-code-lab/quickmove/internal/clipboard"
	"github.com/kk-code-lab/quickmove/internal/config"
	"github.com/kk-code-lab/quickmove/internal/search"
)

var version = "dev"

const (
	exitOK        = 0
	exitError     = 1
	exitUsage     = 2
	exitCancelled = 3
)

const clipboardTimeout = 5 * time.Second

func printHelp(w io.Writer) {
	fmt.Fprint(w, `quickmove - move files into a folder picked by fuzzy search

USAGE:
    quickmove [OPTIONS] [FILE...]

OPTIONS:
    -h, --help            Show this help message and exit
    -v, --version         Show version and exit
    -r, --root DIR        Search for destinations under DIR
    -q, --query QUERY     Print ranked destinations for QUERY and exit
        --from-clipboard  Move the files listed on the clipboard
    -n, --dry-run         Show what would be moved without touching files
    -c, --config FILE     Read configuration from FILE

Query output is one destination per line: label, target path and
"new" or "existing", separated by tabs.

EXIT STATUS:
    0 moved or listed, 1 error, 2 usage error, 3 cancelled
`)
}

type cliOptions struct {
	help          bool
	version       bool
	root          string
	query         string
	queryMode     bool
	fromClipboard bool
	dryRun        bool
	configPath    string
	files         []string
}

var errUsage = errors.New("usage error")

// Overridable for tests.
var (
	readClipboardPayload = func(ctx context.Context, command string) ([]string, error) {
		reader, err := clipboard.NewReader(command)
		if err != nil {
			return nil, err
		}
		return reader.ReadPayload(ctx)
	}
	newScreen = tcell.NewScreen
)

func parseArgs(args []string) (cliOptions, error) {
	var opts cliOptions

	value := func(i *int, name string) (string, error) {
		if *i+1 >= len(args) {
			return "", fmt.Errorf("%w: %s requires a value", errUsage, name)
		}
		*i++
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		var err error
		switch {
		case arg == "--":
			opts.files = append(opts.files, args[i+1:]...)
			return opts, nil
		case arg == "-h" || arg == "--help":
			opts.help = true
		case arg == "-v" || arg == "--version":
			opts.version = true
		case arg == "-r" || arg == "--root":
			opts.root, err = value(&i, arg)
		case strings.HasPrefix(arg, "--root="):
			opts.root = strings.TrimPrefix(arg, "--root=")
		case arg == "-q" || arg == "--query":
			opts.query, err = value(&i, arg)
			opts.queryMode = true
		case strings.HasPrefix(arg, "--query="):
			opts.query = strings.TrimPrefix(arg, "--query=")
			opts.queryMode = true
		case arg == "--from-clipboard":
			opts.fromClipboard = true
		case arg == "-n" || arg == "--dry-run":
			opts.dryRun = true
		case arg == "-c" || arg == "--config":
			opts.configPath, err = value(&i, arg)
		case strings.HasPrefix(arg, "--config="):
			opts.configPath = strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-") && arg != "-":
			err = fmt.Errorf("%w: unknown option %s", errUsage, arg)
		default:
			opts.files = append(opts.files, arg)
		}
		if err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func main() {
	// Set UTF-8 as fallback encoding so non-ASCII folder names display correctly
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "quickmove: ", 0)

	opts, err := parseArgs(args)
	if err != nil {
		logger.Print(err)
		fmt.Fprintln(stderr, "Try 'quickmove --help' for more information.")
		return exitUsage
	}
	if opts.help {
		printHelp(stdout)
		return exitOK
	}
	if opts.version {
		fmt.Fprintf(stdout, "quickmove %s\n", version)
		return exitOK
	}

	cfg, err := config.Resolve(opts.configPath)
	if err != nil {
		logger.Print(err)
		return exitError
	}
	if opts.root != "" {
		if err := cfg.SetRoot(opts.root); err != nil {
			logger.Print(err)
			return exitError
		}
	}

	matcher := search.NewMatcher(search.Options{Scan: cfg.ScanOptions()})

	if opts.queryMode {
		candidates, err := matcher.Match(cfg.Root, opts.query)
		if err != nil {
			logger.Print(err)
			return exitError
		}
		printCandidates(stdout, candidates)
		return exitOK
	}

	payload := opts.files
	if opts.fromClipboard {
		ctx, cancel := context.WithTimeout(context.Background(), clipboardTimeout)
		fromClipboard, err := readClipboardPayload(ctx, cfg.ClipboardCommand)
		cancel()
		if err != nil {
			logger.Printf("failed to read clipboard: %v", err)
			return exitError
		}
		payload = append(payload, fromClipboard...)
	}
	if len(payload) == 0 {
		logger.Print("no files to move")
		fmt.Fprintln(stderr, "Try 'quickmove --help' for more information.")
		return exitUsage
	}

	root, folders, err := matcher.Scan(cfg.Root)
	if err != nil {
		logger.Print(err)
		return exitError
	}

	screen, err := newScreen()
	if err != nil {
		logger.Printf("failed to open terminal: %v", err)
		return exitError
	}
	app, err := apppkg.NewApplication(screen, apppkg.Options{
		Root:    root,
		Folders: folders,
		Payload: payload,
		DryRun:  opts.dryRun,
		Ranker:  matcher,
	})
	if err != nil {
		logger.Printf("failed to initialize picker: %v", err)
		return exitError
	}
	outcome := app.Run()
	_ = app.Close()

	if outcome.Cancelled() {
		return exitCancelled
	}
	printOutcome(stdout, outcome, opts.dryRun)
	if outcome.Err != nil {
		logger.Print(outcome.Err)
		return exitError
	}
	return exitOK
}

func printCandidates(w io.Writer, candidates []search.Candidate) {
	for _, c := range candidates {
		kind := "existing"
		if c.IsNew {
			kind = "new"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Label, c.TargetPath, kind)
	}
}

func printOutcome(w io.Writer, outcome apppkg.Outcome, dryRun bool) {
	verb, created := "moved", "created"
	if dryRun {
		verb, created = "would move", "would create"
	}
	if outcome.Result.Created {
		fmt.Fprintf(w, "%s %s\n", created, outcome.Result.Destination)
	}
	for _, m := range outcome.Result.Moves {
		fmt.Fprintf(w, "%s %s -> %s\n", verb, m.Source, m.Target)
	}
}
