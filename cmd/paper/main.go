// Package main provides the paper CLI entry point.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zxrys/weak-accept/internal/config"
	"github.com/zxrys/weak-accept/internal/reviews"
	"github.com/zxrys/weak-accept/internal/telemetry"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI with args and returns the process exit code.
// It is the only place where an error turns into an exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Load .env file if present (for PAPER_API_KEY and friends)
	_ = godotenv.Load()

	root := newRootCmd(&app{stdout: stdout, stderr: stderr})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		return reportError(stdout, err)
	}
	return ExitSuccess
}

// app holds the global flags and output streams shared by all commands.
type app struct {
	configPath string
	jsonOutput bool
	verbose    bool

	stdout io.Writer
	stderr io.Writer
}

// setup loads the configuration and builds an API client from it.
func (a *app) setup() (*config.Config, *reviews.Client, error) {
	path, err := config.ResolvePath(a.configPath)
	if err != nil {
		return nil, nil, &exitError{code: ExitConfigError, err: err}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, &exitError{code: ExitConfigError, err: err}
	}

	logger := telemetry.NewLogger(a.stderr, a.verbose)
	logger.Debug("loaded config", "path", path, "base_url", cfg.APIBaseURL, "api_key_set", cfg.APIKey != "")

	client := reviews.NewClient(cfg.APIBaseURL,
		reviews.WithAPIKey(cfg.APIKey),
		reviews.WithLogger(logger),
		reviews.WithUserAgent("paper-cli/"+Version),
	)
	return cfg, client, nil
}

func (a *app) output() *output {
	return &output{w: a.stdout, jsonMode: a.jsonOutput}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "paper",
		Short: "Command-line client for arXiv Paper Reviews",
		Long: `paper talks to an arXiv Paper Reviews server: list papers, show a paper,
read its comments and post a new one.

Configuration is read from config.json next to the paper executable, or from
the file given by --config or PAPER_CONFIG:

  {"apiBaseUrl": "https://reviews.example.org", "apiKey": "...", "defaultAuthorName": "Bob"}`,
		Example: `  # Papers announced on a given day
  paper list --date 2026-02-04 --categories cs.AI --limit 5

  # Paper details
  paper show 4711d67c242a5ecba2751e6b

  # Comments on a paper
  paper comments 4711d67c242a5ecba2751e6b

  # Post a comment
  paper comment 4711d67c242a5ecba2751e6b "A valuable paper"`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errNoCommand
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (default: config.json next to the executable)")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Print the server response as JSON instead of text")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log HTTP requests to stderr")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newCommentsCmd(a),
		newCommentCmd(a),
		newCompletionCmd(root),
	)

	return root
}
