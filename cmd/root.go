package cmd

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChrisBushman/tiger-claude/internal/api"
	"github.com/ChrisBushman/tiger-claude/internal/config"
	"github.com/ChrisBushman/tiger-claude/internal/constants"
	"github.com/ChrisBushman/tiger-claude/internal/display"
	"github.com/ChrisBushman/tiger-claude/internal/logging"
)

// App holds the application state
type App struct {
	cfg            *config.Config
	checkSSL       bool
	timeoutSeconds int
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg: config.NewConfig(),
	}
}

// Execute runs the root command
func Execute() {
	app := NewApp()

	rootCmd := &cobra.Command{
		Use:   "tiger-claude [question] [file...]",
		Short: "A Claude client for vintage Macs",
		Long: `tiger-claude is a command-line client for the Anthropic API, built to run
on old hardware where TLS setup is half the battle (the original target was
a PowerBook G4 on OS X Tiger with a hand-built OpenSSL).

With no arguments it starts an interactive session. With arguments it sends
one question, optionally with source files as context, and exits.

Examples:
  tiger-claude                              # Interactive mode
  tiger-claude "What is a goroutine?"
  tiger-claude "Is this code safe?" main.go util.go
  tiger-claude check-ssl                    # Diagnose TLS configuration
  tiger-claude -r "Explain channels"        # Render markdown output

Requires the ANTHROPIC_API_KEY environment variable. Set SSL_CERT_FILE to
point at a CA bundle when the system trust store is missing or stale.`,
		Args: cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			app.run(cmd, args)
		},
	}

	rootCmd.Flags().StringVarP(&app.cfg.Model, "model", "m", "", "Model name (default: "+constants.DefaultModel+")")
	rootCmd.Flags().IntVar(&app.cfg.MaxTokens, "max-tokens", 0, "Maximum response length in tokens")
	rootCmd.Flags().BoolVarP(&app.cfg.Render, "render", "r", false, "Render markdown with colors and formatting")
	rootCmd.Flags().BoolVarP(&app.cfg.Verbose, "verbose", "v", false, "Log API requests and responses to stderr")
	rootCmd.Flags().IntVar(&app.timeoutSeconds, "timeout", 0, "Per-request timeout in seconds")
	// Kept for compatibility with the original tool's invocation
	rootCmd.Flags().BoolVar(&app.checkSSL, "check-ssl", false, "Check TLS configuration and exit")

	rootCmd.AddCommand(NewCheckSSLCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (app *App) run(cmd *cobra.Command, args []string) {
	if app.timeoutSeconds > 0 {
		app.cfg.RequestTimeout = time.Duration(app.timeoutSeconds) * time.Second
	}

	if app.checkSSL {
		os.Exit(app.runCheckSSL())
	}

	// Missing credential is the one fatal startup error
	if err := app.cfg.Validate(); err != nil {
		display.ShowError(err.Error())
		os.Exit(1)
	}

	if app.cfg.Render {
		if err := display.InitRenderer(); err != nil {
			// Rendering is cosmetic; fall back to plain output
			display.ShowError(err.Error())
		}
	}

	client := api.NewClient(app.cfg, app.httpLogger())
	session := NewSession(app.cfg, client, os.Stdout)

	if len(args) == 0 {
		app.runInteractive(session)
		return
	}

	// One-shot: first argument is the question, the rest are context files
	if err := session.OneShot(args[0], args[1:]); err != nil {
		os.Exit(1)
	}
}

// httpLogger returns a request logger when verbose is enabled, nil otherwise.
func (app *App) httpLogger() *logging.HTTPLogger {
	if !app.cfg.Verbose {
		return nil
	}
	return logging.NewHTTPLogger(logging.New(logging.LevelDebug, os.Stderr))
}

// validateForCheckSSL loads config but tolerates a missing API key:
// diagnosing TLS must work before the user has a credential.
func (app *App) validateForCheckSSL() {
	if err := app.cfg.Validate(); err != nil && !errors.Is(err, config.ErrAPIKeyNotFound) {
		display.ShowError(err.Error())
		os.Exit(1)
	}
}
