package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChrisBushman/tiger-claude/internal/tlscheck"
)

// NewCheckSSLCmd creates the check-ssl subcommand. It probes the API
// endpoint's TLS setup without sending any request, which is the first
// thing to try when requests fail on machines with stale root stores.
func NewCheckSSLCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check-ssl",
		Short: "Diagnose TLS connectivity to the API endpoint",
		Long: `Perform a TLS handshake with the API endpoint and report the result.

On success, prints the negotiated TLS version, cipher suite, and server
certificate details. On failure, explains what went wrong and how to fix
it (for example, pointing SSL_CERT_FILE at a current CA bundle).

No API key is required and no request is sent.`,
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(app.runCheckSSL())
		},
	}
}

func (app *App) runCheckSSL() int {
	app.validateForCheckSSL()

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.RequestTimeout)
	defer cancel()

	report := tlscheck.Check(ctx, app.cfg)
	report.Print(os.Stdout)

	if report.OK() {
		return 0
	}
	return 1
}
