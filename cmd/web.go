package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/web"
)

var (
	webHost      string
	webPort      int
	webNoBrowser bool
)

func init() {
	rootCmd.AddCommand(webCmd)

	webCmd.Flags().StringVar(&webHost, "host", "", "Address to bind (default from config, 127.0.0.1)")
	webCmd.Flags().IntVarP(&webPort, "port", "p", 0, "Port to run the web server on (default from config, 8790)")
	webCmd.Flags().BoolVar(&webNoBrowser, "no-browser", false, "Don't automatically open the browser")
}

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the local JSON API",
	Long: `Start a local web server exposing the clones, settings, catalog and AI
suggestions as a JSON API, plus /health and /metrics.

The server binds to localhost (127.0.0.1) unless configured otherwise.

Examples:
  vanaclone web                    # Start on the configured port (8790)
  vanaclone web --port 9000        # Start on custom port
  vanaclone web --no-browser       # Don't auto-open browser`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func runWeb(cmd *cobra.Command, _ []string) error {
	config := web.DefaultConfig()
	config.Host = rt.cfg.Web.Host
	config.Port = rt.cfg.Web.Port
	config.OpenBrowser = !webNoBrowser

	if cmd.Flags().Changed("host") {
		config.Host = webHost
	}

	if cmd.Flags().Changed("port") {
		config.Port = webPort
	}

	server, err := web.New(config, rt.webDeps())
	if err != nil {
		return fmt.Errorf("failed to create web server: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	out := cmd.OutOrStdout()

	go func() {
		select {
		case <-sigChan:
			_, _ = fmt.Fprintln(out, "\nShutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	_, _ = fmt.Fprintf(out, "Starting web server on http://%s:%d\n", config.Host, config.Port)
	_, _ = fmt.Fprintln(out, "Press Ctrl+C to stop")

	return server.Start(ctx)
}
