package cmd

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/application"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/cli"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/config"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/encoding"
	"golang.org/x/term"
)

const (
	// noStoreAnnotation marks commands that run without opening the slot store.
	noStoreAnnotation = "vanaclone/no-store"

	// tuiAnnotation marks commands that take over the terminal; their logs
	// go to the log file instead of stderr.
	tuiAnnotation = "vanaclone/tui"
)

var (
	configPath string
	dataDir    string
	backend    string
	logLevel   string
)

// isTerminal reports whether both stdin and stdout are attached to a
// terminal. Tests replace it to force the plain output paths.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Virtual app cloning dashboard",
	Long: `VANACLONE manages cloned application profiles, each with its own
privacy toggles and a simulated device identity.

Run without a command to open the dashboard.`,
	Version:           application.Version,
	SilenceUsage:      true,
	Annotations:       map[string]string{tuiAnnotation: "true"},
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isTerminal() {
			return printProfiles(cmd.OutOrStdout(), rt.profiles.Profiles(), rt.profiles.ActiveID())
		}

		return runProgram(cli.NewApp(rt.cliDeps()))
	},
}

func Execute() {
	err := rootCmd.Execute()
	closeRuntime()

	if err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a TOML config file (default <data-dir>/config.toml)")
	flags.StringVar(&dataDir, "data-dir", "", "Directory holding the store, log and config files")
	flags.StringVar(&backend, "backend", "", "Slot store backend: bolt, sqlite or memory")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

// setup loads the configuration, applies flag overrides and opens the
// runtime for the command about to run.
func setup(cmd *cobra.Command, _ []string) error {
	path := configPath
	if path == "" && dataDir != "" {
		if candidate := filepath.Join(dataDir, config.FileName); encoding.FileExists(candidate) {
			path = candidate
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}

	if flags.Changed("backend") {
		cfg.Backend = backend
	}

	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	_, noStore := cmd.Annotations[noStoreAnnotation]

	r, err := openRuntime(cfg, runsTUI(cmd), !noStore)
	if err != nil {
		return err
	}

	rt = r

	return nil
}

// runsTUI reports whether cmd is about to start a full-screen program.
func runsTUI(cmd *cobra.Command) bool {
	if _, ok := cmd.Annotations[tuiAnnotation]; !ok {
		return false
	}

	if f := cmd.Flags().Lookup("app"); f != nil && f.Changed {
		return false
	}

	return isTerminal()
}

func runProgram(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
