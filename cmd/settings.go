package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/cli"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
)

var settingsJSON bool

var settingsCmd = &cobra.Command{
	Use:         "settings",
	Short:       "View or change global settings",
	Long:        `Open the settings screen, or print the settings when not attached to a terminal.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{tuiAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isTerminal() {
			return showSettings(cmd)
		}

		return runProgram(cli.NewSettingsApp(rt.cliDeps()))
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print global settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showSettings(cmd)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key=value>...",
	Short: "Change global settings",
	Example: `  vanaclone settings set darkMode=true
  vanaclone settings set autoSpoof=false hideRootGlobally=true`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		next := rt.settings.Settings()

		for _, arg := range args {
			name, value, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("expected key=value, got %q", arg)
			}

			on, err := strconv.ParseBool(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("invalid value for %s: %q", name, value)
			}

			next, err = next.With(strings.TrimSpace(name), on)
			if err != nil {
				return err
			}
		}

		if err := rt.settings.Save(next); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}

		return showSettings(cmd)
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	settingsCmd.PersistentFlags().BoolVar(&settingsJSON, "json", false, "Print settings as JSON")
}

func showSettings(cmd *cobra.Command) error {
	s := rt.settings.Settings()
	if settingsJSON {
		return printJSON(cmd.OutOrStdout(), s)
	}

	t := newTable(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Key", "Setting", "Value"})

	for _, name := range model.SettingKeys() {
		on, _ := s.Get(name)
		t.AppendRow(table.Row{name, model.SettingLabel(name), yesNo(on)})
	}

	t.Render()

	return nil
}
