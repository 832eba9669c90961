package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/cli"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/suggest"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/wizard"
)

var (
	createApp       string
	createName      string
	createManual    bool
	createNoSuggest bool
	createPrivacy   []string
	createJSON      bool
)

var createCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"clone", "new"},
	Short:   "Clone an application",
	Long: `Clone an application into a new profile.

Without --app the interactive wizard scans installed applications and lets
you pick one. With --app the profile is created directly: the app is looked
up in the catalog (or taken as-is with --manual), the AI suggestion fills in
the identity unless --no-suggest is given, and --privacy overrides single
toggles.`,
	Example: `  vanaclone create
  vanaclone create --app WhatsApp --name "Work WhatsApp"
  vanaclone create --app "My Bank" --manual --privacy hide-root=false`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{tuiAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("app") {
			if !isTerminal() {
				return errors.New("--app is required when not attached to a terminal")
			}

			return runWizard(cmd.OutOrStdout())
		}

		return createDirect(cmd)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)

	flags := createCmd.Flags()
	flags.StringVar(&createApp, "app", "", "Application to clone (catalog name or package id)")
	flags.StringVar(&createName, "name", "", "Clone name (default \"<app> (Clone)\")")
	flags.BoolVar(&createManual, "manual", false, "Use --app as typed instead of looking it up in the catalog")
	flags.BoolVar(&createNoSuggest, "no-suggest", false, "Skip the AI suggestion")
	flags.StringArrayVar(&createPrivacy, "privacy", nil, "Privacy toggle as flag[=true|false], repeatable")
	flags.BoolVar(&createJSON, "json", false, "Print the created clone as JSON")
}

func runWizard(w io.Writer) error {
	app := cli.NewWizardApp(rt.cliDeps())
	if err := runProgram(app); err != nil {
		return err
	}

	created := app.Created()
	if len(created) == 0 {
		_, _ = fmt.Fprintln(w, "Cancelled.")
		return nil
	}

	for _, p := range created {
		_, _ = fmt.Fprintf(w, "Created %s (%s)\n", p.Name, p.ID)
	}

	return nil
}

func createDirect(cmd *cobra.Command) error {
	privacy, err := parsePrivacy(createPrivacy)
	if err != nil {
		return err
	}

	appName := createApp
	if !createManual {
		entry, ok := wizard.Lookup(appName)
		if !ok {
			return fmt.Errorf("%q is not in the catalog; use --manual to clone it anyway", appName)
		}

		appName = entry.Name
	}

	in := wizard.Input{
		AppName: appName,
		Name:    createName,
		Manual:  createManual,
		Suggest: !createNoSuggest,
		Privacy: privacy,
	}

	out, err := wizard.Run(cmd.Context(), rt.provider, in, time.Now(), wizard.WithLogger(rt.logger))
	if err != nil {
		return err
	}

	if out.SuggestionErr != nil {
		hint := ""
		if suggest.IsTransient(out.SuggestionErr) {
			hint = " (temporary, try again later)"
		}

		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "AI suggestion unavailable, using defaults%s: %v\n", hint, out.SuggestionErr)
	}

	if err := rt.profiles.Add(out.Profile); err != nil {
		return fmt.Errorf("failed to save clone: %w", err)
	}

	if createJSON {
		return printJSON(cmd.OutOrStdout(), out.Profile)
	}

	printProfile(cmd.OutOrStdout(), out.Profile)

	return nil
}

// parsePrivacy reads "flag" or "flag=bool" entries.
func parsePrivacy(entries []string) (map[model.PrivacyFlag]bool, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	out := make(map[model.PrivacyFlag]bool, len(entries))

	for _, entry := range entries {
		name, value, hasValue := strings.Cut(entry, "=")

		flag, err := model.ParsePrivacyFlag(name)
		if err != nil {
			return nil, err
		}

		on := true
		if hasValue {
			on, err = strconv.ParseBool(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid value for privacy flag %s: %q", flag, value)
			}
		}

		out[flag] = on
	}

	return out, nil
}
