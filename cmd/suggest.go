package cmd

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/suggest"
)

var suggestJSON bool

var suggestCmd = &cobra.Command{
	Use:   "suggest <app>",
	Short: "Ask the AI for a clone configuration",
	Long: `Ask the suggestion provider for a clone configuration of an app.

Gemini is used when an API key is configured (ai.api_key, VANACLONE_AI_API_KEY,
GEMINI_API_KEY or API_KEY); otherwise an offline generator answers.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName := strings.Join(args, " ")

		s, err := rt.provider.Suggest(cmd.Context(), appName).Unwrap()
		if err != nil {
			return err
		}

		s = suggest.Normalize(s)

		if suggestJSON {
			return printJSON(cmd.OutOrStdout(), s)
		}

		printSuggestion(cmd, appName, s)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "Print the suggestion as JSON")
}

func printSuggestion(cmd *cobra.Command, appName string, s model.Suggestion) {
	t := newTable(cmd.OutOrStdout())
	t.SetTitle(appName + " via " + rt.provider.Name())

	id := s.DeviceIdentity
	t.AppendRows([]table.Row{
		{"Description", s.Description},
		{"Theme", s.ThemeColor},
		{"Tags", strings.Join(s.Tags, ", ")},
		{"Privacy", joinFlags(s.PrivacyConfig.Enabled())},
		{"IMEI", id.IMEI},
		{"Device", strings.TrimSpace(id.Manufacturer + " " + id.Model)},
		{"Android", id.AndroidVersion},
		{"Location", id.Location.City},
	})

	if s.SecurityNote != "" {
		t.AppendFooter(table.Row{"Note", s.SecurityNote})
	}

	t.Render()
}

func joinFlags(flags []model.PrivacyFlag) string {
	labels := make([]string, 0, len(flags))
	for _, f := range flags {
		labels = append(labels, f.Label())
	}

	return strings.Join(labels, ", ")
}
