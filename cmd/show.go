package cmd

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/session"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one clone in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := resolveProfile(rt.profiles, args[0])
		if err != nil {
			return err
		}

		if showJSON {
			return printJSON(cmd.OutOrStdout(), p)
		}

		printProfile(cmd.OutOrStdout(), p)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the clone as JSON")
}

func printProfile(w io.Writer, p model.Profile) {
	sum := session.Summarize(p)

	t := newTable(w)
	t.SetTitle(p.Name)

	t.AppendRows([]table.Row{
		{"ID", p.ID},
		{"App", p.AppName},
		{"Description", p.Description},
		{"Theme", p.ThemeColor},
		{"Tags", strings.Join(p.Tags, ", ")},
		{"Created", formatTime(p.CreatedAt)},
	})
	t.AppendSeparator()

	for _, f := range model.PrivacyFlags() {
		t.AppendRow(table.Row{f.Label(), yesNo(p.PrivacyConfig.Get(f))})
	}

	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"IMEI", sum.IMEI},
		{"Device", strings.TrimSpace(sum.Manufacturer + " " + sum.Model)},
		{"Android", sum.AndroidVersion},
		{"Location", sum.Location},
	})
	t.Render()
}
