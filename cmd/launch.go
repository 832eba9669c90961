package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/cli"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/session"
)

var launchCmd = &cobra.Command{
	Use:         "launch <id>",
	Aliases:     []string{"run"},
	Short:       "Launch a clone in a simulated session",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{tuiAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := resolveProfile(rt.profiles, args[0])
		if err != nil {
			return err
		}

		p, err = rt.profiles.Select(p.ID)
		if err != nil {
			return err
		}
		defer rt.profiles.ClearActive()

		if isTerminal() {
			return runProgram(cli.NewSessionApp(rt.cliDeps(), p))
		}

		rt.metrics.SessionLaunched()
		rt.logger.Info("launching clone", "id", p.ID, "app", p.AppName)
		printSession(cmd.OutOrStdout(), session.Summarize(p))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(launchCmd)
}

func printSession(w io.Writer, sum session.Summary) {
	t := newTable(w)
	t.SetTitle(fmt.Sprintf("[%s] %s  %s", sum.Initial, sum.AppName, sum.Version))

	t.AppendRows([]table.Row{
		{"Spoofed IMEI", sum.IMEI},
		{"Virtual Location", sum.Location},
		{"Device", strings.TrimSpace(sum.Manufacturer + " " + sum.Model)},
		{"Android", sum.AndroidVersion},
		{"Device Status", sum.DeviceStatus},
		{"Root Access", sum.RootAccess},
		{"Android ID", sum.AndroidID},
	})

	if len(sum.Privacy) > 0 {
		t.AppendFooter(table.Row{"Privacy", strings.Join(sum.Privacy, ", ")})
	}

	t.Render()

	_, _ = fmt.Fprintln(w, sum.RunningIn)
	_, _ = fmt.Fprintln(w, sum.Belief)
}
