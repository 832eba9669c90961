package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/application"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/auth"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/monitor"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the dashboard status line and storage health",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		health := "ok"
		if err := monitor.HealthCheck(rt.store); err != nil {
			health = err.Error()
		}

		active := "-"
		if p, ok := rt.profiles.Active(); ok {
			active = fmt.Sprintf("%s (%s)", p.Name, shortID(p.ID))
		}

		key := "none (offline suggestions)"
		if rt.cfg.AI.APIKey != "" {
			key = fmt.Sprintf("%s from %s", auth.Mask(rt.cfg.AI.APIKey), rt.cfg.AI.KeySource)
		}

		t := newTable(cmd.OutOrStdout())
		t.SetTitle(fmt.Sprintf("%s v%s", application.DisplayName, application.Version))
		t.AppendRows([]table.Row{
			{"System Status", "UNDETECTED"},
			{"Root", "HIDDEN"},
			{"Clones", rt.profiles.Len()},
			{"Active", active},
			{"Suggestions", rt.provider.Name()},
			{"API Key", key},
			{"Store", fmt.Sprintf("%s (%s)", rt.cfg.StoreBackend(), rt.cfg.DataDir)},
			{"Health", health},
		})
		t.Render()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
