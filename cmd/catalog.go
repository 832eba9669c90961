package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/wizard"
)

var (
	catalogSearch string
	catalogJSON   bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the applications available for cloning",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		apps := wizard.Search(catalogSearch)
		if apps == nil {
			apps = []model.CatalogApp{}
		}

		if catalogJSON {
			return printJSON(cmd.OutOrStdout(), apps)
		}

		if len(apps) == 0 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No apps match %q.\n", catalogSearch)
			return nil
		}

		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Name", "Package", "Category"})

		for _, app := range apps {
			t.AppendRow(table.Row{app.Name, app.PackageID, app.Category})
		}

		t.Render()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().StringVarP(&catalogSearch, "search", "s", "", "Filter by name or package id")
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "Print the catalog as JSON")
}
