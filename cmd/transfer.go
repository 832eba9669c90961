package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/encoding"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
)

var importReplace bool

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write all clones to a JSON file",
	Long: `Write the clone collection as JSON, in the same shape the store keeps it.
Without a file, or with "-", the JSON goes to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles := rt.profiles.Profiles()

		if len(args) == 0 || args[0] == "-" {
			return printJSON(cmd.OutOrStdout(), profiles)
		}

		if err := encoding.SaveJSON(args[0], profiles); err != nil {
			return fmt.Errorf("failed to export clones: %w", err)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d clone(s) to %s\n", len(profiles), args[0])

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load clones from a JSON file",
	Long: `Load clones from a JSON file written by export.

Clones whose id already exists are skipped unless --replace is given, in
which case the file becomes the whole collection.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := encoding.LoadJSON[[]model.Profile](args[0])
		if err != nil {
			return err
		}

		if loaded == nil {
			return fmt.Errorf("file not found: %s", args[0])
		}

		incoming := *loaded
		for i, p := range incoming {
			if p.ID == "" {
				return fmt.Errorf("clone #%d has no id", i+1)
			}
		}

		next, skipped := mergeProfiles(rt.profiles.Profiles(), incoming, importReplace)

		if err := rt.profiles.SaveAll(next); err != nil {
			return fmt.Errorf("failed to import clones: %w", err)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d clone(s), skipped %d\n", len(incoming)-skipped, skipped)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "Replace the whole collection with the file")
}

// mergeProfiles appends incoming clones to current, skipping ids already
// present. With replace the incoming list is returned as-is.
func mergeProfiles(current, incoming []model.Profile, replace bool) ([]model.Profile, int) {
	if replace {
		return incoming, 0
	}

	seen := make(map[string]bool, len(current))
	for _, p := range current {
		seen[p.ID] = true
	}

	next := current
	skipped := 0

	for _, p := range incoming {
		if seen[p.ID] {
			skipped++
			continue
		}

		seen[p.ID] = true
		next = append(next, p)
	}

	return next, skipped
}
