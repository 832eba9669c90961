package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a clone",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := resolveProfile(rt.profiles, args[0])
		if err != nil {
			return err
		}

		name := strings.TrimSpace(strings.Join(args[1:], " "))
		if name == "" {
			return fmt.Errorf("name cannot be blank")
		}

		renamed, err := rt.profiles.Rename(p.ID, name)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", p.Name, renamed.Name)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
