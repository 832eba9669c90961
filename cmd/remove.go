package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var removeForce bool

// confirmRemove asks before deleting. Tests replace it.
var confirmRemove = func(name string) (bool, error) {
	var ok bool

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s?", name)).
				Description("The clone and its device identity are removed for good").
				Value(&ok),
		),
	).Run()

	return ok, err
}

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm", "delete"},
	Short:   "Delete a clone",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := resolveProfile(rt.profiles, args[0])
		if err != nil {
			return err
		}

		if !removeForce {
			if !isTerminal() {
				return errors.New("refusing to delete without --force when not attached to a terminal")
			}

			ok, err := confirmRemove(p.Name)
			if err != nil {
				return err
			}

			if !ok {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		if err := rt.profiles.Remove(p.ID); err != nil {
			return fmt.Errorf("failed to delete clone: %w", err)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (%s)\n", p.Name, p.ID)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "Delete without asking")
}
