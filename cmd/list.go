package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/service"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List cloned applications",
	Long:    `List every clone in creation order. The active clone is marked with *.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles := rt.profiles.Profiles()
		if listJSON {
			return printJSON(cmd.OutOrStdout(), profiles)
		}

		return printProfiles(cmd.OutOrStdout(), profiles, rt.profiles.ActiveID())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print the collection as JSON")
}

// resolveProfile finds a clone by id or by a unique id prefix, as printed
// by list.
func resolveProfile(ps *service.ProfileStore, ref string) (model.Profile, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Profile{}, fmt.Errorf("clone id is required")
	}

	if p, err := ps.Get(ref); err == nil {
		return p, nil
	}

	var matches []model.Profile

	for _, p := range ps.Profiles() {
		if strings.HasPrefix(p.ID, ref) {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return model.Profile{}, fmt.Errorf("%w: %s", service.ErrProfileNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return model.Profile{}, fmt.Errorf("id prefix %q matches %d clones", ref, len(matches))
	}
}
