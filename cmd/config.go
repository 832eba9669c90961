package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	Long: `Print the configuration after defaults, the config file, VANACLONE_*
environment variables and flags have been applied. The API key is never
printed.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noStoreAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return rt.cfg.Write(cmd.OutOrStdout())
	},
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print where the config file is read from",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noStoreAnnotation: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		path := configPath
		if path == "" {
			path = filepath.Join(rt.cfg.DataDir, config.FileName)
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
}
