// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/pluserman/pluserman/internal/config"
)

var (
	cfg        config.Config
	configPath string // directory holding main.toml

	rootCmd = &cobra.Command{
		Use:   "pluserman",
		Short: "pluserman manages users, groups and their memberships",
		Long: `pluserman keeps users, groups and group memberships in a relational store
and serves them over a JSON REST API.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./etc/", "Directory containing "+config.MainFile)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
