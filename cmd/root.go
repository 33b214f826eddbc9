package cmd

import (
	"github.com/spf13/cobra"

	"venicesync/internal/system"
)

// Version information
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo sets the version information
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Flags shared by every command
var (
	apiKeyFlag     string
	configPathFlag string
	verboseFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "venicesync",
	Short: "Sync Venice.ai code models into the Continue config",
	Long: `Fetch the Venice.ai model catalog and replace the Venice entries in the
Continue config (~/.continue/config.json) with the code-optimized models.

The API key is taken from --api-key, then VENICE_API_KEY, then an existing
Venice model in the Continue config. The config path is taken from
--config-path, then CONTINUE_CONFIG_PATH, then ~/.continue/config.json.

Writes are serialized through a config.json.lock file next to the config,
which is kept between runs.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		system.SetVerbose(verboseFlag)
	},
	RunE: runUpdate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "Venice API key (optional if VENICE_API_KEY is set)")
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config-path", "", "Path to Continue config.json (optional if CONTINUE_CONFIG_PATH is set)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
}

// Execute executes the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`venicesync {{.Version}}
Commit: ` + commit + `
Date: ` + date + `
`)

	return rootCmd.Execute()
}
