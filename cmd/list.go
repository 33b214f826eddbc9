package cmd

import (
	"github.com/spf13/cobra"

	"venicesync/config"
	"venicesync/internal/providers"
	"venicesync/internal/report"
)

var listCodeOnly bool

func init() {
	listCmd.Flags().BoolVar(&listCodeOnly, "code-only", false, "Only show code-optimized models")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List models in the Venice.ai catalog",
	Long:  "Fetch the Venice.ai model catalog and list it without touching the Continue config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := providers.Default()

		loaded := loadConfig(config.ResolveConfigPath(configPathFlag).Value)
		keyRes := config.ResolveAPIKey(apiKeyFlag, loaded.Content, p)
		if !keyRes.Found() {
			cmd.PrintErr("Error: " + config.MissingCredentialHelp(p))
			return config.ErrMissingCredential
		}

		entries, err := newCatalogClient(p).ListModels(keyRes.Value, listCodeOnly)
		if err != nil {
			return err
		}

		report.NewReporter(cmd.OutOrStdout(), report.WithProviderName(p.DisplayName())).Catalog(entries)
		return nil
	},
}
