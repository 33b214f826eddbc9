package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"venicesync/config"
	cfgsync "venicesync/config/sync"
	"venicesync/internal/providers"
	"venicesync/internal/report"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the resolved config path, API key and synced models",
	Long:  "Show where the config and API key would be taken from and which Venice models the Continue config currently holds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := providers.Default()

		pathRes := config.ResolveConfigPath(configPathFlag)
		loaded := loadConfig(pathRes.Value)
		keyRes := config.ResolveAPIKey(apiKeyFlag, loaded.Content, p)

		var titles []string
		for _, entry := range cfgsync.ProviderEntries(loaded.Content, p) {
			titles = append(titles, entry.Get("title").String())
		}

		report.NewReporter(cmd.OutOrStdout(), report.WithProviderName(p.DisplayName())).Status(report.Status{
			ConfigPath:   loaded.Path,
			PathSource:   string(pathRes.Source),
			LoadState:    loaded.Status.String(),
			APIKey:       keyRes.Value,
			KeySource:    string(keyRes.Source),
			APIBase:      p.DefaultBaseURL(),
			EntryTitles:  titles,
			TotalEntries: len(gjson.Get(loaded.Content, cfgsync.ModelsKey).Array()),
		})
		return nil
	},
}
