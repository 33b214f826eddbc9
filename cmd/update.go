package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"venicesync/config"
	"venicesync/config/models"
	cfgsync "venicesync/config/sync"
	"venicesync/internal/catalog"
	"venicesync/internal/providers"
	"venicesync/internal/report"
	"venicesync/internal/system"
)

// ErrNoModels is returned when the catalog yields nothing to add
var ErrNoModels = errors.New("no models available")

var (
	dryRun       bool
	allModels    bool
	createBackup bool
)

func init() {
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print changes without modifying the config file")
	rootCmd.Flags().BoolVar(&allModels, "all-models", false, "Add every catalog model, not only code-optimized ones")
	rootCmd.Flags().BoolVar(&createBackup, "backup", false, "Back up the existing config before writing")
}

// newCatalogClient is replaced in tests to point at a local server
var newCatalogClient = func(p providers.Provider) *catalog.Client {
	return catalog.NewClient(p, catalog.WithUserAgent("venicesync/"+version))
}

// updateOptions carries the resolved command line for one update run
type updateOptions struct {
	APIKey     string
	ConfigPath string
	DryRun     bool
	AllModels  bool
	Backup     bool
}

func runUpdate(cmd *cobra.Command, args []string) error {
	return executeUpdate(cmd.OutOrStdout(), cmd.ErrOrStderr(), updateOptions{
		APIKey:     apiKeyFlag,
		ConfigPath: configPathFlag,
		DryRun:     dryRun,
		AllModels:  allModels,
		Backup:     createBackup,
	})
}

// executeUpdate runs resolve → load → fetch → merge → write/report once.
func executeUpdate(out, errOut io.Writer, opts updateOptions) error {
	p := providers.Default()
	reporter := report.NewReporter(out, report.WithProviderName(p.DisplayName()))

	pathRes := config.ResolveConfigPath(opts.ConfigPath)
	reporter.ConfigLocation(pathRes.Value)
	system.Logger.Debug("resolved config path", "path", pathRes.Value, "source", pathRes.Source)

	loaded := loadConfig(pathRes.Value)

	keyRes := config.ResolveAPIKey(opts.APIKey, loaded.Content, p)
	if !keyRes.Found() {
		fmt.Fprint(errOut, "Error: "+config.MissingCredentialHelp(p))
		return config.ErrMissingCredential
	}
	system.Logger.Debug("resolved API key", "source", keyRes.Source)

	entries, err := fetchCatalog(p, keyRes.Value, !opts.AllModels)
	if err != nil {
		return fmt.Errorf("failed to update config with %s models: %w", p.DisplayName(), err)
	}

	modelEntries := models.NewModelEntries(p, catalog.IDs(entries), keyRes.Value)
	result, err := cfgsync.Apply(loaded.Path, loaded.Content, modelEntries, p, cfgsync.SyncOptions{
		DryRun:       opts.DryRun,
		CreateBackup: opts.Backup,
	})
	if err != nil {
		return fmt.Errorf("failed to update config with %s models: %w", p.DisplayName(), err)
	}

	if opts.DryRun {
		reporter.DryRun(result.Added, result.Content)
		return nil
	}
	reporter.Applied(result.Path, result.Added, result.Removed)
	return nil
}

// loadConfig reads the config, downgrading unreadable files to an empty document
func loadConfig(path string) config.LoadResult {
	loaded := config.LoadDocument(path)
	if loaded.Status == config.LoadUnreadable {
		system.Logger.Warn("Could not load config file, continuing with an empty config",
			"path", loaded.Path, "err", loaded.Err)
	}
	return loaded
}

// fetchCatalog lists the provider's models; an empty result is an error.
// Fetch failures carry the category hint.
func fetchCatalog(p providers.Provider, apiKey string, filterForCode bool) ([]catalog.Entry, error) {
	entries, err := newCatalogClient(p).ListModels(apiKey, filterForCode)
	if err != nil {
		var fetchErr *catalog.FetchError
		if errors.As(err, &fetchErr) {
			system.Logger.Debug("catalog request failed", "category", fetchErr.Category, "status", fetchErr.StatusCode)
			return nil, fmt.Errorf("%w. %s", err, fetchErr.UserMessage())
		}
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoModels
	}
	return entries, nil
}
