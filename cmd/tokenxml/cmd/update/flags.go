package update

import "github.com/spf13/cobra"

// Flags holds the update command flags.
type Flags struct {
	OutputDir       string
	DryRun          bool
	Query           string
	Cache           string
	NoCache         bool
	MetricsFile     string
	SkipExistingSet bool
}

func addUpdateFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}

	cmd.Flags().StringVar(&flags.OutputDir, "output-dir", "",
		"Directory for the generated files (default: configured output_dir or the working directory)")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false,
		"Run the comparison without writing any file")
	cmd.Flags().StringVar(&flags.Query, "query", "",
		"Override the Scryfall search query (default: s:t<set>)")
	cmd.Flags().StringVar(&flags.Cache, "cache", "",
		"SQLite file caching upstream pages")
	cmd.Flags().BoolVar(&flags.NoCache, "no-cache", false,
		"Disable the page cache even when one is configured")
	cmd.Flags().StringVar(&flags.MetricsFile, "metrics-file", "",
		"Write run counters in Prometheus text format to this file")
	cmd.Flags().BoolVar(&flags.SkipExistingSet, "skip-existing-set", false,
		"Do not add a set line to an entry that already lists the set")

	cmd.MarkFlagsMutuallyExclusive("cache", "no-cache")

	return flags
}
