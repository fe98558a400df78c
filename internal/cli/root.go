package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/forma/internal/cache"
	"github.com/aidanlsb/forma/internal/config"
)

var (
	// Global flags
	configFlag string
	dryRun     bool

	// Resolved per-invocation context
	paths    *config.ResolvedPaths
	cfg      config.AppConfig
	docCache *cache.DocumentCache
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "forma",
	Short: "Forma - template-based document generation",
	Long: `Forma binds structured TOML content files to Typst templates and
compiles them to PDF, SVG, or HTML via the typst binary.

Content stays in plain editable TOML; templates declare which fields and
blocks are editable. Edit values by path or title, then recompile.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that don't touch config or the cache.
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		paths, err = config.Discover(configFlag)
		if err != nil {
			return fmt.Errorf("resolving paths: %w", err)
		}

		cfg, err = config.LoadOrCreate(paths)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := paths.ApplyConfig(&cfg); err != nil {
			return fmt.Errorf("applying config paths: %w", err)
		}
		if err := paths.EnsureDirectories(); err != nil {
			return fmt.Errorf("creating directories: %w", err)
		}

		docCache, err = cache.Load(paths.CacheDir)
		if err != nil {
			return fmt.Errorf("loading document cache: %w", err)
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Do not change anything on disk")
}
