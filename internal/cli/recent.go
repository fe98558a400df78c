package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/forma/internal/ui"
)

var recentLimit int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently used documents",
	Long: `List cached documents, most recent first. The most recent entry is what
--from last resolves to.

Examples:
  forma recent
  forma recent --limit 3`,
	Args: cobra.NoArgs,
	RunE: runRecent,
}

func runRecent(cmd *cobra.Command, args []string) error {
	entries := docCache.List()
	if recentLimit > 0 && len(entries) > recentLimit {
		entries = entries[:recentLimit]
	}

	if isJSONOutput() {
		outputSuccess(entries, &Meta{Count: len(entries)})
		return nil
	}

	if len(entries) == 0 {
		fmt.Println("No recent documents")
		return nil
	}
	for _, entry := range entries {
		title := entry.Meta.Title
		if title == "" {
			title = "-"
		}
		fmt.Printf("%s %s\n", ui.Accent.Render(entry.File), title)
	}
	return nil
}

func init() {
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "l", 10, "Maximum number of entries to show")
	rootCmd.AddCommand(recentCmd)
}
