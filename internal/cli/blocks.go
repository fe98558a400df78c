package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/forma/internal/content"
	"github.com/aidanlsb/forma/internal/ui"
)

var blocksFrom string

var blocksCmd = &cobra.Command{
	Use:   "blocks [file]",
	Short: "List editable blocks and fields",
	Long: `List every addressable block and field in a content file, sorted by
path.

Examples:
  forma blocks offer.toml
  forma blocks --from last`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBlocks,
}

func runBlocks(cmd *cobra.Command, args []string) error {
	file := ""
	if len(args) == 1 {
		file = args[0]
	}

	filePath, err := resolveContentFile(file, blocksFrom)
	if err != nil {
		return handleError(err, "Pass a content file or --from last")
	}

	f, err := content.Load(filePath)
	if err != nil {
		return handleError(err, "")
	}
	if err := docCache.Update(f); err != nil {
		return handleErrorMsg(ErrCacheError, fmt.Sprintf("updating cache: %v", err), "")
	}

	blocks := f.ListBlocks()

	if isJSONOutput() {
		outputSuccess(blocks, &Meta{Count: len(blocks)})
		return nil
	}

	for _, block := range blocks {
		title := block.Title
		if title == "" {
			title = "-"
		}
		fmt.Printf("%s %s %s\n",
			ui.Accent.Render(block.Path),
			ui.Muted.Render("("+string(block.Kind)+")"),
			title)
	}
	return nil
}

func init() {
	blocksCmd.Flags().StringVar(&blocksFrom, "from", "", "Selector instead of a file path (e.g. last)")
	rootCmd.AddCommand(blocksCmd)
}
