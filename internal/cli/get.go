package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/forma/internal/content"
	"github.com/aidanlsb/forma/internal/ui"
)

var (
	getFrom   string
	getRender bool
)

var getCmd = &cobra.Command{
	Use:   "get <path-or-title> [file]",
	Short: "Get a block or field value by path or title",
	Long: `Print the value at a path, or of the block/field with a matching title.
A block table with a content key prints its content.

Examples:
  forma get quote.number offer.toml
  forma get "Introduction" offer.toml
  forma get blocks.intro --from last
  forma get blocks.intro offer.toml --render`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	file := ""
	if len(args) == 2 {
		file = args[1]
	}

	filePath, err := resolveContentFile(file, getFrom)
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

	path, err := f.ResolvePath(args[0])
	if err != nil {
		return handleError(err, "Run 'forma blocks' to list addressable paths")
	}

	value, err := f.GetContent(path)
	if err != nil {
		return handleError(err, "")
	}

	if isJSONOutput() {
		result := map[string]interface{}{
			"id":      path,
			"path":    path,
			"content": value,
		}
		if info, ok := f.BlockInfo(path); ok {
			if info.Title != "" {
				result["title"] = info.Title
			}
			if info.Format != "" {
				result["format"] = info.Format
			}
			result["type"] = string(info.Kind)
		}
		outputSuccess(result, nil)
		return nil
	}

	if getRender {
		if info, ok := f.BlockInfo(path); ok && info.Kind == content.KindBlock &&
			(info.Format == "" || info.Format == "markdown") {
			rendered, err := ui.RenderMarkdown(value, ui.TermWidth())
			if err == nil {
				fmt.Print(rendered)
				return nil
			}
			// Fall through to the raw value on renderer failure.
		}
	}

	fmt.Print(value)
	// Keep the shell prompt off the value's last line, but leave piped
	// output byte-exact.
	if ui.StdoutIsTTY() && !endsWithNewline(value) {
		fmt.Println()
	}
	return nil
}

func endsWithNewline(s string) bool {
	return len(s) > 0 && s[len(s)-1] == '\n'
}

func init() {
	getCmd.Flags().StringVar(&getFrom, "from", "", "Selector instead of a file path (e.g. last)")
	getCmd.Flags().BoolVar(&getRender, "render", false, "Render markdown block content for the terminal")
	rootCmd.AddCommand(getCmd)
}
