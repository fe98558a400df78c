package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/forma/internal/atomicfile"
)

var newOutput string

var newCmd = &cobra.Command{
	Use:   "new <template>",
	Short: "Create a content file from a registered template",
	Long: `Find a template by name or path across the configured search paths and
generate a content file skeleton from its editable declarations.

Examples:
  forma new quote
  forma new quote -o offers/acme.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	info, err := templateRegistry().Find(args[0])
	if err != nil {
		return handleError(err, "Run 'forma templates' to list available templates")
	}

	src, fieldCount, blockCount, err := buildContentSkeleton(info, info.Path, false)
	if err != nil {
		return handleError(err, "")
	}

	outputPath := newOutput
	if outputPath == "" {
		stem := strings.TrimSuffix(filepath.Base(info.Path), filepath.Ext(info.Path))
		outputPath = stem + "-content.toml"
	}

	if dryRun {
		fmt.Print(src)
		return nil
	}

	if err := atomicfile.WriteFile(outputPath, []byte(src), 0o644); err != nil {
		return handleError(fmt.Errorf("writing content file %s: %w", outputPath, err), "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"template": info.ID,
			"output":   outputPath,
			"fields":   fieldCount,
			"blocks":   blockCount,
		}, nil)
		return nil
	}

	fmt.Printf("Generated %s from template %s with %d fields and %d blocks\n",
		outputPath, info.ID, fieldCount, blockCount)
	return nil
}

func init() {
	newCmd.Flags().StringVarP(&newOutput, "output", "o", "", "Output content file path")
	rootCmd.AddCommand(newCmd)
}
