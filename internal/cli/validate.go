package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/forma/internal/content"
	"github.com/aidanlsb/forma/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate <content>",
	Short: "Validate a content file",
	Long: `Check that a content file parses, has the required meta section, and
that every block format is one of markdown, typst, plain.

Examples:
  forma validate offer.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	f, err := content.Load(args[0])
	if err != nil {
		return handleError(err, "")
	}

	var problems []string
	for _, block := range f.ListBlocks() {
		if block.Format != "" && !content.ValidBlockFormat(block.Format) {
			problems = append(problems,
				fmt.Sprintf("%s.format: invalid value '%s'", block.Path, block.Format))
		}
	}

	if len(problems) == 0 {
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"valid": true,
				"file":  args[0],
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("%s: valid", args[0]))
		return nil
	}

	if isJSONOutput() {
		outputError(ErrValidationFailed,
			fmt.Sprintf("%d validation errors", len(problems)),
			map[string]interface{}{"errors": problems}, "")
		return nil
	}

	fmt.Fprintln(os.Stderr, ui.Errorf("%s: validation failed", args[0]))
	for _, problem := range problems {
		fmt.Fprintf(os.Stderr, "  - %s\n", problem)
	}
	return fmt.Errorf("%d validation errors", len(problems))
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
