package cli

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/forma/internal/atomicfile"
)

//go:embed example_template.typ
var exampleTemplate string

//go:embed example_content.toml
var exampleContent string

var (
	exampleTemplatePath string
	exampleContentPath  string
	exampleForce        bool
)

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Generate a self-contained example template and content pair",
	Long: `Write a ready-to-compile example template and matching content file to
the current directory. Useful as a starting point:

  forma example
  forma compile example-content.toml`,
	Args: cobra.NoArgs,
	RunE: runExample,
}

func runExample(cmd *cobra.Command, args []string) error {
	if !exampleForce {
		for _, path := range []string{exampleTemplatePath, exampleContentPath} {
			if _, err := os.Stat(path); err == nil {
				return handleErrorMsg(ErrFileExists,
					fmt.Sprintf("%s already exists", path),
					"Use --force to overwrite")
			}
		}
	}

	if dryRun {
		fmt.Printf("dry-run: would write %s and %s\n", exampleTemplatePath, exampleContentPath)
		return nil
	}

	if err := atomicfile.WriteFile(exampleTemplatePath, []byte(exampleTemplate), 0o644); err != nil {
		return handleError(fmt.Errorf("writing template %s: %w", exampleTemplatePath, err), "")
	}
	if err := atomicfile.WriteFile(exampleContentPath, []byte(exampleContent), 0o644); err != nil {
		return handleError(fmt.Errorf("writing content %s: %w", exampleContentPath, err), "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"template": exampleTemplatePath,
			"content":  exampleContentPath,
		}, nil)
		return nil
	}

	fmt.Printf("Wrote example template to %s and content to %s\n", exampleTemplatePath, exampleContentPath)
	return nil
}

func init() {
	exampleCmd.Flags().StringVar(&exampleTemplatePath, "template", "example-template.typ", "Output template path")
	exampleCmd.Flags().StringVar(&exampleContentPath, "content", "example-content.toml", "Output content path")
	exampleCmd.Flags().BoolVar(&exampleForce, "force", false, "Overwrite existing files")
	rootCmd.AddCommand(exampleCmd)
}
