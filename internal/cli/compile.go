package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/forma/internal/content"
	"github.com/aidanlsb/forma/internal/typst"
)

var (
	compileOutput string
	compileFormat string
	compileBrand  string
	compileHTML   bool
	compileCheck  bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <content>",
	Short: "Compile a content file to PDF, SVG, or HTML",
	Long: `Compile a content file with its template via the typst binary.

The output format comes from --format, the output file extension, or the
configured default, in that order. SVG output with multiple pages uses a
{p} pattern in the filename.

Examples:
  forma compile offer.toml
  forma compile offer.toml -o offer.svg
  forma compile offer.toml --brand acme
  forma compile offer.toml --check`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func runCompile(cmd *cobra.Command, args []string) error {
	f, err := content.Load(args[0])
	if err != nil {
		return handleError(err, "")
	}
	if err := docCache.Update(f); err != nil {
		return handleErrorMsg(ErrCacheError, fmt.Sprintf("updating cache: %v", err), "")
	}

	compiler, err := typst.New(&cfg)
	if err != nil {
		return handleError(err, "Install typst or set typst.binary in config")
	}

	brandData, brandFontPaths, err := loadBrandForCompile(compileBrand)
	if err != nil {
		return handleError(err, "Run 'forma brands list' to see available brands")
	}

	var format typst.OutputFormat
	if compileFormat != "" {
		parsed, ok := typst.ParseFormat(compileFormat)
		if !ok {
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("unknown output format: %s", compileFormat),
				"Supported formats: pdf, svg, html")
		}
		format = parsed
	}

	if compileCheck {
		opts := typst.CompileOptions{
			BrandData:        brandData,
			BrandFontPaths:   brandFontPaths,
			ExperimentalHTML: compileHTML || cfg.Experimental.HTML,
			CheckOnly:        true,
		}
		if dryRun {
			fmt.Printf("dry-run: would check %s for validity\n", args[0])
			return nil
		}
		if _, err := compiler.Compile(f, opts); err != nil {
			return compileFailure(err)
		}
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"valid":    true,
				"content":  args[0],
				"template": f.Meta.Template,
			}, nil)
			return nil
		}
		fmt.Printf("%s: valid (template: %s)\n", args[0], f.Meta.Template)
		return nil
	}

	output := compileOutput
	if output == "" {
		ext := cfg.Output.Format
		if format != "" {
			ext = string(format)
		}
		if ext == "" {
			ext = "pdf"
		}
		output = defaultOutputPath(args[0], ext)
	}

	opts := typst.CompileOptions{
		Output:           output,
		Format:           format,
		BrandData:        brandData,
		BrandFontPaths:   brandFontPaths,
		ExperimentalHTML: compileHTML || cfg.Experimental.HTML,
	}

	if dryRun {
		fmt.Printf("dry-run: would compile %s to %s\n", args[0], output)
		return nil
	}

	result, err := compiler.Compile(f, opts)
	if err != nil {
		return compileFailure(err)
	}

	if isJSONOutput() {
		outputSuccess(result, nil)
		return nil
	}
	if result.Output != "" {
		fmt.Printf("Compiled to %s\n", result.Output)
	} else {
		fmt.Printf("Compiled %d pages\n", len(result.Pages))
	}
	return nil
}

// compileFailure prints a compilation error's enhanced diagnostics to stderr
// in text mode before handing the error back.
func compileFailure(err error) error {
	if compileErr, ok := err.(*typst.CompilationError); ok && !isJSONOutput() && compileErr.Details != "" {
		fmt.Fprintln(os.Stderr, compileErr.Details)
	}
	return handleError(err, "")
}

func init() {
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "Output file path")
	compileCmd.Flags().StringVar(&compileFormat, "format", "", "Output format (pdf, svg, html)")
	compileCmd.Flags().StringVarP(&compileBrand, "brand", "b", "", "Brand ID or path (overrides config default)")
	compileCmd.Flags().BoolVar(&compileHTML, "experimental-html", false, "Enable experimental HTML output")
	compileCmd.Flags().BoolVar(&compileCheck, "check", false, "Validate template and content without keeping output")
	rootCmd.AddCommand(compileCmd)
}
