package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/forma/internal/content"
	"github.com/aidanlsb/forma/internal/typst"
	"github.com/aidanlsb/forma/internal/watcher"
)

var (
	watchOutput   string
	watchFormat   string
	watchBrand    string
	watchHTML     bool
	watchDebounce int
	watchOpen     bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <content>",
	Short: "Watch a content file and recompile on change",
	Long: `Compile a content file, then keep watching it and recompile after each
change. A burst of rapid saves collapses into a single recompilation.

Examples:
  forma watch offer.toml
  forma watch offer.toml --open
  forma watch offer.toml --debounce 500`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	contentPath := args[0]

	compiler, err := typst.New(&cfg)
	if err != nil {
		return handleError(err, "Install typst or set typst.binary in config")
	}

	brandData, brandFontPaths, err := loadBrandForCompile(watchBrand)
	if err != nil {
		return handleError(err, "Run 'forma brands list' to see available brands")
	}

	var format typst.OutputFormat
	if watchFormat != "" {
		parsed, ok := typst.ParseFormat(watchFormat)
		if !ok {
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("unknown output format: %s", watchFormat),
				"Supported formats: pdf, svg, html")
		}
		format = parsed
	}

	output := watchOutput
	if output == "" {
		ext := cfg.Output.Format
		if format != "" {
			ext = string(format)
		}
		if ext == "" {
			ext = "pdf"
		}
		output = defaultOutputPath(contentPath, ext)
	}

	opts := typst.CompileOptions{
		Output:           output,
		Format:           format,
		BrandData:        brandData,
		BrandFontPaths:   brandFontPaths,
		ExperimentalHTML: watchHTML || cfg.Experimental.HTML,
	}

	recompile := func(path string) error {
		f, err := content.Load(path)
		if err != nil {
			return fmt.Errorf("loading content: %w", err)
		}
		if _, err := compiler.Compile(f, opts); err != nil {
			return err
		}
		fmt.Printf("Recompiled to %s\n", output)
		return nil
	}

	// Initial compile. Failures are reported but don't stop the watch: the
	// next save gets another chance.
	if f, err := content.Load(contentPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading content: %v\n", err)
	} else if _, err := compiler.Compile(f, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Compilation error: %v\n", err)
	} else {
		fmt.Printf("Compiled to %s\n", output)
		if watchOpen {
			if err := openFile(output); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not open file: %v\n", err)
			} else {
				fmt.Printf("Opened %s in default viewer\n", output)
			}
		}
	}

	debounce := time.Duration(watchDebounce) * time.Millisecond
	if watchDebounce == 0 {
		debounce = time.Duration(cfg.Output.WatchDebounceMs) * time.Millisecond
	}

	w, err := watcher.New(watcher.Config{
		FilePath: contentPath,
		Debounce: debounce,
		OnChange: recompile,
		OnError: func(err error) {
			fmt.Fprintf(os.Stderr, "Compilation error: %v\n", err)
		},
	})
	if err != nil {
		return handleErrorMsg(ErrWatchError, fmt.Sprintf("setting up watcher: %v", err), "")
	}

	fmt.Printf("Watching %s for changes...\n", contentPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return handleErrorMsg(ErrWatchError, err.Error(), "")
	}
	return nil
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "Output file path")
	watchCmd.Flags().StringVar(&watchFormat, "format", "", "Output format (pdf, svg, html)")
	watchCmd.Flags().StringVarP(&watchBrand, "brand", "b", "", "Brand ID or path (overrides config default)")
	watchCmd.Flags().BoolVar(&watchHTML, "experimental-html", false, "Enable experimental HTML output")
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "Debounce time in milliseconds")
	watchCmd.Flags().BoolVar(&watchOpen, "open", false, "Open output in default viewer after initial compile")
	rootCmd.AddCommand(watchCmd)
}
