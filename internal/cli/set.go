package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/forma/internal/atomicfile"
	"github.com/aidanlsb/forma/internal/content"
	"github.com/aidanlsb/forma/internal/tomledit"
)

var (
	setFrom     string
	setFromFile string
	setBatch    bool
)

var setCmd = &cobra.Command{
	Use:   "set <path-or-title> [file] [value]",
	Short: "Set a block or field value",
	Long: `Set the value at a path, or of the block/field with a matching title.
Setting a block that has a content key writes the nested content field;
comments and formatting of untouched lines are preserved.

Values are always written as TOML strings. Use '-' to read the value from
stdin, --from-file to read it from a file, or --batch to apply a JSON
object of path/value pairs from stdin.

Examples:
  forma set quote.number offer.toml 2025-002
  forma set "Introduction" offer.toml "New intro text"
  forma set blocks.intro --from last -
  echo '{"quote.number": "2025-003"}' | forma set --batch offer.toml`,
	Args: cobra.MaximumNArgs(3),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	if setBatch {
		file := ""
		if len(args) > 0 {
			file = args[0]
		}
		filePath, err := resolveContentFile(file, setFrom)
		if err != nil {
			return handleError(err, "Pass a content file or --from last")
		}
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			return handleErrorMsg(ErrIOError, fmt.Sprintf("reading stdin: %v", err), "")
		}
		return runBatchSet(filePath, input)
	}

	if len(args) == 0 {
		return handleErrorMsg(ErrInvalidInput, "no path or title given", "Usage: forma set <path-or-title> [file] [value]")
	}
	pathOrTitle := args[0]

	var file, value string
	var hasValue bool
	rest := args[1:]
	if setFrom != "" {
		if len(rest) > 0 {
			value, hasValue = rest[0], true
		}
	} else {
		if len(rest) > 0 {
			file = rest[0]
		}
		if len(rest) > 1 {
			value, hasValue = rest[1], true
		}
	}

	filePath, err := resolveContentFile(file, setFrom)
	if err != nil {
		return handleError(err, "Pass a content file or --from last")
	}

	switch {
	case setFromFile != "":
		raw, err := os.ReadFile(setFromFile)
		if err != nil {
			return handleErrorMsg(ErrIOError, fmt.Sprintf("reading value file: %v", err), "")
		}
		value = string(raw)
	case hasValue && value == "-":
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return handleErrorMsg(ErrIOError, fmt.Sprintf("reading stdin: %v", err), "")
		}
		value = string(raw)
	case !hasValue:
		return handleErrorMsg(ErrInvalidInput, "no value provided", "Pass a value, '-' for stdin, or --from-file")
	}

	src, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return handleError(&content.FileNotFoundError{Path: filePath}, "")
		}
		return handleErrorMsg(ErrIOError, fmt.Sprintf("reading %s: %v", filePath, err), "")
	}

	f, err := content.Parse(filePath, string(src))
	if err != nil {
		return handleError(err, "")
	}

	path, err := f.ResolvePath(pathOrTitle)
	if err != nil {
		return handleError(err, "Run 'forma blocks' to list addressable paths")
	}

	doc := tomledit.Parse(string(src))
	if err := doc.Set(path, value); err != nil {
		return handleError(err, "")
	}

	if dryRun {
		fmt.Printf("dry-run: would set %s in %s\n", path, filePath)
		return nil
	}

	if err := writeAndRefresh(filePath, doc); err != nil {
		return err
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"path": path,
			"file": filePath,
		}, nil)
		return nil
	}
	fmt.Printf("Set %s\n", path)
	return nil
}

func runBatchSet(filePath string, input []byte) error {
	var updates map[string]interface{}
	if err := json.Unmarshal(input, &updates); err != nil {
		return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("parsing batch JSON: %v", err), "Pipe a flat JSON object of path/value pairs")
	}

	values := make(map[string]string, len(updates))
	for path, v := range updates {
		switch v := v.(type) {
		case string:
			values[path] = v
		case map[string]interface{}, []interface{}:
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("%s: nested values are not supported in batch mode", path),
				"Set nested paths individually with dotted keys")
		default:
			// Numbers, booleans and null keep their JSON text form.
			text, err := json.Marshal(v)
			if err != nil {
				return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("%s: %v", path, err), "")
			}
			values[path] = string(text)
		}
	}

	src, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return handleError(&content.FileNotFoundError{Path: filePath}, "")
		}
		return handleErrorMsg(ErrIOError, fmt.Sprintf("reading %s: %v", filePath, err), "")
	}

	doc := tomledit.Parse(string(src))
	if err := doc.SetAll(values); err != nil {
		return handleError(err, "")
	}

	if dryRun {
		fmt.Printf("dry-run: would update %d paths in %s\n", len(values), filePath)
		return nil
	}

	if err := writeAndRefresh(filePath, doc); err != nil {
		return err
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"updated": len(values),
			"file":    filePath,
		}, nil)
		return nil
	}
	fmt.Printf("Updated %d paths\n", len(values))
	return nil
}

// writeAndRefresh writes the edited document atomically, then reloads the
// file so the cache snapshot reflects the change.
func writeAndRefresh(filePath string, doc *tomledit.Document) error {
	if err := atomicfile.WriteFile(filePath, []byte(doc.String()), 0o644); err != nil {
		return handleErrorMsg(ErrIOError, fmt.Sprintf("writing %s: %v", filePath, err), "")
	}
	updated, err := content.Load(filePath)
	if err != nil {
		return handleError(err, "")
	}
	if err := docCache.Update(updated); err != nil {
		return handleErrorMsg(ErrCacheError, fmt.Sprintf("updating cache: %v", err), "")
	}
	return nil
}

func init() {
	setCmd.Flags().StringVar(&setFrom, "from", "", "Selector instead of a file path (e.g. last)")
	setCmd.Flags().StringVar(&setFromFile, "from-file", "", "Read the value from a file")
	setCmd.Flags().BoolVar(&setBatch, "batch", false, "Apply a JSON object of path/value pairs from stdin")
	rootCmd.AddCommand(setCmd)
}
