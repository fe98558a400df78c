// Package typst invokes the external Typst compiler.
//
// Content data travels to the template as one JSON object passed via
// --input data=...; markdown blocks are pre-converted to Typst markup and
// brand data is merged under a "brand" key before serialization.
package typst

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aidanlsb/forma/internal/config"
	"github.com/aidanlsb/forma/internal/content"
	"github.com/aidanlsb/forma/internal/typmark"
)

// OutputFormat is a supported compile target.
type OutputFormat string

const (
	FormatPDF  OutputFormat = "pdf"
	FormatSVG  OutputFormat = "svg"
	FormatHTML OutputFormat = "html"
)

// ParseFormat maps a user string to a format.
func ParseFormat(s string) (OutputFormat, bool) {
	switch strings.ToLower(s) {
	case "pdf":
		return FormatPDF, true
	case "svg":
		return FormatSVG, true
	case "html":
		return FormatHTML, true
	}
	return "", false
}

// FormatFromPath infers the format from an output file extension.
func FormatFromPath(path string) (OutputFormat, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return ParseFormat(ext)
}

// CompileOptions parameterize one compile.
type CompileOptions struct {
	// Output is the target file; SVG output may use a {p} page pattern.
	Output string
	// Format overrides extension inference.
	Format OutputFormat
	// BrandData is merged into the data object under "brand".
	BrandData map[string]any
	// BrandFontPaths are extra font directories from the brand.
	BrandFontPaths []string
	// ExperimentalHTML gates the html format.
	ExperimentalHTML bool
	// CheckOnly validates without keeping any output.
	CheckOnly bool
}

// PageInfo is one rendered SVG page.
type PageInfo struct {
	Page int    `json:"page"`
	File string `json:"file"`
}

// CompileResult is a successful compile outcome.
type CompileResult struct {
	Status string     `json:"status"`
	Format string     `json:"format"`
	Output string     `json:"output,omitempty"`
	Pages  []PageInfo `json:"pages,omitempty"`
}

// CompilationError carries the primary compiler message plus enhanced
// diagnostics assembled from known stderr patterns.
type CompilationError struct {
	Message string
	Details string
}

func (e *CompilationError) Error() string {
	return e.Message
}

// Compiler wraps one typst binary with its font and package paths.
type Compiler struct {
	binary      string
	fontPaths   []string
	packagePath string
}

// New builds a compiler from configuration. The binary comes from config or
// PATH lookup; configured font paths are expanded and filtered to those that
// exist; the bundled helper package is materialized for --package-path.
func New(cfg *config.AppConfig) (*Compiler, error) {
	binary := cfg.Typst.Binary
	if binary == "" {
		found, err := exec.LookPath("typst")
		if err != nil {
			return nil, fmt.Errorf("typst binary not found in PATH; install typst or set typst.binary in config")
		}
		binary = found
	}

	var fontPaths []string
	for _, p := range cfg.Typst.FontPaths {
		expanded, err := config.ExpandPath(p)
		if err != nil {
			continue
		}
		if st, err := os.Stat(expanded); err == nil && st.IsDir() {
			fontPaths = append(fontPaths, expanded)
		}
	}

	packagePath, err := preparePackage()
	if err != nil {
		return nil, err
	}

	return &Compiler{
		binary:      binary,
		fontPaths:   fontPaths,
		packagePath: packagePath,
	}, nil
}

// Compile runs the typst binary against a content file's template.
func (c *Compiler) Compile(f *content.File, opts CompileOptions) (*CompileResult, error) {
	output := opts.Output
	if opts.CheckOnly {
		tmp, err := os.CreateTemp("", "forma-check-*.pdf")
		if err != nil {
			return nil, fmt.Errorf("creating temp file: %w", err)
		}
		output = tmp.Name()
		tmp.Close()
		defer os.Remove(output)
	}

	format := opts.Format
	if format == "" {
		if inferred, ok := FormatFromPath(output); ok {
			format = inferred
		} else {
			format = FormatPDF
		}
	}
	if format == FormatHTML && !opts.ExperimentalHTML && !opts.CheckOnly {
		return nil, fmt.Errorf("HTML output requires experimental.html to be enabled")
	}

	data, err := PrepareData(f, opts.BrandData)
	if err != nil {
		return nil, err
	}
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding template data: %w", err)
	}

	args := []string{"compile", "--format", string(format), "--input", "data=" + string(dataJSON)}
	for _, p := range c.fontPaths {
		args = append(args, "--font-path", p)
	}
	for _, p := range opts.BrandFontPaths {
		args = append(args, "--font-path", p)
	}
	args = append(args, "--package-path", c.packagePath)
	// Root at / so absolute asset paths in brand data resolve.
	args = append(args, "--root", "/")
	args = append(args, f.TemplatePath(), output)

	cmd := exec.Command(c.binary, args...)
	cmd.Env = append(os.Environ(), "TYPST_PACKAGE_PATH="+c.packagePathEnv())

	out, err := cmd.CombinedOutput()
	stderr := string(out)

	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return nil, &CompilationError{Message: fmt.Sprintf("failed to execute typst: %v", err)}
		}
		if hasErrorLine(stderr) {
			summary := firstNonEmptyLine(stderr)
			if summary == "" {
				summary = "Typst compilation failed"
			}
			return nil, &CompilationError{
				Message: "Typst compilation failed: " + summary,
				Details: enhanceErrorMessage(stderr),
			}
		}
	}
	if warningsOnly(stderr) && strings.TrimSpace(stderr) != "" {
		fmt.Fprintln(os.Stderr, stderr)
	}

	if opts.CheckOnly {
		return &CompileResult{Status: "ok", Format: "check"}, nil
	}

	switch format {
	case FormatSVG:
		pages, err := collectSVGPages(opts.Output)
		if err != nil {
			return nil, err
		}
		return &CompileResult{Status: "ok", Format: string(format), Pages: pages}, nil
	default:
		return &CompileResult{Status: "ok", Format: string(format), Output: opts.Output}, nil
	}
}

func (c *Compiler) packagePathEnv() string {
	if existing := os.Getenv("TYPST_PACKAGE_PATH"); existing != "" {
		return c.packagePath + string(os.PathListSeparator) + existing
	}
	return c.packagePath
}

// PrepareData builds the JSON data object for a compile: the content tree
// with markdown block content pre-converted, plus the brand sub-object.
func PrepareData(f *content.File, brandData map[string]any) (map[string]any, error) {
	root, ok := f.Root().Raw().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("content root is not a table")
	}
	data := deepCopy(root)

	if brandData != nil {
		data["brand"] = brandData
	}

	blocks, ok := data["blocks"].(map[string]any)
	if !ok {
		return data, nil
	}
	for _, raw := range blocks {
		block, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		format, _ := block["format"].(string)
		if format != "" && format != "markdown" {
			continue
		}
		if body, ok := block["content"].(string); ok {
			block["content"] = typmark.Convert(body)
		}
	}
	return data, nil
}

// deepCopy clones the tree so conversion does not mutate the parsed file.
func deepCopy(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case map[string]any:
			out[k] = deepCopy(val)
		case []any:
			items := make([]any, len(val))
			for i, item := range val {
				if sub, ok := item.(map[string]any); ok {
					items[i] = deepCopy(sub)
				} else {
					items[i] = item
				}
			}
			out[k] = items
		case time.Time:
			out[k] = val.Format(time.RFC3339)
		default:
			out[k] = v
		}
	}
	return out
}

// collectSVGPages finds the page files a patterned SVG output produced.
func collectSVGPages(outputPattern string) ([]PageInfo, error) {
	if !strings.Contains(outputPattern, "{p}") && !strings.Contains(outputPattern, "{0p}") {
		if _, err := os.Stat(outputPattern); err == nil {
			return []PageInfo{{Page: 1, File: outputPattern}}, nil
		}
		return nil, nil
	}

	dir := filepath.Dir(outputPattern)
	stem := strings.TrimSuffix(filepath.Base(outputPattern), filepath.Ext(outputPattern))
	// Strip the pattern token from the stem for prefix matching.
	for _, token := range []string{"-{p}", "_{p}", "-{0p}", "_{0p}", "{p}", "{0p}"} {
		stem = strings.ReplaceAll(stem, token, "")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading output directory %s: %w", dir, err)
	}

	var pages []PageInfo
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, stem) || !strings.HasSuffix(name, ".svg") {
			continue
		}
		if num, ok := extractPageNumber(name, stem); ok {
			pages = append(pages, PageInfo{Page: num, File: filepath.Join(dir, name)})
		}
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Page < pages[j].Page })
	return pages, nil
}

// extractPageNumber pulls the page index out of names like quote-3.svg.
func extractPageNumber(filename, stem string) (int, bool) {
	suffix := strings.TrimPrefix(filename, stem)
	if len(suffix) > 0 && (suffix[0] == '-' || suffix[0] == '_') {
		suffix = suffix[1:]
	} else {
		return 0, false
	}
	suffix = strings.TrimSuffix(suffix, ".svg")
	num, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return num, true
}

func firstNonEmptyLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

func hasErrorLine(stderr string) bool {
	return strings.Contains(strings.ToLower(stderr), "error")
}

func warningsOnly(stderr string) bool {
	for _, line := range strings.Split(stderr, "\n") {
		lt := strings.ToLower(strings.TrimSpace(line))
		if lt == "" || strings.HasPrefix(lt, "warning") {
			continue
		}
		return false
	}
	return true
}
