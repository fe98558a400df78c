package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/forma/internal/atomicfile"
	"github.com/aidanlsb/forma/internal/content"
	"github.com/aidanlsb/forma/internal/template"
)

var (
	initOutput      string
	initSchema      string
	initAnalyzeData bool
)

var initCmd = &cobra.Command{
	Use:   "init <template>",
	Short: "Extract content structure from a template and generate TOML",
	Long: `Parse a Typst template's editable declarations and generate a matching
content file skeleton.

With --analyze-data, all data.* access patterns in the template are also
turned into skeleton fields, not just explicit #editable declarations.

Examples:
  forma init quote.typ
  forma init quote.typ -o offers/acme.toml
  forma init quote.typ --schema quote.schema.json --analyze-data`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	templatePath := args[0]

	info, err := template.Parse(templatePath)
	if err != nil {
		return handleError(err, "")
	}

	if initSchema != "" {
		schema := info.GenerateSchema()
		schemaJSON, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return handleError(err, "")
		}
		if dryRun {
			fmt.Println(string(schemaJSON))
		} else if err := atomicfile.WriteFile(initSchema, append(schemaJSON, '\n'), 0o644); err != nil {
			return handleError(fmt.Errorf("writing schema file %s: %w", initSchema, err), "")
		}
	}

	src, fieldCount, blockCount, err := buildContentSkeleton(info, templatePath, initAnalyzeData)
	if err != nil {
		return handleError(err, "")
	}

	outputPath := initOutput
	if outputPath == "" {
		stem := strings.TrimSuffix(filepath.Base(templatePath), filepath.Ext(templatePath))
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
		result := map[string]interface{}{
			"output": outputPath,
			"fields": fieldCount,
			"blocks": blockCount,
		}
		if initSchema != "" {
			result["schema"] = initSchema
		}
		outputSuccess(result, nil)
		return nil
	}

	fmt.Printf("Generated %s with %d fields and %d blocks\n", outputPath, fieldCount, blockCount)
	if initSchema != "" {
		fmt.Printf("Generated schema %s\n", initSchema)
	}
	return nil
}

// buildContentSkeleton synthesizes a content file from a template analysis.
// The template reference written into [meta] is templateRef as the user gave
// it, not the resolved path.
func buildContentSkeleton(info *template.Info, templateRef string, analyzeData bool) (src string, fieldCount, blockCount int, err error) {
	builder := content.NewBuilder(templateRef)
	builder.SetTemplateID(info.ID, info.Version)

	existingFields := make(map[string]bool)
	for _, field := range info.Fields {
		builder.AddField(field.Path, field.Default)
		existingFields[field.Path] = true
	}
	fieldCount = len(info.Fields)

	existingBlocks := make(map[string]bool)
	for _, block := range info.Blocks {
		existingBlocks[block.Path] = true
	}

	if analyzeData {
		raw, readErr := os.ReadFile(info.Path)
		if readErr != nil {
			return "", 0, 0, fmt.Errorf("reading template %s: %w", info.Path, readErr)
		}
		for _, access := range template.ExtractDataAccess(string(raw)) {
			if strings.HasPrefix(access.Path, "blocks.") {
				if existingBlocks[access.Path] {
					continue
				}
				name := content.TrimBlocksPrefix(access.Path)
				// Nested accesses like blocks.intro.content belong to the
				// block itself, not a separate skeleton entry.
				if strings.Contains(name, ".") {
					continue
				}
				body := access.Default
				if body == "" {
					body = fmt.Sprintf("# %s\n\nAdd content here.", name)
				}
				builder.AddBlock(name, name, "markdown", "", body)
				existingBlocks[access.Path] = true
				blockCount++
				continue
			}
			if existingFields[access.Path] {
				continue
			}
			value := access.Default
			if value == "" {
				value = fmt.Sprintf("<%s>", access.Path)
			}
			builder.AddField(access.Path, value)
			existingFields[access.Path] = true
			fieldCount++
		}
	}

	for _, block := range info.Blocks {
		title := block.Title
		if title == "" {
			title = block.Path
		}
		builder.AddBlock(content.TrimBlocksPrefix(block.Path), title, block.Format, "", block.DefaultContent)
	}
	blockCount += len(info.Blocks)

	src, err = builder.Build()
	return src, fieldCount, blockCount, err
}

func init() {
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "", "Output content file path")
	initCmd.Flags().StringVar(&initSchema, "schema", "", "Also generate a JSON schema at this path")
	initCmd.Flags().BoolVar(&initAnalyzeData, "analyze-data", false, "Analyze all data.* access patterns for a complete skeleton")
	rootCmd.AddCommand(initCmd)
}
