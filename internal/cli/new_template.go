package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/forma/internal/atomicfile"
)

var (
	newTemplateOutput      string
	newTemplateDescription string
	newTemplateVersion     string
	newTemplateForce       bool
)

var newTemplateCmd = &cobra.Command{
	Use:   "new-template <name>",
	Short: "Create a new template with a matching content file",
	Long: `Scaffold a Typst template plus its content file. The name is slugified
for filenames, so "Quarterly Report" becomes quarterly-report.typ and
quarterly-report-content.toml.

Examples:
  forma new-template invoice
  forma new-template "Quarterly Report" -o templates/ --description "Q report"`,
	Args: cobra.ExactArgs(1),
	RunE: runNewTemplate,
}

func runNewTemplate(cmd *cobra.Command, args []string) error {
	name := slug.Make(args[0])
	if name == "" {
		return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("invalid template name: %q", args[0]), "")
	}

	outputDir := newTemplateOutput
	if outputDir == "" {
		outputDir = "."
	}

	templatePath := filepath.Join(outputDir, name+".typ")
	contentPath := filepath.Join(outputDir, name+"-content.toml")

	if !newTemplateForce {
		for _, path := range []string{templatePath, contentPath} {
			if _, err := os.Stat(path); err == nil {
				return handleErrorMsg(ErrFileExists,
					fmt.Sprintf("%s already exists", path),
					"Use --force to overwrite")
			}
		}
	}

	description := newTemplateDescription
	if description == "" {
		description = fmt.Sprintf("Template for %s", name)
	}

	templateSrc := templateScaffold(name, description, newTemplateVersion)
	contentSrc := contentScaffold(name, newTemplateVersion)

	if dryRun {
		fmt.Printf("=== %s ===\n%s\n", templatePath, templateSrc)
		fmt.Printf("=== %s ===\n%s", contentPath, contentSrc)
		return nil
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return handleError(fmt.Errorf("creating output directory %s: %w", outputDir, err), "")
	}
	if err := atomicfile.WriteFile(templatePath, []byte(templateSrc), 0o644); err != nil {
		return handleError(fmt.Errorf("writing template %s: %w", templatePath, err), "")
	}
	if err := atomicfile.WriteFile(contentPath, []byte(contentSrc), 0o644); err != nil {
		return handleError(fmt.Errorf("writing content %s: %w", contentPath, err), "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"template": templatePath,
			"content":  contentPath,
		}, nil)
		return nil
	}

	fmt.Printf("Created template %s and content %s\n", templatePath, contentPath)
	return nil
}

func templateScaffold(name, description, version string) string {
	return fmt.Sprintf(`// @description: %s
// @version: %s

#import "@local/forma-lib:1.0.0": editable, editable-block, forma-data, md, get

#let data = forma-data

#set page(paper: "a4", margin: 2.5cm)
#set text(font: get(data, "brand.fonts.body", default: "Inter"), size: 11pt)

// Header with optional logo
#let logo-path = get(data, "brand.logo", default: none)
#if logo-path != none and logo-path != "" {
  align(left)[#image(logo-path, width: 3cm)]
}

#v(1cm)

#align(center)[
  #text(size: 24pt, weight: "bold")[
    #editable("document.title", type: "text", default: "Document Title")
  ]
]

#v(0.5cm)

#align(center)[
  #text(size: 14pt, fill: rgb("#64748b"))[
    #editable("document.subtitle", type: "text", default: "Subtitle")
  ]
]

#v(1cm)

#editable-block("blocks.introduction", title: "Introduction", format: "markdown")[
  Add your introduction here.
]

#v(0.5cm)

#editable-block("blocks.content", title: "Main Content", format: "markdown")[
  Add your main content here.
]

#v(0.5cm)

#editable-block("blocks.conclusion", title: "Conclusion", format: "markdown")[
  Add your conclusion here.
]
`, description, version)
}

func contentScaffold(name, version string) string {
	return fmt.Sprintf(`# Content for %[1]s template

[meta]
template = "%[1]s.typ"
template_id = "%[1]s"
template_version = "%[2]s"

[document]
title = "Document Title"
subtitle = "Subtitle"

[blocks.introduction]
title = "Introduction"
format = "markdown"
content = "Add your introduction here."

[blocks.content]
title = "Main Content"
format = "markdown"
content = "Add your main content here."

[blocks.conclusion]
title = "Conclusion"
format = "markdown"
content = "Add your conclusion here."
`, name, version)
}

func init() {
	newTemplateCmd.Flags().StringVarP(&newTemplateOutput, "output", "o", "", "Output directory (defaults to current directory)")
	newTemplateCmd.Flags().StringVar(&newTemplateDescription, "description", "", "Template description")
	newTemplateCmd.Flags().StringVar(&newTemplateVersion, "version", "1.0.0", "Template version")
	newTemplateCmd.Flags().BoolVarP(&newTemplateForce, "force", "f", false, "Overwrite existing files")
	rootCmd.AddCommand(newTemplateCmd)
}
