package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/forma/internal/template"
	"github.com/aidanlsb/forma/internal/ui"
)

var templatesCmd = &cobra.Command{
	Use:   "templates [path]",
	Short: "List available templates",
	Long: `List templates discovered across the configured search paths, or in an
explicit directory.

Examples:
  forma templates
  forma templates ./my-templates`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTemplates,
}

type templateSummary struct {
	ID          string `json:"id"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	Fields      int    `json:"fields"`
	Blocks      int    `json:"blocks"`
}

func runTemplates(cmd *cobra.Command, args []string) error {
	searchPaths := templateSearchPaths()
	if len(args) == 1 {
		searchPaths = []string{args[0]}
	}

	templates := template.NewRegistry(searchPaths).List()

	if isJSONOutput() {
		summaries := make([]templateSummary, 0, len(templates))
		for _, info := range templates {
			summaries = append(summaries, templateSummary{
				ID:          info.ID,
				Path:        info.Path,
				Description: info.Description,
				Version:     info.Version,
				Fields:      len(info.Fields),
				Blocks:      len(info.Blocks),
			})
		}
		outputSuccess(summaries, &Meta{Count: len(summaries)})
		return nil
	}

	if len(templates) == 0 {
		fmt.Println("No templates found")
		return nil
	}
	for _, info := range templates {
		desc := info.Description
		if desc == "" {
			desc = "-"
		}
		fmt.Printf("%s %s\n", ui.Accent.Render(info.ID), desc)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
