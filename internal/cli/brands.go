package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/forma/internal/atomicfile"
	"github.com/aidanlsb/forma/internal/brand"
	"github.com/aidanlsb/forma/internal/ui"
)

var brandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "Manage brands (logos, fonts, colors)",
}

// brands list

var brandsListCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List available brands",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBrandsList,
}

func runBrandsList(cmd *cobra.Command, args []string) error {
	searchPaths := []string{paths.BrandsDir}
	if len(args) == 1 {
		searchPaths = []string{args[0]}
	}

	brands := brand.NewRegistry(searchPaths).List()

	if isJSONOutput() {
		outputSuccess(brands, &Meta{Count: len(brands)})
		return nil
	}

	if len(brands) == 0 {
		fmt.Println("No brands found")
		return nil
	}
	for _, summary := range brands {
		name := summary.Name
		if name == "" {
			name = "-"
		}
		langs := ""
		if len(summary.Languages) > 0 {
			langs = " [" + strings.Join(summary.Languages, ", ") + "]"
		}
		fmt.Printf("%s %s%s\n", ui.Accent.Render(summary.ID), name, langs)
	}
	return nil
}

// brands show

var brandsShowLang string

var brandsShowCmd = &cobra.Command{
	Use:   "show <brand>",
	Short: "Show details of a brand",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrandsShow,
}

func runBrandsShow(cmd *cobra.Command, args []string) error {
	b, err := brandRegistry().Load(args[0])
	if err != nil {
		return handleError(err, "Run 'forma brands list' to see available brands")
	}

	lang := brandsShowLang
	name := b.NameFor(lang)
	description := b.DescriptionFor(lang)

	if isJSONOutput() {
		result := map[string]interface{}{
			"id":               b.ID,
			"name":             name,
			"default_language": b.DefaultLanguage,
			"languages":        b.Languages,
			"colors":           b.Colors,
			"path":             b.Source.RootDir,
		}
		if description != "" {
			result["description"] = description
		}
		logos := map[string]interface{}{}
		for slot, asset := range map[string]*brand.AssetPath{
			"primary":    b.Logos.Primary,
			"secondary":  b.Logos.Secondary,
			"monochrome": b.Logos.Monochrome,
			"favicon":    b.Logos.Favicon,
		} {
			if asset != nil {
				logos[slot] = asset.Resolved
			}
		}
		result["logos"] = logos
		typography := map[string]interface{}{}
		for usage, face := range map[string]*brand.FontFace{
			"body":    b.Typography.Body,
			"heading": b.Typography.Heading,
			"mono":    b.Typography.Mono,
		} {
			if face != nil {
				typography[usage] = face.Family
			}
		}
		result["typography"] = typography
		outputSuccess(result, nil)
		return nil
	}

	fmt.Printf("Brand: %s\n", ui.AccentBold.Render(b.ID))
	fmt.Printf("Name: %s\n", name)
	if description != "" {
		fmt.Printf("Description: %s\n", description)
	}
	fmt.Printf("Languages: %s\n", strings.Join(b.Languages, ", "))

	fmt.Println("\nColors:")
	for _, row := range [][2]string{
		{"primary", b.Colors.Primary},
		{"secondary", b.Colors.Secondary},
		{"accent", b.Colors.Accent},
		{"background", b.Colors.Background},
		{"text", b.Colors.Text},
	} {
		if row[1] != "" {
			fmt.Printf("  %s: %s\n", row[0], row[1])
		}
	}

	fmt.Println("\nLogos:")
	for _, row := range []struct {
		slot  string
		asset *brand.AssetPath
	}{
		{"primary", b.Logos.Primary},
		{"secondary", b.Logos.Secondary},
		{"monochrome", b.Logos.Monochrome},
		{"favicon", b.Logos.Favicon},
	} {
		if row.asset != nil {
			fmt.Printf("  %s: %s\n", row.slot, row.asset.Resolved)
		}
	}

	fmt.Println("\nTypography:")
	for _, row := range []struct {
		usage string
		face  *brand.FontFace
	}{
		{"body", b.Typography.Body},
		{"heading", b.Typography.Heading},
		{"mono", b.Typography.Mono},
	} {
		if row.face != nil {
			fmt.Printf("  %s: %s\n", row.usage, row.face.Family)
		}
	}

	if b.Contact != nil {
		fmt.Println("\nContact:")
		if company := b.Contact.Company.Resolve(lang, b.DefaultLanguage); company != "" {
			fmt.Printf("  company: %s\n", company)
		}
		if b.Contact.Email != "" {
			fmt.Printf("  email: %s\n", b.Contact.Email)
		}
		if b.Contact.Website != "" {
			fmt.Printf("  website: %s\n", b.Contact.Website)
		}
	}

	fmt.Printf("\nPath: %s\n", ui.Muted.Render(b.Source.RootDir))
	return nil
}

// brands new

var (
	brandsNewName    string
	brandsNewOutput  string
	brandsNewPrimary string
	brandsNewForce   bool
)

var brandsNewCmd = &cobra.Command{
	Use:   "new <id>",
	Short: "Create a new brand directory with scaffold files",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrandsNew,
}

func runBrandsNew(cmd *cobra.Command, args []string) error {
	id := args[0]

	outputDir := brandsNewOutput
	if outputDir == "" {
		outputDir = filepath.Join(paths.BrandsDir, id)
	}
	brandFile := filepath.Join(outputDir, "brand.toml")

	if _, err := os.Stat(brandFile); err == nil && !brandsNewForce {
		return handleErrorMsg(ErrFileExists,
			fmt.Sprintf("brand already exists at %s", brandFile),
			"Use --force to overwrite")
	}

	name := brandsNewName
	if name == "" {
		name = id
	}
	primary := brandsNewPrimary
	if primary == "" {
		primary = "#0f172a"
	}

	scaffold := brandScaffold(id, name, primary)

	if dryRun {
		fmt.Print(scaffold)
		return nil
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return handleError(fmt.Errorf("creating brand directory %s: %w", outputDir, err), "")
	}
	// Conventional asset subdirectories; creation failures are not fatal.
	_ = os.MkdirAll(filepath.Join(outputDir, "logos"), 0o755)
	_ = os.MkdirAll(filepath.Join(outputDir, "fonts"), 0o755)

	if err := atomicfile.WriteFile(brandFile, []byte(scaffold), 0o644); err != nil {
		return handleError(fmt.Errorf("writing brand file %s: %w", brandFile, err), "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"brand_id": id,
			"path":     outputDir,
		}, nil)
		return nil
	}
	fmt.Printf("Created brand '%s' at %s\n", id, outputDir)
	return nil
}

func brandScaffold(id, name, primary string) string {
	return fmt.Sprintf(`# Brand configuration for %[2]s

id = "%[1]s"
default_language = "en"
languages = ["en"]

[name]
en = "%[2]s"

[description]
en = "Brand description"

[colors]
primary = "%[3]s"
secondary = "#64748b"
accent = "#38bdf8"
background = "#ffffff"
text = "#0b1120"

[logos]
# primary = "logos/logo.svg"
# monochrome = "logos/logo-mono.svg"

[typography.body]
family = "Inter"
# files = ["fonts/Inter-Regular.ttf"]

[typography.heading]
family = "Inter"
# files = ["fonts/Inter-Bold.ttf"]

[contact]
# company = { en = "%[2]s" }
# email = "hello@example.com"
# website = "https://example.com"
`, id, name, primary)
}

// brands validate

var brandsValidateCheckFiles bool

var brandsValidateCmd = &cobra.Command{
	Use:   "validate <brand>",
	Short: "Validate a brand configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrandsValidate,
}

func runBrandsValidate(cmd *cobra.Command, args []string) error {
	b, err := brandRegistry().Load(args[0])
	if err != nil {
		return handleError(err, "Run 'forma brands list' to see available brands")
	}

	result := b.Validate(brandsValidateCheckFiles)

	if isJSONOutput() {
		if result.Valid {
			var warnings []Warning
			for _, w := range result.Warnings {
				warnings = append(warnings, Warning{Code: "INVALID_COLOR", Message: w})
			}
			outputSuccessWithWarnings(map[string]interface{}{
				"valid": true,
				"brand": b.ID,
				"path":  b.Source.File,
			}, warnings, nil)
		} else {
			outputError(ErrValidationFailed,
				fmt.Sprintf("%d validation errors", len(result.Errors)),
				map[string]interface{}{
					"brand":    b.ID,
					"errors":   result.Errors,
					"warnings": result.Warnings,
				}, "")
		}
		return nil
	}

	if result.Valid {
		fmt.Println(ui.Successf("%s: valid (id: %s, languages: %s)",
			b.Source.File, b.ID, strings.Join(b.Languages, ", ")))
		for _, warning := range result.Warnings {
			fmt.Printf("  %s\n", ui.Warning(warning))
		}
		return nil
	}

	fmt.Fprintln(os.Stderr, ui.Errorf("%s: validation failed", b.Source.File))
	for _, problem := range result.Errors {
		fmt.Fprintf(os.Stderr, "  - %s\n", problem)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "  %s\n", ui.Warning(warning))
	}
	return fmt.Errorf("%d validation errors", len(result.Errors))
}

func init() {
	brandsShowCmd.Flags().StringVarP(&brandsShowLang, "lang", "l", "", "Language code for localized content")

	brandsNewCmd.Flags().StringVarP(&brandsNewName, "name", "n", "", "Brand name (defaults to the id)")
	brandsNewCmd.Flags().StringVarP(&brandsNewOutput, "output", "o", "", "Output directory (defaults to brands_dir/<id>)")
	brandsNewCmd.Flags().StringVar(&brandsNewPrimary, "primary-color", "", "Primary color (hex code)")
	brandsNewCmd.Flags().BoolVarP(&brandsNewForce, "force", "f", false, "Overwrite an existing brand")

	brandsValidateCmd.Flags().BoolVar(&brandsValidateCheckFiles, "check-files", false, "Check that all referenced files exist")

	brandsCmd.AddCommand(brandsListCmd, brandsShowCmd, brandsNewCmd, brandsValidateCmd)
	rootCmd.AddCommand(brandsCmd)
}
