package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/forma/internal/atomicfile"
	"github.com/aidanlsb/forma/internal/content"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Install asset files into the template and brand directories",
}

// add logo

var (
	addLogoBrand string
	addLogoName  string
	addLogoForce bool
)

var addLogoCmd = &cobra.Command{
	Use:   "logo <source>",
	Short: "Copy a logo file into a brand's logos directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddLogo,
}

func runAddLogo(cmd *cobra.Command, args []string) error {
	destDir := filepath.Join(paths.BrandsDir, addLogoBrand, "logos")
	dest, err := installAsset(args[0], destDir, addLogoName, addLogoForce)
	if err != nil {
		return err
	}
	if dest == "" {
		return nil // dry run, or the error envelope was already emitted
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"source":      args[0],
			"destination": dest,
			"brand":       addLogoBrand,
		}, nil)
		return nil
	}
	fmt.Printf("Added logo to %s\n", dest)
	return nil
}

// add template

var (
	addTemplateName  string
	addTemplateForce bool
)

var addTemplateCmd = &cobra.Command{
	Use:   "template <source>",
	Short: "Copy a template file into the templates directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddTemplate,
}

func runAddTemplate(cmd *cobra.Command, args []string) error {
	dest, err := installAsset(args[0], paths.TemplatesDir, addTemplateName, addTemplateForce)
	if err != nil {
		return err
	}
	if dest == "" {
		return nil // dry run, or the error envelope was already emitted
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"source":      args[0],
			"destination": dest,
		}, nil)
		return nil
	}
	fmt.Printf("Added template to %s\n", dest)
	return nil
}

// add font

var (
	addFontBrand string
	addFontName  string
	addFontForce bool
)

var addFontCmd = &cobra.Command{
	Use:   "font <source>",
	Short: "Copy a font file into a brand's fonts directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddFont,
}

func runAddFont(cmd *cobra.Command, args []string) error {
	destDir := filepath.Join(paths.BrandsDir, addFontBrand, "fonts")
	dest, err := installAsset(args[0], destDir, addFontName, addFontForce)
	if err != nil {
		return err
	}
	if dest == "" {
		return nil // dry run, or the error envelope was already emitted
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"source":      args[0],
			"destination": dest,
			"brand":       addFontBrand,
		}, nil)
		return nil
	}
	fmt.Printf("Added font to %s\n", dest)
	return nil
}

// installAsset copies a source file into destDir under name (defaulting to
// the source filename). An existing destination is only overwritten with
// force. Returns the destination path, or "" when dry-run skipped the copy.
func installAsset(source, destDir, name string, force bool) (string, error) {
	if _, err := os.Stat(source); err != nil {
		return "", handleError(&content.FileNotFoundError{Path: source},
			"Check the source file path")
	}

	if name == "" {
		name = filepath.Base(source)
	}
	dest := filepath.Join(destDir, name)

	if _, err := os.Stat(dest); err == nil && !force {
		return "", handleErrorMsg(ErrFileExists,
			fmt.Sprintf("destination already exists: %s", dest),
			"Use --force to overwrite")
	}

	if dryRun {
		fmt.Printf("Would copy %s to %s\n", source, dest)
		return "", nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return "", handleError(fmt.Errorf("reading %s: %w", source, err), "")
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", handleError(fmt.Errorf("creating directory %s: %w", destDir, err), "")
	}
	if err := atomicfile.WriteFile(dest, data, 0o644); err != nil {
		return "", handleError(fmt.Errorf("copying %s to %s: %w", source, dest, err), "")
	}
	return dest, nil
}

func init() {
	addLogoCmd.Flags().StringVarP(&addLogoBrand, "brand", "b", "", "Brand the logo belongs to")
	addLogoCmd.Flags().StringVarP(&addLogoName, "name", "n", "", "Destination filename (defaults to the source filename)")
	addLogoCmd.Flags().BoolVarP(&addLogoForce, "force", "f", false, "Overwrite an existing file")
	_ = addLogoCmd.MarkFlagRequired("brand")

	addTemplateCmd.Flags().StringVarP(&addTemplateName, "name", "n", "", "Destination filename (defaults to the source filename)")
	addTemplateCmd.Flags().BoolVarP(&addTemplateForce, "force", "f", false, "Overwrite an existing file")

	addFontCmd.Flags().StringVarP(&addFontBrand, "brand", "b", "", "Brand the font belongs to")
	addFontCmd.Flags().StringVarP(&addFontName, "name", "n", "", "Destination filename (defaults to the source filename)")
	addFontCmd.Flags().BoolVarP(&addFontForce, "force", "f", false, "Overwrite an existing file")
	_ = addFontCmd.MarkFlagRequired("brand")

	addCmd.AddCommand(addLogoCmd, addTemplateCmd, addFontCmd)
	rootCmd.AddCommand(addCmd)
}
