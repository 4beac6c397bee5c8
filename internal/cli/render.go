package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynaform/pkg/orchestrator"
)

var renderCmd = &cobra.Command{
	Use:   "render <document>",
	Short: "Render a form document as HTML",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringP("output", "o", "", "Output file (stdout if empty)")
	renderCmd.Flags().String("renderer", "", "Renderer to use (overrides config)")
	renderCmd.Flags().String("theme", "", "Theme name (overrides config)")
	renderCmd.Flags().String("variant", "", "Theme variant (overrides config)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	orch, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}

	rendererName, _ := cmd.Flags().GetString("renderer")
	themeName, _ := cmd.Flags().GetString("theme")
	themeVariant, _ := cmd.Flags().GetString("variant")

	output, err := orch.Generate(cmd.Context(), orchestrator.Request{
		Source:       sourceFor(args[0]),
		Renderer:     rendererName,
		ThemeName:    themeName,
		ThemeVariant: themeVariant,
	})
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	}
	if err := os.WriteFile(outPath, output, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	color.Green("✓ form written to %s", outPath)
	return nil
}
