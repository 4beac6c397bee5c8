package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynaform/pkg/openapi"
	"github.com/goliatone/go-dynaform/pkg/schema"
)

var importCmd = &cobra.Command{
	Use:   "import <openapi-document>",
	Short: "Derive a form document from an OpenAPI operation",
	Long: `Convert the JSON request body of an OpenAPI operation into a form
document. String properties become fields; enums become selects.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("operation", "", "Operation id to convert (required)")
	importCmd.Flags().StringP("output", "o", "", "Output file (stdout if empty)")
	importCmd.Flags().Bool("resolve-refs", false, "Follow external $ref targets")
	importCmd.MarkFlagRequired("operation")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	operationID, _ := cmd.Flags().GetString("operation")
	resolveRefs, _ := cmd.Flags().GetBool("resolve-refs")

	importer := openapi.New(openapi.ImportOptions{ResolveReferences: resolveRefs})
	form, err := importer.Import(cmd.Context(), raw, operationID)
	if err != nil {
		return err
	}

	payload, err := schema.Marshal(*form)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(payload))
		return nil
	}
	if err := os.WriteFile(outPath, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	color.Green("✓ form document written to %s", outPath)
	return nil
}
