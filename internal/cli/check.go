package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynaform/pkg/schema"
)

var checkCmd = &cobra.Command{
	Use:   "check <document>",
	Short: "Validate a form document",
	Long: `Check a form document against the document rules: field structure,
known field types, option lists for choice fields, and unique ids.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	result := schema.CheckDocument(raw)
	if !result.Valid {
		for _, issue := range result.Issues {
			if issue.Path != "" {
				color.Red("✗ %s: %s", issue.Path, issue.Message)
			} else {
				color.Red("✗ %s", issue.Message)
			}
		}
		return fmt.Errorf("%d issue(s) found", len(result.Issues))
	}

	// Structure is sound; the parser enforces the cross-field rules the
	// document grammar cannot express (duplicate ids, applicability).
	if _, err := schema.Parse(raw); err != nil {
		color.Red("✗ %v", err)
		return fmt.Errorf("1 issue(s) found")
	}

	color.Green("✓ %s is valid", args[0])
	return nil
}
