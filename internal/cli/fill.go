package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynaform/pkg/export"
	"github.com/goliatone/go-dynaform/pkg/orchestrator"
	"github.com/goliatone/go-dynaform/pkg/render"
	"github.com/goliatone/go-dynaform/pkg/renderers/tui"
	"github.com/goliatone/go-dynaform/pkg/session"
)

var fillCmd = &cobra.Command{
	Use:   "fill <document>",
	Short: "Fill a form interactively in the terminal",
	Long: `Walk the form field by field with terminal prompts. Answers are
validated as you go; the finished submission is written as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runFill,
}

func init() {
	fillCmd.Flags().StringP("output", "o", "", "Submission file (config submission_out if empty, '-' for stdout)")
	fillCmd.Flags().Bool("envelope", false, "Include id and timestamp in the exported submission")
	rootCmd.AddCommand(fillCmd)
}

func runFill(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	orch, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}

	form, err := orch.Parse(cmd.Context(), orchestrator.Request{Source: sourceFor(args[0])})
	if err != nil {
		return err
	}

	renderer, err := tui.New()
	if err != nil {
		return err
	}

	payload, err := renderer.Render(cmd.Context(), *form, render.Options{})
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			color.Yellow("aborted, nothing saved")
			return nil
		}
		return err
	}

	var record session.Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return fmt.Errorf("decode submission: %w", err)
	}

	outPath, _ := cmd.Flags().GetString("output")
	envelope, _ := cmd.Flags().GetBool("envelope")

	if outPath == "-" {
		exporter := export.WriterExporter{Writer: cmd.OutOrStdout(), Envelope: envelope}
		return exporter.Export(cmd.Context(), record)
	}

	if outPath == "" {
		outPath = cfg.SubmissionOut
	}
	exporter := export.NewFileExporter(nil, outPath)
	exporter.Envelope = envelope
	if err := exporter.Export(cmd.Context(), record); err != nil {
		return err
	}
	color.Green("✓ submission saved to %s", outPath)
	return nil
}
