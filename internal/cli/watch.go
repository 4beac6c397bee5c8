package cli

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynaform/internal/watch"
	"github.com/goliatone/go-dynaform/pkg/orchestrator"
	"github.com/goliatone/go-dynaform/pkg/schema"
)

var watchCmd = &cobra.Command{
	Use:   "watch <document>",
	Short: "Re-render a form document on every save",
	Long: `Keep an HTML preview in sync with a form document. Each save
re-renders the output file; malformed documents produce an error page
instead of breaking the preview.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringP("output", "o", "", "Output file (config output_path if empty)")
	watchCmd.Flags().String("theme", "", "Theme name (overrides config)")
	watchCmd.Flags().String("variant", "", "Theme variant (overrides config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	orch, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		outPath = cfg.OutputPath
	}
	themeName, _ := cmd.Flags().GetString("theme")
	themeVariant, _ := cmd.Flags().GetString("variant")

	renderDoc := func(ctx context.Context, raw []byte) ([]byte, error) {
		doc := schema.MustNewDocument(sourceFor(args[0]), raw)
		output, err := orch.Generate(ctx, orchestrator.Request{
			Document:     &doc,
			ThemeName:    themeName,
			ThemeVariant: themeVariant,
		})
		if err == nil {
			return output, nil
		}

		var syntaxErr *schema.SyntaxError
		var schemaErr *schema.SchemaError
		if errors.As(err, &syntaxErr) || errors.As(err, &schemaErr) {
			return errorPage(err), err
		}
		return nil, err
	}

	debounce := time.Duration(cfg.WatchDebounce) * time.Millisecond
	watcher, err := watch.New(args[0], debounce, renderDoc)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	color.Cyan("watching %s, writing %s (ctrl-c to stop)", args[0], outPath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-watcher.Events():
			if len(event.Output) > 0 {
				if writeErr := os.WriteFile(outPath, event.Output, 0o644); writeErr != nil {
					return fmt.Errorf("write output: %w", writeErr)
				}
			}
			if event.Err != nil {
				color.Red("✗ %v", event.Err)
			} else {
				color.Green("✓ rendered %s", time.Now().Format("15:04:05"))
			}
		}
	}
}

// errorPage keeps the preview alive when the document cannot be parsed.
// Malformed JSON gets the canonical correction hint; other schema errors
// show their message.
func errorPage(err error) []byte {
	message := "Invalid JSON. Please correct it."
	var schemaErr *schema.SchemaError
	if errors.As(err, &schemaErr) {
		message = schemaErr.Error()
	}
	page := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Form error</title></head>
<body><p class="df-error">%s</p></body>
</html>
`, html.EscapeString(message))
	return []byte(page)
}
