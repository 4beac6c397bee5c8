// Package cli provides the Cobra-based commands for the dynaform tool:
// document checking, HTML rendering, interactive fill, live preview, and
// OpenAPI import.
package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynaform/internal/config"
	"github.com/goliatone/go-dynaform/internal/schemaloader"
	"github.com/goliatone/go-dynaform/pkg/orchestrator"
	"github.com/goliatone/go-dynaform/pkg/render"
	"github.com/goliatone/go-dynaform/pkg/renderers/tui"
	"github.com/goliatone/go-dynaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-dynaform/pkg/schema"
)

var rootCmd = &cobra.Command{
	Use:   "dynaform",
	Short: "Schema-driven form toolkit",
	Long: `dynaform turns declarative form documents into rendered forms.

Validate a document, render it as HTML, fill it interactively in the
terminal, or keep a live preview in sync while you edit.`,
	Example: `  # Validate a form document
  dynaform check contact.json

  # Render HTML to a file
  dynaform render contact.json -o form.html

  # Fill the form in the terminal and save the submission
  dynaform fill contact.json

  # Re-render on every save
  dynaform watch contact.json -o form.html

  # Derive a form from an OpenAPI operation
  dynaform import api.json --operation createSignup`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to config file (default .dynaform.json)")
}

func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = ".dynaform.json"
	}
	return config.Load(path)
}

func sourceFor(raw string) schema.Source {
	path := strings.TrimSpace(raw)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return schema.SourceFromURL(path)
	}
	return schema.SourceFromFile(path)
}

func buildOrchestrator(cfg *config.Configuration) (*orchestrator.Orchestrator, error) {
	registry := render.NewRegistry()

	htmlRenderer, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	registry.MustRegister(htmlRenderer)

	terminalRenderer, err := tui.New()
	if err != nil {
		return nil, err
	}
	registry.MustRegister(terminalRenderer)

	options := schema.NewLoaderOptions()
	options.AllowHTTP = cfg.AllowHTTP
	if cfg.HTTPTimeout > 0 {
		options.RequestTimeout = time.Duration(cfg.HTTPTimeout) * time.Second
	}

	return orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(cfg.Renderer),
		orchestrator.WithDefaultTheme(cfg.Theme, cfg.ThemeVariant),
		orchestrator.WithLoader(schemaloader.New(options)),
	), nil
}
