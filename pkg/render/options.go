package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dynaform/pkg/session"
)

// Options describe per-request data that renderers can use to customise
// their output without mutating the parsed form.
type Options struct {
	// Values pre-populates rendered controls keyed by field id. Renderers
	// surface these as the current value of each control.
	Values map[string]string
	// Errors surfaces validation feedback keyed by field id. The vanilla
	// renderer maps these into inline messages next to each control.
	Errors map[string]string
	// Theme carries resolved theme tokens and CSS variables for renderers
	// that emit styled output. Nil means unstyled defaults.
	Theme *theme.RendererConfig
}

// OptionsFromSession snapshots a session's values and validation errors so a
// renderer can re-draw the form mid-fill.
func OptionsFromSession(s *session.Session) Options {
	if s == nil {
		return Options{}
	}
	return Options{
		Values: s.Values(),
		Errors: s.Errors(),
	}
}
