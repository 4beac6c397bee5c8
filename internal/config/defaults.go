package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"renderer":          "vanilla",
		"theme":             "",
		"theme_variant":     "",
		"output_path":       "form.html",
		"submission_out":    "form_submission.json",
		"allow_http":        false,
		"http_timeout":      15,
		"watch_debounce_ms": 250,
	}
}
