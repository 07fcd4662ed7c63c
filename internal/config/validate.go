package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/BurntSushi/toml"
)

// ValidationSeverity indicates whether a validation issue is an error or warning.
type ValidationSeverity string

const (
	// SeverityError indicates a fatal validation issue; the settings are unusable.
	SeverityError ValidationSeverity = "error"
	// SeverityWarning indicates an informational validation issue; the settings
	// work but may have problems.
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationIssue represents a single validation finding.
type ValidationIssue struct {
	Severity ValidationSeverity
	Field    string // dotted path, e.g., "api.base_url"
	Message  string
}

// ValidationResult holds all validation findings.
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasErrors returns true if any issue has error severity.
func (vr *ValidationResult) HasErrors() bool {
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only error-severity issues.
func (vr *ValidationResult) Errors() []ValidationIssue {
	var errs []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		}
	}
	return errs
}

// Warnings returns only warning-severity issues.
func (vr *ValidationResult) Warnings() []ValidationIssue {
	var warns []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityWarning {
			warns = append(warns, issue)
		}
	}
	return warns
}

// questBatchLimit is the hard cap on quest ids per batched request enforced
// by the API.
const questBatchLimit = 200

// Validate checks the settings for correctness. meta may be nil when no file
// was loaded; when present, keys that did not map to any field are reported
// as warnings. Check HasErrors() to determine if the settings are usable.
func Validate(cfg *Config, meta *toml.MetaData) *ValidationResult {
	vr := &ValidationResult{}

	if cfg == nil {
		addError(vr, "", "configuration is nil")
		return vr
	}

	validateAPI(vr, &cfg.API)
	validateFiles(vr, &cfg.Files)
	validateUnknownKeys(vr, meta)

	return vr
}

// validateAPI checks the [api] section.
func validateAPI(vr *ValidationResult, a *APIConfig) {
	if a.BaseURL == "" {
		addError(vr, "api.base_url", "must not be empty")
	} else {
		u, err := url.Parse(a.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			addError(vr, "api.base_url",
				fmt.Sprintf("invalid URL %q; must include scheme and host", a.BaseURL))
		}
	}

	if a.RequestsPerMinute <= 0 {
		addError(vr, "api.requests_per_minute", "must be positive")
	}

	if a.JitterMaxMS < 0 {
		addError(vr, "api.jitter_max_ms", "must not be negative")
	}

	if a.QuestBatchSize <= 0 {
		addError(vr, "api.quest_batch_size", "must be positive")
	} else if a.QuestBatchSize > questBatchLimit {
		addError(vr, "api.quest_batch_size",
			fmt.Sprintf("must not exceed %d (API page size limit)", questBatchLimit))
	}

	if a.TimeoutSeconds <= 0 {
		addError(vr, "api.timeout_seconds", "must be positive")
	}
}

// validateFiles checks the [files] section.
func validateFiles(vr *ValidationResult, f *FilesConfig) {
	if f.Input == "" {
		addError(vr, "files.input", "must not be empty")
	}
	if f.Output == "" {
		addError(vr, "files.output", "must not be empty")
	}
	if f.Input != "" && f.Input == f.Output {
		addWarning(vr, "files.output",
			"input and output point at the same file; the input will be overwritten")
	}
}

// validateUnknownKeys checks for TOML keys that did not map to any settings field.
func validateUnknownKeys(vr *ValidationResult, meta *toml.MetaData) {
	if meta == nil {
		return
	}

	for _, key := range meta.Undecoded() {
		path := strings.Join(key, ".")
		addWarning(vr, path, "unknown configuration key")
	}
}

// addError appends an error-severity issue to the validation result.
func addError(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityError,
		Field:    field,
		Message:  message,
	})
}

// addWarning appends a warning-severity issue to the validation result.
func addWarning(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityWarning,
		Field:    field,
		Message:  message,
	})
}
