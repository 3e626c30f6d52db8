package config

import (
	"fmt"
	"net"
	"regexp"
	"strings"

	"golang.org/x/text/language"

	"github.com/conneroisu/pagekit/internal/document"
	"github.com/conneroisu/pagekit/internal/logging"
	"github.com/conneroisu/pagekit/internal/validation"
)

// ValidationError represents a configuration validation error with suggestions
type ValidationError struct {
	Field       string
	Value       interface{}
	Message     string
	Suggestions []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the result of configuration validation
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// String returns a formatted string of all validation issues
func (vr *ValidationResult) String() string {
	var builder strings.Builder

	if len(vr.Errors) > 0 {
		builder.WriteString("Validation errors:\n")
		writeIssues(&builder, vr.Errors)
		builder.WriteString("\n")
	}

	if len(vr.Warnings) > 0 {
		builder.WriteString("Validation warnings:\n")
		writeIssues(&builder, vr.Warnings)
	}

	return builder.String()
}

func writeIssues(b *strings.Builder, issues []ValidationError) {
	for _, issue := range issues {
		fmt.Fprintf(b, "  - %s: %s\n", issue.Field, issue.Message)
		for _, suggestion := range issue.Suggestions {
			fmt.Fprintf(b, "    hint: %s\n", suggestion)
		}
	}
}

// ValidateConfigWithDetails performs comprehensive validation with detailed feedback
func ValidateConfigWithDetails(config *Config) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	validateHTMLConfigDetails(&config.HTML, result)
	validateServerConfigDetails(&config.Server, result)
	validateLogConfigDetails(&config.Log, result)

	result.Valid = !result.HasErrors()

	return result
}

func validateHTMLConfigDetails(config *document.Config, result *ValidationResult) {
	if config.Doctype == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "html.doctype",
			Value:   config.Doctype,
			Message: "doctype cannot be empty",
			Suggestions: []string{
				"Known doctypes: " + strings.Join(document.Doctypes(), ", "),
			},
		})
	} else if !document.KnownDoctype(config.Doctype) && !strings.HasPrefix(config.Doctype, "<!") {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "html.doctype",
			Value:   config.Doctype,
			Message: fmt.Sprintf("unknown doctype '%s' will be emitted verbatim", config.Doctype),
			Suggestions: []string{
				"Known doctypes: " + strings.Join(document.Doctypes(), ", "),
				"A custom declaration should start with <!DOCTYPE",
			},
		})
	}

	if _, err := language.Parse(config.Lang); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "html.lang",
			Value:   config.Lang,
			Message: fmt.Sprintf("'%s' is not a valid language tag", config.Lang),
			Suggestions: []string{
				"Use a BCP 47 tag such as en, en-US, or pt-BR",
			},
		})
	}

	if strings.TrimSpace(config.Charset) == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "html.charset",
			Value:   config.Charset,
			Message: "charset cannot be empty",
			Suggestions: []string{
				"Use UTF-8 unless the pages are stored in a legacy encoding",
			},
		})
	}
}

func validateServerConfigDetails(config *ServerConfig, result *ValidationResult) {
	// Port 0 lets the system pick a free port.
	if config.Port < 0 || config.Port > 65535 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "server.port",
			Value:   config.Port,
			Message: fmt.Sprintf("port %d is not in valid range 0-65535", config.Port),
			Suggestions: []string{
				"Use a port between 1024-65535 for non-privileged access",
				"Port 0 allows system to assign an available port",
			},
		})
	} else if config.Port > 0 && config.Port < 1024 {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "server.port",
			Value:   config.Port,
			Message: "port below 1024 requires elevated privileges",
			Suggestions: []string{
				"Consider using a port above 1024 for development",
			},
		})
	}

	if config.Host != "" {
		if err := validateHostname(config.Host); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "server.host",
				Value:   config.Host,
				Message: err.Error(),
				Suggestions: []string{
					"Use 'localhost' for local development",
					"Use '0.0.0.0' to bind to all interfaces",
				},
			})
		}
	}

	if err := validation.ValidatePath(config.Pages); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "server.pages",
			Value:   config.Pages,
			Message: err.Error(),
			Suggestions: []string{
				"Use a relative directory such as ./pages",
			},
		})
	}
}

func validateLogConfigDetails(config *LogConfig, result *ValidationResult) {
	if _, err := logging.ParseLevel(config.Level); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log.level",
			Value:   config.Level,
			Message: err.Error(),
			Suggestions: []string{
				"Use one of debug, info, warn, error",
			},
		})
	}

	if config.Format != "text" && config.Format != "json" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log.format",
			Value:   config.Format,
			Message: fmt.Sprintf("unknown log format '%s'", config.Format),
			Suggestions: []string{
				"Use 'text' for terminals and 'json' for log collectors",
			},
		})
	}
}

var hostnameRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

func validateHostname(host string) error {
	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\"}
	for _, char := range dangerousChars {
		if strings.Contains(host, char) {
			return fmt.Errorf("contains dangerous character: %s", char)
		}
	}

	if net.ParseIP(host) != nil {
		return nil
	}

	if host == "localhost" {
		return nil
	}

	if !hostnameRegex.MatchString(host) {
		return fmt.Errorf("invalid hostname format")
	}

	return nil
}
