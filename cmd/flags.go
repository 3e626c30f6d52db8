package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/text/language"

	"github.com/conneroisu/pagekit/internal/document"
	"github.com/conneroisu/pagekit/internal/logging"
)

// AddFlagValidation wraps the named flag so every value is checked before
// it is stored.
func AddFlagValidation(flags *pflag.FlagSet, flagName string, validator func(string) error) {
	flag := flags.Lookup(flagName)
	if flag == nil {
		return
	}

	flag.Value = &validatingValue{
		Value:     flag.Value,
		validator: validator,
	}
}

type validatingValue struct {
	pflag.Value
	validator func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	return v.Value.Set(val)
}

// ValidateDoctype accepts a doctype table name or a custom <!DOCTYPE ...>
// declaration.
func ValidateDoctype(val string) error {
	if document.KnownDoctype(val) || strings.HasPrefix(strings.ToUpper(val), "<!DOCTYPE") {
		return nil
	}
	return fmt.Errorf("unknown doctype %q (known: %s)", val, strings.Join(document.Doctypes(), ", "))
}

// ValidateLang accepts BCP 47 language tags.
func ValidateLang(val string) error {
	if _, err := language.Parse(val); err != nil {
		return fmt.Errorf("invalid language tag %q: %w", val, err)
	}
	return nil
}

// ValidateLogLevel accepts the levels logging.ParseLevel understands.
func ValidateLogLevel(val string) error {
	_, err := logging.ParseLevel(val)
	return err
}

// ValidatePort accepts 0 through 65535; 0 picks a free port.
func ValidatePort(portStr string) error {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid port number: %s", portStr)
	}

	if port < 0 || port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535, got %d", port)
	}

	return nil
}
