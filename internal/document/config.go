package document

import (
	"fmt"

	perrors "github.com/conneroisu/pagekit/internal/errors"
)

// Config holds the document-level settings. It is fixed at construction;
// only Doctype and Lang can change afterwards through SetDoctype and
// SetLanguage.
type Config struct {
	Doctype        string `mapstructure:"doctype" yaml:"doctype"`
	Lang           string `mapstructure:"lang" yaml:"lang"`
	Charset        string `mapstructure:"charset" yaml:"charset"`
	TitleSeparator string `mapstructure:"title_separator" yaml:"title_separator"`
	TitleReverse   bool   `mapstructure:"title_reverse" yaml:"title_reverse"`
}

// Configuration keys, as used in the html namespace of external config.
const (
	KeyDoctype        = "doctype"
	KeyLang           = "lang"
	KeyCharset        = "charset"
	KeyTitleSeparator = "title_separator"
	KeyTitleReverse   = "title_reverse"
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Doctype:        "html5",
		Lang:           "en",
		Charset:        "UTF-8",
		TitleSeparator: " | ",
		TitleReverse:   true,
	}
}

// Defaults returns DefaultConfig as a key/value mapping.
func Defaults() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		KeyDoctype:        d.Doctype,
		KeyLang:           d.Lang,
		KeyCharset:        d.Charset,
		KeyTitleSeparator: d.TitleSeparator,
		KeyTitleReverse:   d.TitleReverse,
	}
}

// Merge returns a copy of c with overrides applied. Unknown keys are
// ignored; known keys with a value of the wrong type are an error.
func (c Config) Merge(overrides map[string]any) (Config, error) {
	out := c
	for key, value := range overrides {
		switch key {
		case KeyDoctype, KeyLang, KeyCharset, KeyTitleSeparator:
			s, ok := value.(string)
			if !ok {
				return c, configTypeError(key, "string", value)
			}
			switch key {
			case KeyDoctype:
				out.Doctype = s
			case KeyLang:
				out.Lang = s
			case KeyCharset:
				out.Charset = s
			case KeyTitleSeparator:
				out.TitleSeparator = s
			}
		case KeyTitleReverse:
			b, ok := value.(bool)
			if !ok {
				return c, configTypeError(key, "bool", value)
			}
			out.TitleReverse = b
		}
	}
	return out, nil
}

func configTypeError(key, want string, got any) error {
	return perrors.NewConfigError(perrors.ErrCodeConfigInvalid,
		fmt.Sprintf("html.%s must be a %s, got %T", key, want, got)).
		WithContext("key", key)
}
