package document

import (
	"fmt"
	"strconv"
	"strings"

	perrors "github.com/conneroisu/pagekit/internal/errors"
)

// Directive names one accumulation operation. The set is closed; Apply
// rejects anything else.
type Directive string

const (
	DirectiveDoctype        Directive = "doctype"
	DirectiveLang           Directive = "lang"
	DirectiveTitle          Directive = "title"
	DirectiveTitleSeparator Directive = "title_separator"
	DirectiveTitleReverse   Directive = "title_reverse"
	DirectiveMetaName       Directive = "meta_name"
	DirectiveMetaHTTPEquiv  Directive = "meta_http_equiv"
	DirectiveMetaCharset    Directive = "meta_charset"
	DirectiveLink           Directive = "link"
	DirectiveCSSExternal    Directive = "css_external"
	DirectiveFavicon        Directive = "favicon"
	DirectiveCSSEmbed       Directive = "css_embed"
	DirectiveJSExternal     Directive = "js_external"
	DirectiveJSEmbed        Directive = "js_embed"
	DirectiveHeadInsert     Directive = "head_insert"
	DirectiveBodyEvent      Directive = "body_event"
	DirectiveBodyPrepend    Directive = "body_prepend"
	DirectiveBodyAppend     Directive = "body_append"
	DirectiveJSEOFExternal  Directive = "js_eof_external"
	DirectiveJSEOFEmbed     Directive = "js_eof_embed"
)

// Directives lists the full vocabulary in documentation order.
func Directives() []Directive {
	return []Directive{
		DirectiveDoctype, DirectiveLang,
		DirectiveTitle, DirectiveTitleSeparator, DirectiveTitleReverse,
		DirectiveMetaName, DirectiveMetaHTTPEquiv, DirectiveMetaCharset,
		DirectiveLink, DirectiveCSSExternal, DirectiveFavicon,
		DirectiveCSSEmbed, DirectiveJSExternal, DirectiveJSEmbed,
		DirectiveHeadInsert,
		DirectiveBodyEvent, DirectiveBodyPrepend, DirectiveBodyAppend,
		DirectiveJSEOFExternal, DirectiveJSEOFEmbed,
	}
}

// Apply runs the named directive with loosely typed arguments, as decoded
// from a page file. Scalars are accepted where strings are expected; list
// arguments are accepted for meta_name content and the refresh form of
// meta_http_equiv.
func (d *Document) Apply(directive Directive, args ...any) error {
	a := directiveArgs{directive: directive, args: args}

	switch directive {
	case DirectiveDoctype:
		return a.one(d.SetDoctype)
	case DirectiveLang:
		return a.one(d.SetLanguage)
	case DirectiveTitle:
		return a.one(d.AddTitle)
	case DirectiveTitleSeparator:
		return a.one(d.SetTitleSeparator)
	case DirectiveTitleReverse:
		if len(args) == 0 {
			d.SetTitleReverse(true)
			return nil
		}
		if err := a.arity(1); err != nil {
			return err
		}
		b, err := a.bool(0)
		if err != nil {
			return err
		}
		d.SetTitleReverse(b)
		return nil
	case DirectiveMetaName:
		if err := a.arity(2); err != nil {
			return err
		}
		name, err := a.string(0)
		if err != nil {
			return err
		}
		content, err := a.strings(1)
		if err != nil {
			return err
		}
		d.AddMetaName(name, content...)
		return nil
	case DirectiveMetaHTTPEquiv:
		if err := a.arity(2); err != nil {
			return err
		}
		name, err := a.string(0)
		if err != nil {
			return err
		}
		if name == "refresh" {
			return a.refresh(d)
		}
		content, err := a.string(1)
		if err != nil {
			return err
		}
		d.AddMetaHTTPEquiv(name, content)
		return nil
	case DirectiveMetaCharset:
		return a.one(d.AddMetaCharset)
	case DirectiveLink:
		if err := a.arity(3); err != nil {
			return err
		}
		rel, err := a.string(0)
		if err != nil {
			return err
		}
		typ, err := a.optionalString(1)
		if err != nil {
			return err
		}
		href, err := a.string(2)
		if err != nil {
			return err
		}
		d.AddLink(rel, typ, href)
		return nil
	case DirectiveCSSExternal:
		return a.one(d.AddCSSExternal)
	case DirectiveFavicon:
		return a.one(d.AddFavicon)
	case DirectiveCSSEmbed:
		return a.one(d.AddCSSEmbed)
	case DirectiveJSExternal:
		return a.one(d.AddJSExternal)
	case DirectiveJSEmbed:
		return a.one(d.AddJSEmbed)
	case DirectiveHeadInsert:
		if err := a.arity(3); err != nil {
			return err
		}
		section, err := a.string(0)
		if err != nil {
			return err
		}
		position, err := a.string(1)
		if err != nil {
			return err
		}
		fragment, err := a.string(2)
		if err != nil {
			return err
		}
		return d.HeadInsert(Section(section), Position(position), fragment)
	case DirectiveBodyEvent:
		if err := a.arity(2); err != nil {
			return err
		}
		event, err := a.string(0)
		if err != nil {
			return err
		}
		statement, err := a.string(1)
		if err != nil {
			return err
		}
		d.BodyEvent(event, statement)
		return nil
	case DirectiveBodyPrepend:
		return a.one(d.BodyPrepend)
	case DirectiveBodyAppend:
		return a.one(d.BodyAppend)
	case DirectiveJSEOFExternal:
		return a.one(d.JSEOFExternal)
	case DirectiveJSEOFEmbed:
		return a.one(d.JSEOFEmbed)
	default:
		return perrors.NewUnknownDirectiveError(string(directive)).WithComponent("document")
	}
}

type directiveArgs struct {
	directive Directive
	args      []any
}

func (a directiveArgs) malformed(format string, v ...any) error {
	return perrors.NewMalformedInputError(fmt.Sprintf("%s: ", a.directive)+fmt.Sprintf(format, v...)).
		WithComponent("document").
		WithContext("directive", string(a.directive))
}

func (a directiveArgs) arity(n int) error {
	if len(a.args) != n {
		return a.malformed("expected %d argument(s), got %d", n, len(a.args))
	}
	return nil
}

func (a directiveArgs) one(fn func(string)) error {
	if err := a.arity(1); err != nil {
		return err
	}
	s, err := a.string(0)
	if err != nil {
		return err
	}
	fn(s)
	return nil
}

func (a directiveArgs) string(i int) (string, error) {
	s, ok := scalarString(a.args[i])
	if !ok {
		return "", a.malformed("argument %d must be a scalar, got %T", i+1, a.args[i])
	}
	return s, nil
}

func (a directiveArgs) optionalString(i int) (string, error) {
	if a.args[i] == nil {
		return "", nil
	}
	return a.string(i)
}

func (a directiveArgs) strings(i int) ([]string, error) {
	switch v := a.args[i].(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := scalarString(item)
			if !ok {
				return nil, a.malformed("argument %d must be a list of scalars", i+1)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		s, err := a.string(i)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
}

func (a directiveArgs) bool(i int) (bool, error) {
	switch v := a.args[i].(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, a.malformed("argument %d must be a boolean, got %q", i+1, v)
		}
		return b, nil
	default:
		return false, a.malformed("argument %d must be a boolean, got %T", i+1, v)
	}
}

// refresh handles meta_http_equiv refresh, whose content is
// [seconds] or [seconds, url].
func (a directiveArgs) refresh(d *Document) error {
	parts, err := a.strings(1)
	if err != nil {
		return err
	}
	if len(parts) == 0 || len(parts) > 2 {
		return a.malformed("refresh content must be [seconds] or [seconds, url]")
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return a.malformed("refresh seconds must be an integer, got %q", parts[0])
	}
	url := ""
	if len(parts) == 2 {
		url = parts[1]
	}
	d.AddMetaRefresh(seconds, url)
	return nil
}

func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case int, int64, float64, bool:
		return fmt.Sprint(s), true
	default:
		return "", false
	}
}
