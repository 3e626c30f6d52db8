package document

import (
	"sort"
	"strings"
)

var doctypes = map[string]string{
	"html5":              `<!DOCTYPE html>`,
	"html-strict":        `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd">`,
	"html-transitional":  `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN" "http://www.w3.org/TR/html4/loose.dtd">`,
	"xhtml-strict":       `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">`,
	"xhtml-transitional": `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">`,
	"xhtml-basic":        `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML Basic 1.1//EN" "http://www.w3.org/TR/xhtml-basic/xhtml-basic11.dtd">`,
}

// Declaration returns the doctype declaration for name. Names outside the
// table are returned verbatim so callers can supply a custom declaration.
func Declaration(name string) (decl string, known bool) {
	if d, ok := doctypes[name]; ok {
		return d, true
	}
	return name, false
}

// KnownDoctype reports whether name is in the doctype table.
func KnownDoctype(name string) bool {
	_, ok := doctypes[name]
	return ok
}

// Doctypes lists the doctype names in sorted order.
func Doctypes() []string {
	names := make([]string, 0, len(doctypes))
	for name := range doctypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isXHTML(name string) bool {
	return strings.Contains(name, "xhtml")
}
