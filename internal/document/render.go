package document

import (
	"context"
	"fmt"
	"slices"
	"strings"

	perrors "github.com/conneroisu/pagekit/internal/errors"
	"github.com/conneroisu/pagekit/internal/tag"
)

const xhtmlNamespace = "http://www.w3.org/1999/xhtml"

// Body sections readable through BodySection.
const (
	BodyPrependSection = "prepend"
	BodyAppendSection  = "append"
	BodyJSEOFSection   = "js_eof"
)

// Title returns the title segments joined by the separator, last-added
// first when reversal is enabled. The accumulated segments are not modified.
func (d *Document) Title() string {
	segments := d.title
	if d.config.TitleReverse {
		segments = slices.Clone(segments)
		slices.Reverse(segments)
	}
	return strings.Join(segments, d.config.TitleSeparator)
}

// Section returns the fragments of a head section, one per line. Names
// outside meta, link, style, and script yield the empty string.
func (d *Document) Section(name string) string {
	section := Section(name)
	if !validSection(section) {
		return ""
	}
	return formatLines(d.sectionFragments(section))
}

// BodySection returns the prepend, append, or js_eof fragments
// concatenated in render order. Other names yield the empty string.
func (d *Document) BodySection(name string) string {
	switch name {
	case BodyPrependSection:
		prepended := slices.Clone(d.prepended)
		slices.Reverse(prepended)
		return strings.Join(prepended, "")
	case BodyAppendSection:
		return strings.Join(d.appended, "")
	case BodyJSEOFSection:
		return strings.Join(d.jsEOF, "")
	default:
		return ""
	}
}

// Header builds everything from the doctype through the opening body tag
// and the prepended fragments.
func (d *Document) Header() string {
	var b strings.Builder

	decl, _ := Declaration(d.config.Doctype)
	b.WriteString(decl)

	b.WriteString("\n<html")
	if isXHTML(d.config.Doctype) {
		fmt.Fprintf(&b, ` xmlns="%s" xml:lang="%s"`, xhtmlNamespace, d.config.Lang)
	}
	fmt.Fprintf(&b, ` lang="%s">`+"\n", d.config.Lang)

	b.WriteString("<head>\n\t<title>")
	b.WriteString(d.Title())
	b.WriteString("</title>\n")

	for _, section := range headSections {
		b.WriteString(strings.Join(d.inserts[insertKey{section, Before}], ""))
		b.WriteString(formatLines(d.sectionFragments(section)))
		b.WriteString(strings.Join(d.inserts[insertKey{section, After}], ""))
	}
	b.WriteString("</head>\n")

	b.WriteString("<body")
	for _, event := range d.eventOrder {
		fmt.Fprintf(&b, ` %s="%s"`, event, strings.Join(d.events[event], ";"))
	}
	b.WriteString(">\n")

	b.WriteString(d.BodySection(BodyPrependSection))

	return b.String()
}

// Footer builds the appended fragments, end-of-body scripts, and the
// closing body and html tags.
func (d *Document) Footer() string {
	var b strings.Builder
	b.WriteString(d.BodySection(BodyAppendSection))
	b.WriteString(d.BodySection(BodyJSEOFSection))
	b.WriteString("\n</body>\n</html>")
	return b.String()
}

// RenderHeader sets the content type and hands Header to the host output.
// It runs once per document.
func (d *Document) RenderHeader() error {
	if d.headerRendered {
		return perrors.NewInvalidOperationError("document header already rendered").
			WithComponent("document")
	}
	d.headerRendered = true

	out := d.Header()
	if d.host != nil {
		d.host.SetContentType("text/html", d.config.Charset)
		d.host.AppendOutput(out)
	}
	d.logger.Debug(context.Background(), "rendered document header",
		"doctype", d.config.Doctype,
		"bytes", len(out))
	return nil
}

// RenderFooter hands Footer to the host output. It runs once per document.
func (d *Document) RenderFooter() error {
	if d.footerRendered {
		return perrors.NewInvalidOperationError("document footer already rendered").
			WithComponent("document")
	}
	d.footerRendered = true

	out := d.Footer()
	if d.host != nil {
		d.host.AppendOutput(out)
	}
	d.logger.Debug(context.Background(), "rendered document footer", "bytes", len(out))
	return nil
}

// sectionFragments returns a section's fragments, with the charset
// declaration added to meta unless the caller declared one.
func (d *Document) sectionFragments(section Section) []string {
	fragments := d.head[section]
	if section != SectionMeta || d.charsetDeclared || d.config.Charset == "" {
		return fragments
	}

	var charset string
	if d.config.Doctype == "html5" {
		charset = tag.New("meta").SetAttribute("charset", d.config.Charset).Render()
	} else {
		charset = tag.New("meta").
			SetAttribute("http-equiv", "Content-Type").
			SetAttribute("content", "text/html; charset="+d.config.Charset).
			Render()
	}
	return append(slices.Clone(fragments), charset)
}

func formatLines(fragments []string) string {
	var b strings.Builder
	for _, f := range fragments {
		b.WriteString("\t")
		b.WriteString(f)
		b.WriteString("\n")
	}
	return b.String()
}
