// Package document assembles a complete HTML document from fragments
// contributed by many independent call sites.
//
// A Document accumulates head state (title segments, meta, link, style, and
// script fragments, plus insertion points around each of those sections)
// and body state (inline event handlers, prepended and appended fragments,
// end-of-body scripts). The host calls RenderHeader before the page body is
// produced and RenderFooter after it; New registers both on the host's
// view_output hook point.
//
//	resp := response.New()
//	doc := document.New(document.DefaultConfig(), resp)
//	doc.AddTitle("Home")
//	doc.AddCSSExternal("/site.css")
//	err := resp.Run(response.ViewOutput, func() error {
//	    resp.AppendOutput("<main>...</main>")
//	    return nil
//	})
//
// A Document serves one response and is not safe for concurrent use.
package document

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	perrors "github.com/conneroisu/pagekit/internal/errors"
	"github.com/conneroisu/pagekit/internal/logging"
	"github.com/conneroisu/pagekit/internal/tag"
)

// ViewOutput is the hook point the header and footer are attached to.
const ViewOutput = "view_output"

// Hooks registers callbacks around a named extension point. Callbacks
// registered before a point run before it; after callbacks run after it.
type Hooks interface {
	RegisterBefore(point string, fn func() error)
	RegisterAfter(point string, fn func() error)
}

// Output receives rendered text.
type Output interface {
	AppendOutput(text string)
}

// Headers sets the response content type.
type Headers interface {
	SetContentType(mimeType, charset string)
}

// Host is everything the document needs from the surrounding response.
type Host interface {
	Hooks
	Output
	Headers
}

// Section names a head section that accepts insertions.
type Section string

const (
	SectionMeta   Section = "meta"
	SectionLink   Section = "link"
	SectionStyle  Section = "style"
	SectionScript Section = "script"
)

// headSections is the fixed emission order of the head.
var headSections = []Section{SectionMeta, SectionLink, SectionStyle, SectionScript}

// Position places an insertion relative to a section's own fragments.
type Position string

const (
	Before Position = "before"
	After  Position = "after"
)

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for render diagnostics.
func WithLogger(logger logging.Logger) Option {
	return func(d *Document) {
		d.logger = logger.WithComponent("document")
	}
}

type insertKey struct {
	section  Section
	position Position
}

// Document accumulates head and body fragments for one response.
type Document struct {
	config Config
	host   Host
	logger logging.Logger

	title   []string
	head    map[Section][]string
	inserts map[insertKey][]string
	// charsetDeclared is set once a caller adds its own charset declaration.
	charsetDeclared bool

	eventOrder []string
	events     map[string][]string
	prepended  []string
	appended   []string
	jsEOF      []string

	headerRendered bool
	footerRendered bool
}

// New creates a document with cfg and attaches RenderHeader and
// RenderFooter around the host's ViewOutput point. host may be nil when
// the caller only uses Header and Footer directly.
func New(cfg Config, host Host, opts ...Option) *Document {
	d := &Document{
		config:  cfg,
		host:    host,
		logger:  logging.Nop(),
		head:    make(map[Section][]string, len(headSections)),
		inserts: make(map[insertKey][]string),
		events:  make(map[string][]string),
	}
	for _, opt := range opts {
		opt(d)
	}
	if host != nil {
		host.RegisterBefore(ViewOutput, d.RenderHeader)
		host.RegisterAfter(ViewOutput, d.RenderFooter)
	}
	return d
}

// Config returns the current configuration.
func (d *Document) Config() Config { return d.config }

// SetDoctype selects the doctype by table name, or sets a custom
// declaration string.
func (d *Document) SetDoctype(name string) { d.config.Doctype = name }

// SetLanguage sets the lang attribute of the html element.
func (d *Document) SetLanguage(code string) { d.config.Lang = code }

// AddTitle appends a title segment.
func (d *Document) AddTitle(segment string) { d.title = append(d.title, segment) }

// SetTitleSeparator sets the string placed between title segments.
func (d *Document) SetTitleSeparator(sep string) { d.config.TitleSeparator = sep }

// SetTitleReverse controls whether segments render last-added first.
func (d *Document) SetTitleReverse(reverse bool) { d.config.TitleReverse = reverse }

// AddMetaName adds <meta name content>. Multiple content values are
// joined with commas.
func (d *Document) AddMetaName(name string, content ...string) {
	m := tag.New("meta").
		SetAttribute("name", name).
		SetAttribute("content", strings.Join(content, ","))
	d.addHead(SectionMeta, m.Render())
}

// AddMetaHTTPEquiv adds <meta http-equiv content>.
func (d *Document) AddMetaHTTPEquiv(name, content string) {
	if strings.EqualFold(name, "content-type") {
		d.charsetDeclared = true
	}
	m := tag.New("meta").
		SetAttribute("http-equiv", name).
		SetAttribute("content", content)
	d.addHead(SectionMeta, m.Render())
}

// AddMetaRefresh adds a refresh directive, redirecting to url when url is
// not empty.
func (d *Document) AddMetaRefresh(seconds int, url string) {
	content := strconv.Itoa(seconds)
	if url != "" {
		content += ";url=" + url
	}
	d.AddMetaHTTPEquiv("refresh", content)
}

// AddMetaCharset adds <meta charset>.
func (d *Document) AddMetaCharset(charset string) {
	d.charsetDeclared = true
	d.addHead(SectionMeta, tag.New("meta").SetAttribute("charset", charset).Render())
}

// AddLink adds <link rel type href>. An empty typ is omitted.
func (d *Document) AddLink(rel, typ, href string) {
	l := tag.New("link").SetAttribute("rel", rel)
	if typ != "" {
		l.SetAttribute("type", typ)
	}
	l.SetAttribute("href", href)
	d.addHead(SectionLink, l.Render())
}

// AddCSSExternal links a stylesheet.
func (d *Document) AddCSSExternal(href string) {
	d.AddLink("stylesheet", "text/css", href)
}

// AddFavicon links a favicon.
func (d *Document) AddFavicon(href string) {
	d.AddLink("shortcut icon", "image/x-icon", href)
}

// AddCSSEmbed adds an inline <style> block.
func (d *Document) AddCSSEmbed(css string) {
	d.addHead(SectionStyle, embedded("style", "text/css", css))
}

// AddJSExternal adds a head <script src>.
func (d *Document) AddJSExternal(src string) {
	d.addHead(SectionScript, externalScript(src))
}

// AddJSEmbed adds an inline head <script>.
func (d *Document) AddJSEmbed(js string) {
	d.addHead(SectionScript, embedded("script", "text/javascript", js))
}

// HeadInsert splices fragment immediately before or after the named
// section's own fragments.
func (d *Document) HeadInsert(section Section, position Position, fragment string) error {
	if !validSection(section) {
		return perrors.NewMalformedInputError(fmt.Sprintf("unknown head section: %s", section)).
			WithComponent("document")
	}
	if position != Before && position != After {
		return perrors.NewMalformedInputError(fmt.Sprintf("unknown insert position: %s", position)).
			WithComponent("document")
	}
	key := insertKey{section: section, position: position}
	d.inserts[key] = append(d.inserts[key], fragment)
	return nil
}

// BodyEvent adds an inline statement for a body event attribute such as
// onload. Statements for one event are joined with semicolons.
func (d *Document) BodyEvent(event, statement string) {
	if _, ok := d.events[event]; !ok {
		d.eventOrder = append(d.eventOrder, event)
	}
	d.events[event] = append(d.events[event], statement)
}

// BodyPrepend adds a fragment right after the opening body tag. The most
// recently prepended fragment renders first.
func (d *Document) BodyPrepend(fragment string) { d.prepended = append(d.prepended, fragment) }

// BodyAppend adds a fragment right before the end-of-body scripts.
func (d *Document) BodyAppend(fragment string) { d.appended = append(d.appended, fragment) }

// BodyAppendComponent renders c and appends the result.
func (d *Document) BodyAppendComponent(ctx context.Context, c templ.Component) error {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return fmt.Errorf("rendering body component: %w", err)
	}
	d.BodyAppend(buf.String())
	return nil
}

// JSEOFExternal adds a <script src> immediately before </body>.
func (d *Document) JSEOFExternal(src string) { d.jsEOF = append(d.jsEOF, externalScript(src)) }

// JSEOFEmbed adds an inline <script> immediately before </body>.
func (d *Document) JSEOFEmbed(js string) {
	d.jsEOF = append(d.jsEOF, embedded("script", "text/javascript", js))
}

func (d *Document) addHead(section Section, fragment string) {
	d.head[section] = append(d.head[section], fragment)
}

func validSection(s Section) bool {
	for _, known := range headSections {
		if s == known {
			return true
		}
	}
	return false
}

func externalScript(src string) string {
	return tag.New("script").
		SetAttribute("type", "text/javascript").
		SetAttribute("src", src).
		Render()
}

// embedded wraps body in an HTML comment inside a typed element.
func embedded(name, typ, body string) string {
	t := tag.New(name).SetAttribute("type", typ)
	// A string argument never fails to render.
	out, _ := t.RenderWith("<!--\n" + body + "\n\t-->")
	return out
}
