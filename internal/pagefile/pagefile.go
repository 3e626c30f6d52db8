// Package pagefile reads YAML page definitions: a list of document
// directives and a tree of body elements.
//
//	directives:
//	  - title: Home
//	  - meta_name: [keywords, [go, html]]
//	body:
//	  - tag: main
//	    class: [container]
//	    text: Hello
package pagefile

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/conneroisu/pagekit/internal/document"
	perrors "github.com/conneroisu/pagekit/internal/errors"
	"github.com/conneroisu/pagekit/internal/tag"
)

// Directive is one decoded directive entry.
type Directive struct {
	Name document.Directive
	Args []any
	Line int
}

// Page is a parsed page file.
type Page struct {
	Path       string
	Directives []Directive
	Nodes      []Node
}

// Node is one body element.
type Node struct {
	Tag       string            `yaml:"tag"`
	Singleton *bool             `yaml:"singleton,omitempty"`
	Attrs     map[string]string `yaml:"attrs,omitempty"`
	Class     ClassList         `yaml:"class,omitempty"`
	Data      map[string]string `yaml:"data,omitempty"`
	Text      string            `yaml:"text,omitempty"`
	Raw       string            `yaml:"raw,omitempty"`
	Selected  bool              `yaml:"selected,omitempty"`
	Checked   bool              `yaml:"checked,omitempty"`
	Children  []Node            `yaml:"children,omitempty"`
}

// ClassList accepts either a space-separated string or a list of names.
type ClassList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *ClassList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*c = strings.Fields(value.Value)
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return err
		}
		*c = names
		return nil
	default:
		return fmt.Errorf("line %d: class must be a string or a list", value.Line)
	}
}

type rawPage struct {
	Directives []yaml.Node `yaml:"directives"`
	Body       []Node      `yaml:"body"`
}

// Load reads and parses the page file at path.
func Load(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, perrors.NewIOError(perrors.ErrCodeFileNotFound,
				"page file not found", err).WithContext("path", path)
		}
		return nil, perrors.NewIOError(perrors.ErrCodeInternalError,
			"reading page file", err).WithContext("path", path)
	}

	page, err := Parse(data)
	if err != nil {
		var pe *perrors.PagekitError
		if errors.As(err, &pe) {
			return nil, pe.WithContext("path", path)
		}
		return nil, err
	}
	page.Path = path
	return page, nil
}

// Parse decodes a page from YAML.
func Parse(data []byte) (*Page, error) {
	var raw rawPage
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, perrors.NewValidationError(perrors.ErrCodePageInvalid,
			"invalid page file").WithCause(err).WithComponent("pagefile")
	}

	page := &Page{Nodes: raw.Body}
	for i := range raw.Directives {
		d, err := decodeDirective(&raw.Directives[i])
		if err != nil {
			return nil, err
		}
		page.Directives = append(page.Directives, d)
	}
	return page, nil
}

func decodeDirective(n *yaml.Node) (Directive, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return Directive{}, perrors.NewValidationError(perrors.ErrCodePageInvalid,
			fmt.Sprintf("line %d: directive must be a single-key mapping", n.Line)).
			WithComponent("pagefile")
	}

	key, value := n.Content[0], n.Content[1]
	var decoded any
	if err := value.Decode(&decoded); err != nil {
		return Directive{}, perrors.NewValidationError(perrors.ErrCodePageInvalid,
			fmt.Sprintf("line %d: %s", value.Line, err)).WithComponent("pagefile")
	}

	d := Directive{Name: document.Directive(key.Value), Line: key.Line}
	switch v := decoded.(type) {
	case nil:
	case []any:
		d.Args = v
	default:
		d.Args = []any{v}
	}
	return d, nil
}

// Apply runs every directive against doc in file order. The first failure
// is returned with its line number.
func (p *Page) Apply(doc *document.Document) error {
	for _, d := range p.Directives {
		if err := doc.Apply(d.Name, d.Args...); err != nil {
			return fmt.Errorf("%s line %d: %w", p.name(), d.Line, err)
		}
	}
	return nil
}

// Body renders the body nodes in order.
func (p *Page) Body() (string, error) {
	var b strings.Builder
	for i := range p.Nodes {
		t, err := p.Nodes[i].Build()
		if err != nil {
			return "", fmt.Errorf("%s: %w", p.name(), err)
		}
		b.WriteString(t.Render())
	}
	return b.String(), nil
}

func (p *Page) name() string {
	if p.Path == "" {
		return "page"
	}
	return p.Path
}

// Build converts the node and its children into a tag tree.
func (n *Node) Build() (*tag.Tag, error) {
	if n.Tag == "" {
		return nil, perrors.NewValidationError(perrors.ErrCodePageInvalid,
			"body node without a tag name").WithComponent("pagefile")
	}

	var opts []tag.Option
	if n.Singleton != nil {
		opts = append(opts, tag.WithSingleton(*n.Singleton))
	}
	t := tag.New(n.Tag, opts...)

	if len(n.Attrs) > 0 {
		t.SetAttributeMap(n.Attrs)
	}
	for _, name := range n.Class {
		t.AddClass(name)
	}
	for _, key := range slices.Sorted(maps.Keys(n.Data)) {
		t.SetData(key, n.Data[key])
	}
	if n.Selected {
		t.Select()
	}
	if n.Checked {
		t.Check()
	}

	if n.Text != "" {
		if err := t.SetInnerContent(document.EntityEncode(n.Text), tag.ContentAppend); err != nil {
			return nil, fmt.Errorf("<%s> text: %w", n.Tag, err)
		}
	}
	if n.Raw != "" {
		if err := t.SetInnerContent(n.Raw, tag.ContentAppend); err != nil {
			return nil, fmt.Errorf("<%s> raw: %w", n.Tag, err)
		}
	}

	for i := range n.Children {
		child, err := n.Children[i].Build()
		if err != nil {
			return nil, err
		}
		t.AddChild(child)
	}
	return t, nil
}
