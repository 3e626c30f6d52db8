// Package tag builds individual HTML elements: a name, an ordered attribute
// set with class-list handling, inner content, and owned child elements.
//
// A Tag renders as opening tag, inner content, and closing tag. Void
// elements (img, br, meta, ...) render as `<name attrs />` and refuse inner
// content:
//
//	list := tag.New("ul").AddClass("menu")
//	list.AddChild(tag.New("li").SetData("id", "1"))
//	html := list.Render()
package tag

import (
	"fmt"
	"slices"
	"strings"

	perrors "github.com/conneroisu/pagekit/internal/errors"
)

// ContentMode selects how SetInnerContent combines new and existing content.
type ContentMode int

const (
	ContentOverwrite ContentMode = iota + 1
	ContentAppend
	ContentPrepend
)

// ClassMode selects how Class mutates the class list.
type ClassMode int

const (
	ClassOverwrite ClassMode = iota + 1
	ClassAppend
	ClassPrepend
	ClassRemove
)

// singletonTags are the elements rendered without inner content or a
// closing tag.
var singletonTags = map[string]bool{
	"area":    true,
	"base":    true,
	"br":      true,
	"col":     true,
	"command": true,
	"embed":   true,
	"hr":      true,
	"img":     true,
	"input":   true,
	"link":    true,
	"meta":    true,
	"param":   true,
	"source":  true,
}

// IsSingletonName reports whether name is in the void-element table.
func IsSingletonName(name string) bool {
	return singletonTags[name]
}

// Tag is a single HTML element under construction.
type Tag struct {
	name      string
	singleton bool
	attrs     Attributes
	// classes is nil until the first class mutation; afterwards it is the
	// source of truth for the class attribute.
	classes  []string
	value    string
	children []*Tag
}

// Option configures a Tag at construction.
type Option func(*Tag)

// WithSingleton overrides the void-element table for this tag.
func WithSingleton(singleton bool) Option {
	return func(t *Tag) {
		t.singleton = singleton
	}
}

// New creates a tag named name.
func New(name string, opts ...Option) *Tag {
	t := &Tag{
		name:      name,
		singleton: singletonTags[name],
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the element name.
func (t *Tag) Name() string { return t.name }

// IsSingleton reports whether the tag renders without content or closing tag.
func (t *Tag) IsSingleton() bool { return t.singleton }

// Value returns the stored inner content.
func (t *Tag) Value() string { return t.value }

// Children returns the owned child tags in order.
func (t *Tag) Children() []*Tag {
	return slices.Clone(t.children)
}

// SetAttribute sets name to value, replacing any previous value. Setting
// class directly discards a previously built class list.
func (t *Tag) SetAttribute(name, value string) *Tag {
	if name == "class" {
		t.classes = nil
	}
	t.attrs.Set(name, value)
	return t
}

// SetAttributes merges attrs into the tag in their order.
func (t *Tag) SetAttributes(attrs Attributes) *Tag {
	attrs.Each(func(name, value string) {
		t.SetAttribute(name, value)
	})
	return t
}

// SetAttributeMap merges m into the tag in sorted key order.
func (t *Tag) SetAttributeMap(m map[string]string) *Tag {
	for _, name := range sortedKeys(m) {
		t.SetAttribute(name, m[name])
	}
	return t
}

// RemoveAttribute deletes name if present.
func (t *Tag) RemoveAttribute(name string) *Tag {
	if name == "class" {
		t.classes = nil
	}
	t.attrs.Delete(name)
	return t
}

// HasAttribute reports whether name is set.
func (t *Tag) HasAttribute(name string) bool {
	if name == "class" && t.classes != nil {
		return len(t.classes) > 0
	}
	return t.attrs.Has(name)
}

// Attribute returns the value of name. The class list is joined with spaces;
// an empty class list reports no class attribute.
func (t *Tag) Attribute(name string) (string, bool) {
	if name == "class" && t.classes != nil {
		if len(t.classes) == 0 {
			return "", false
		}
		return strings.Join(t.classes, " "), true
	}
	return t.attrs.Get(name)
}

// SetData sets the data-name attribute.
func (t *Tag) SetData(name, value string) *Tag {
	return t.SetAttribute("data-"+name, value)
}

// Class mutates the class list. The first mutation converts an existing
// class string into tokens.
func (t *Tag) Class(name string, mode ClassMode) (*Tag, error) {
	switch mode {
	case ClassAppend, ClassPrepend, ClassOverwrite, ClassRemove:
	default:
		return t, perrors.NewInvalidOperationError(fmt.Sprintf("invalid class mode: %d", mode)).
			WithComponent("tag")
	}

	if t.classes == nil {
		existing, _ := t.attrs.Get("class")
		t.classes = strings.Fields(existing)
		// Reserve the attribute slot so class keeps its position.
		t.attrs.Set("class", existing)
	}

	switch mode {
	case ClassAppend:
		t.classes = append(t.classes, name)
	case ClassPrepend:
		t.classes = append([]string{name}, t.classes...)
	case ClassOverwrite:
		t.classes = []string{name}
	case ClassRemove:
		if idx := slices.Index(t.classes, name); idx >= 0 {
			t.classes = slices.Delete(t.classes, idx, idx+1)
		}
	}
	return t, nil
}

// AddClass appends name to the class list.
func (t *Tag) AddClass(name string) *Tag {
	// Class only fails for an unknown mode.
	_, _ = t.Class(name, ClassAppend)
	return t
}

// RemoveClass removes the first occurrence of name from the class list.
func (t *Tag) RemoveClass(name string) *Tag {
	// Class only fails for an unknown mode.
	_, _ = t.Class(name, ClassRemove)
	return t
}

// OverwriteClass replaces the class list with name.
func (t *Tag) OverwriteClass(name string) *Tag {
	// Class only fails for an unknown mode.
	_, _ = t.Class(name, ClassOverwrite)
	return t
}

// PrependClass puts name at the front of the class list.
func (t *Tag) PrependClass(name string) *Tag {
	// Class only fails for an unknown mode.
	_, _ = t.Class(name, ClassPrepend)
	return t
}

// Select sets selected="selected".
func (t *Tag) Select() *Tag { return t.SetAttribute("selected", "selected") }

// Deselect removes the selected attribute.
func (t *Tag) Deselect() *Tag { return t.RemoveAttribute("selected") }

// Check sets checked="checked".
func (t *Tag) Check() *Tag { return t.SetAttribute("checked", "checked") }

// Uncheck removes the checked attribute.
func (t *Tag) Uncheck() *Tag { return t.RemoveAttribute("checked") }

// SetInnerContent stores data as inner content according to mode.
func (t *Tag) SetInnerContent(data string, mode ContentMode) error {
	if t.singleton {
		return perrors.NewInvalidOperationError("value not allowed for singleton tags").
			WithComponent("tag").
			WithContext("tag", t.name)
	}
	switch mode {
	case ContentPrepend:
		t.value = data + t.value
	case ContentAppend:
		t.value += data
	case ContentOverwrite:
		t.value = data
	default:
		return perrors.NewInvalidOperationError(fmt.Sprintf("invalid content mode: %d", mode)).
			WithComponent("tag")
	}
	return nil
}

// AddChild appends child; the tag renders it exactly once as part of its
// own output.
func (t *Tag) AddChild(child *Tag) *Tag {
	if child != nil {
		t.children = append(t.children, child)
	}
	return t
}

// renderedAttributes returns the attribute set with the class list folded in.
func (t *Tag) renderedAttributes() Attributes {
	if t.classes == nil {
		return t.attrs
	}
	attrs := t.attrs.Clone()
	attrs.Set("class", strings.Join(t.classes, " "))
	return attrs
}
