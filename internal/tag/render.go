package tag

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Render returns the opening tag, inner content, and closing tag.
func (t *Tag) Render() string {
	return t.RenderStart() + t.RenderInner() + t.RenderEnd()
}

// RenderWith renders the tag using data as inner content instead of the
// stored value. Children still take precedence over data.
func (t *Tag) RenderWith(data any) (string, error) {
	inner, err := t.RenderInnerWith(data)
	if err != nil {
		return "", err
	}
	return t.RenderStart() + inner + t.RenderEnd(), nil
}

// RenderStart returns `<name attrs>`, or `<name attrs />` for singletons.
func (t *Tag) RenderStart() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(t.name)
	if attrs := t.renderedAttributes(); attrs.Len() > 0 {
		// An Attributes value is always accepted.
		s, _ := BuildAttributes(attrs, nil, Attributes{})
		b.WriteString(s)
	}
	if t.singleton {
		b.WriteString(" /")
	}
	b.WriteByte('>')
	return b.String()
}

// RenderInner returns the children, or the stored value when there are none.
func (t *Tag) RenderInner() string {
	if t.singleton {
		return ""
	}
	if len(t.children) > 0 {
		return t.renderChildren()
	}
	return t.value
}

// RenderInnerWith resolves data into inner content. nil selects the stored
// value; func() string is invoked; *Tag and templ.Component are rendered;
// fmt.Stringer uses String; anything else is formatted with fmt.Sprint.
func (t *Tag) RenderInnerWith(data any) (string, error) {
	if t.singleton {
		return "", nil
	}
	if len(t.children) > 0 {
		return t.renderChildren(), nil
	}

	switch v := data.(type) {
	case nil:
		return t.value, nil
	case string:
		return v, nil
	case func() string:
		return v(), nil
	case *Tag:
		if v == nil {
			return t.value, nil
		}
		return v.Render(), nil
	case templ.Component:
		var buf bytes.Buffer
		if err := v.Render(context.Background(), &buf); err != nil {
			return "", fmt.Errorf("rendering component inside <%s>: %w", t.name, err)
		}
		return buf.String(), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// RenderEnd returns `</name>`, or nothing for singletons.
func (t *Tag) RenderEnd() string {
	if t.singleton {
		return ""
	}
	return "</" + t.name + ">"
}

// String implements fmt.Stringer.
func (t *Tag) String() string {
	return t.Render()
}

func (t *Tag) renderChildren() string {
	var b strings.Builder
	for _, child := range t.children {
		b.WriteString(child.Render())
	}
	return b.String()
}

// Component adapts the tag to templ so it can be embedded in templ pages.
// The markup is written unescaped.
func (t *Tag) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, t.Render())
		return err
	})
}
