package tag

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type stringer string

func (s stringer) String() string { return string(s) }

func TestRenderInnerWith(t *testing.T) {
	stored := New("div")
	require.NoError(t, stored.SetInnerContent("stored", ContentOverwrite))

	nested := New("em")
	require.NoError(t, nested.SetInnerContent("nested", ContentOverwrite))

	testCases := []struct {
		name     string
		data     any
		expected string
	}{
		{name: "nil uses stored value", data: nil, expected: "<div>stored</div>"},
		{name: "literal string", data: "literal", expected: "<div>literal</div>"},
		{name: "closure", data: func() string { return "from closure" }, expected: "<div>from closure</div>"},
		{name: "nested tag", data: nested, expected: "<div><em>nested</em></div>"},
		{name: "nil tag pointer", data: (*Tag)(nil), expected: "<div>stored</div>"},
		{name: "stringer", data: stringer("str"), expected: "<div>str</div>"},
		{name: "number", data: 42, expected: "<div>42</div>"},
		{
			name: "templ component",
			data: templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
				_, err := io.WriteString(w, "<b>templ</b>")
				return err
			}),
			expected: "<div><b>templ</b></div>",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := stored.RenderWith(tc.data)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestRenderWithComponentError(t *testing.T) {
	failing := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return errors.New("component exploded")
	})

	_, err := New("section").RenderWith(failing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "component exploded")
	assert.Contains(t, err.Error(), "<section>")
}

func TestRenderSingleton(t *testing.T) {
	img := New("img").SetAttribute("src", "/a.png").SetAttribute("alt", "")
	assert.Equal(t, `<img src="/a.png" />`, img.Render())

	out, err := img.RenderWith("ignored")
	require.NoError(t, err)
	assert.Equal(t, `<img src="/a.png" />`, out)

	forced := New("widget", WithSingleton(true))
	assert.Equal(t, `<widget />`, forced.Render())
}

func TestNestedTreeParses(t *testing.T) {
	form := New("form").SetAttribute("action", "/save")
	sel := New("select").SetAttribute("name", "color")
	for _, c := range []string{"red", "green"} {
		opt := New("option").SetAttribute("value", c)
		require.NoError(t, opt.SetInnerContent(c, ContentOverwrite))
		if c == "green" {
			opt.Select()
		}
		sel.AddChild(opt)
	}
	form.AddChild(sel).AddChild(New("input").SetAttribute("type", "submit").SetAttribute("value", ""))

	markup := form.Render()
	assert.Equal(t,
		`<form action="/save"><select name="color"><option value="red">red</option>`+
			`<option value="green" selected="selected">green</option></select>`+
			`<input type="submit" value="" /></form>`,
		markup)

	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type: html.ElementNode, Data: "body", DataAtom: atom.Body,
	})
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "form", nodes[0].Data)
}

func TestComponentAdapter(t *testing.T) {
	p := New("p").AddClass("note")
	require.NoError(t, p.SetInnerContent("hi", ContentOverwrite))

	var buf bytes.Buffer
	require.NoError(t, p.Component().Render(context.Background(), &buf))
	assert.Equal(t, `<p class="note">hi</p>`, buf.String())
	assert.Equal(t, p.Render(), p.String())
}
