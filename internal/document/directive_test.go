package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/conneroisu/pagekit/internal/errors"
)

func TestApplyDirectives(t *testing.T) {
	testCases := []struct {
		name      string
		directive Directive
		args      []any
		check     func(t *testing.T, d *Document)
	}{
		{
			name:      "doctype",
			directive: DirectiveDoctype,
			args:      []any{"xhtml-basic"},
			check: func(t *testing.T, d *Document) {
				assert.Equal(t, "xhtml-basic", d.Config().Doctype)
			},
		},
		{
			name:      "lang",
			directive: DirectiveLang,
			args:      []any{"nl"},
			check: func(t *testing.T, d *Document) {
				assert.Equal(t, "nl", d.Config().Lang)
			},
		},
		{
			name:      "title",
			directive: DirectiveTitle,
			args:      []any{"Hello"},
			check: func(t *testing.T, d *Document) {
				assert.Equal(t, "Hello", d.Title())
			},
		},
		{
			name:      "title_separator",
			directive: DirectiveTitleSeparator,
			args:      []any{" / "},
			check: func(t *testing.T, d *Document) {
				assert.Equal(t, " / ", d.Config().TitleSeparator)
			},
		},
		{
			name:      "title_reverse without argument",
			directive: DirectiveTitleReverse,
			check: func(t *testing.T, d *Document) {
				assert.True(t, d.Config().TitleReverse)
			},
		},
		{
			name:      "title_reverse string",
			directive: DirectiveTitleReverse,
			args:      []any{"false"},
			check: func(t *testing.T, d *Document) {
				assert.False(t, d.Config().TitleReverse)
			},
		},
		{
			name:      "meta_name list",
			directive: DirectiveMetaName,
			args:      []any{"keywords", []any{"a", "b", 3}},
			check: func(t *testing.T, d *Document) {
				assert.Contains(t, d.Section("meta"), `<meta name="keywords" content="a,b,3" />`)
			},
		},
		{
			name:      "meta_http_equiv refresh",
			directive: DirectiveMetaHTTPEquiv,
			args:      []any{"refresh", []any{10, "/elsewhere"}},
			check: func(t *testing.T, d *Document) {
				assert.Contains(t, d.Section("meta"), `content="10;url=/elsewhere"`)
			},
		},
		{
			name:      "meta_http_equiv refresh scalar",
			directive: DirectiveMetaHTTPEquiv,
			args:      []any{"refresh", 30},
			check: func(t *testing.T, d *Document) {
				assert.Contains(t, d.Section("meta"), `<meta http-equiv="refresh" content="30" />`)
			},
		},
		{
			name:      "link without type",
			directive: DirectiveLink,
			args:      []any{"alternate", nil, "/feed"},
			check: func(t *testing.T, d *Document) {
				assert.Contains(t, d.Section("link"), `<link rel="alternate" href="/feed" />`)
			},
		},
		{
			name:      "head_insert",
			directive: DirectiveHeadInsert,
			args:      []any{"style", "after", "<!--s-->"},
			check: func(t *testing.T, d *Document) {
				assert.Contains(t, d.Header(), "<!--s-->")
			},
		},
		{
			name:      "body_event",
			directive: DirectiveBodyEvent,
			args:      []any{"onload", "go()"},
			check: func(t *testing.T, d *Document) {
				assert.Contains(t, d.Header(), `<body onload="go()">`)
			},
		},
		{
			name:      "js_eof_external",
			directive: DirectiveJSEOFExternal,
			args:      []any{"/end.js"},
			check: func(t *testing.T, d *Document) {
				assert.Contains(t, d.BodySection(BodyJSEOFSection), `src="/end.js"`)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := New(DefaultConfig(), nil)
			require.NoError(t, d.Apply(tc.directive, tc.args...))
			tc.check(t, d)
		})
	}
}

func TestApplyUnknownDirective(t *testing.T) {
	d := New(DefaultConfig(), nil)
	err := d.Apply("add_sidebar", "x")
	require.Error(t, err)
	assert.True(t, perrors.IsUnknownDirective(err))
	assert.Contains(t, err.Error(), "directive 'add_sidebar' not found")
}

func TestApplyMalformed(t *testing.T) {
	testCases := []struct {
		name      string
		directive Directive
		args      []any
	}{
		{name: "missing argument", directive: DirectiveTitle},
		{name: "extra argument", directive: DirectiveLang, args: []any{"en", "de"}},
		{name: "map argument", directive: DirectiveTitle, args: []any{map[string]any{"a": 1}}},
		{name: "bad bool", directive: DirectiveTitleReverse, args: []any{"sometimes"}},
		{name: "bad refresh seconds", directive: DirectiveMetaHTTPEquiv, args: []any{"refresh", "soon"}},
		{name: "long refresh list", directive: DirectiveMetaHTTPEquiv, args: []any{"refresh", []any{1, "/a", "b"}}},
		{name: "nested list content", directive: DirectiveMetaName, args: []any{"k", []any{[]any{"x"}}}},
		{name: "bad head section", directive: DirectiveHeadInsert, args: []any{"body", "before", "x"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := New(DefaultConfig(), nil)
			err := d.Apply(tc.directive, tc.args...)
			require.Error(t, err)
			assert.True(t, perrors.IsMalformedInput(err), "got %v", err)
		})
	}
}

func TestDirectivesVocabulary(t *testing.T) {
	d := New(DefaultConfig(), nil)
	for _, directive := range Directives() {
		err := d.Apply(directive)
		assert.False(t, perrors.IsUnknownDirective(err), "%s should be known", directive)
	}
	assert.Len(t, Directives(), 20)
}
