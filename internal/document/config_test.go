package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/conneroisu/pagekit/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "html5", cfg.Doctype)
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, "UTF-8", cfg.Charset)
	assert.Equal(t, " | ", cfg.TitleSeparator)
	assert.True(t, cfg.TitleReverse)

	assert.Equal(t, map[string]any{
		"doctype":         "html5",
		"lang":            "en",
		"charset":         "UTF-8",
		"title_separator": " | ",
		"title_reverse":   true,
	}, Defaults())
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()

	merged, err := base.Merge(map[string]any{
		"lang":          "de",
		"title_reverse": false,
		"unknown":       42,
	})
	require.NoError(t, err)
	assert.Equal(t, "de", merged.Lang)
	assert.False(t, merged.TitleReverse)
	assert.Equal(t, "html5", merged.Doctype)
	assert.Equal(t, "en", base.Lang, "receiver is untouched")
}

func TestConfigMergeTypeError(t *testing.T) {
	base := DefaultConfig()

	_, err := base.Merge(map[string]any{"charset": 8})
	require.Error(t, err)
	assert.True(t, perrors.IsConfigError(err))
	assert.Contains(t, err.Error(), "html.charset must be a string")

	_, err = base.Merge(map[string]any{"title_reverse": "yes"})
	require.Error(t, err)
	assert.True(t, perrors.IsConfigError(err))
}

func TestDoctypes(t *testing.T) {
	assert.Equal(t, []string{
		"html-strict",
		"html-transitional",
		"html5",
		"xhtml-basic",
		"xhtml-strict",
		"xhtml-transitional",
	}, Doctypes())

	decl, known := Declaration("html5")
	assert.True(t, known)
	assert.Equal(t, "<!DOCTYPE html>", decl)

	decl, known = Declaration("<!DOCTYPE custom>")
	assert.False(t, known)
	assert.Equal(t, "<!DOCTYPE custom>", decl)

	assert.True(t, KnownDoctype("xhtml-transitional"))
	assert.False(t, KnownDoctype("html6"))
}

func TestEntityEncoding(t *testing.T) {
	testCases := []struct {
		in      string
		encoded string
	}{
		{in: "plain", encoded: "plain"},
		{in: "a & b", encoded: "a &amp; b"},
		{in: "<b>", encoded: "&lt;b&gt;"},
		{in: `"q" 'p'`, encoded: "&#34;q&#34; &#39;p&#39;"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.encoded, EntityEncode(tc.in))
			assert.Equal(t, tc.in, EntityDecode(tc.encoded))
		})
	}

	assert.Equal(t, "© ©", EntityDecode("&copy; &#169;"))
}
