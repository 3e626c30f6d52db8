package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "relative directory", path: "./pages"},
		{name: "absolute directory", path: "/srv/site/pages"},
		{name: "empty", path: "", wantErr: true},
		{name: "parent traversal", path: "../pages", wantErr: true},
		{name: "nested traversal", path: "pages/../../etc", wantErr: true},
		{name: "shell metacharacter", path: "pages;rm", wantErr: true},
		{name: "quote", path: `pa"ges`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePageName(t *testing.T) {
	tests := []struct {
		name     string
		pageName string
		wantErr  bool
	}{
		{name: "index", pageName: "index"},
		{name: "nested", pageName: "blog/first-post"},
		{name: "empty", pageName: "", wantErr: true},
		{name: "traversal", pageName: "../etc/passwd", wantErr: true},
		{name: "nested traversal", pageName: "blog/../../x", wantErr: true},
		{name: "hidden segment", pageName: ".git/config", wantErr: true},
		{name: "hidden file", pageName: "blog/.draft", wantErr: true},
		{name: "absolute", pageName: "/etc/passwd", wantErr: true},
		{name: "semicolon", pageName: "a;b", wantErr: true},
		{name: "angle bracket", pageName: "x<y", wantErr: true},
		{name: "too long", pageName: strings.Repeat("a", 201), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePageName(tt.pageName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateFileExtension(t *testing.T) {
	assert.NoError(t, ValidateFileExtension("index.yml", PageExtensions))
	assert.NoError(t, ValidateFileExtension("INDEX.YAML", PageExtensions))
	assert.Error(t, ValidateFileExtension("index.html", PageExtensions))
	assert.Error(t, ValidateFileExtension("Makefile", PageExtensions))
	assert.Error(t, ValidateFileExtension("", PageExtensions))
}

func TestValidateOrigin(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		host    string
		wantErr bool
	}{
		{name: "same host", origin: "http://localhost:8080", host: "localhost:8080"},
		{name: "same host https", origin: "https://site.test", host: "site.test"},
		{name: "loopback alias", origin: "http://localhost:8080", host: "127.0.0.1:8080"},
		{name: "missing origin", origin: "", host: "localhost:8080", wantErr: true},
		{name: "other port", origin: "http://localhost:3000", host: "localhost:8080", wantErr: true},
		{name: "file scheme", origin: "file://localhost:8080", host: "localhost:8080", wantErr: true},
		{name: "foreign host", origin: "http://evil.example:8080", host: "localhost:8080", wantErr: true},
		{name: "malformed", origin: "http://[::1", host: "localhost:8080", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOrigin(tt.origin, tt.host)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
