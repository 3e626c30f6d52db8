package document

import "golang.org/x/net/html"

// EntityEncode escapes &, <, >, and both quote characters.
func EntityEncode(s string) string {
	return html.EscapeString(s)
}

// EntityDecode reverses EntityEncode and also resolves named entities.
func EntityDecode(s string) string {
	return html.UnescapeString(s)
}
