// Package response is the per-request host a document renders into: an
// output buffer, the response content type, and the hook points the
// document header and footer attach to.
package response

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/conneroisu/pagekit/internal/document"
)

// ViewOutput is the hook point wrapping page body output.
const ViewOutput = document.ViewOutput

var _ document.Host = (*Response)(nil)

// Response buffers one page. It is not safe for concurrent use beyond the
// hook registry itself.
type Response struct {
	*HookRegistry

	output      strings.Builder
	contentType string
	status      int
	flushed     bool
}

// New creates an empty response with status 200.
func New() *Response {
	return &Response{
		HookRegistry: NewHookRegistry(),
		status:       http.StatusOK,
	}
}

// AppendOutput adds text to the buffered output.
func (r *Response) AppendOutput(text string) {
	r.output.WriteString(text)
}

// Output returns everything appended so far.
func (r *Response) Output() string {
	return r.output.String()
}

// SetContentType records the Content-Type header value. An empty charset
// leaves the parameter off. Calls after Flush are ignored.
func (r *Response) SetContentType(mimeType, charset string) {
	if r.flushed {
		return
	}
	if charset == "" {
		r.contentType = mimeType
		return
	}
	r.contentType = fmt.Sprintf("%s; charset=%s", mimeType, charset)
}

// ContentType returns the recorded Content-Type, or the empty string.
func (r *Response) ContentType() string {
	return r.contentType
}

// SetStatus sets the HTTP status written by Flush.
func (r *Response) SetStatus(code int) {
	r.status = code
}

// WriteTo writes the buffered output to w.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.output.String())
	return int64(n), err
}

// Flush writes headers, status, and body to an HTTP response.
func (r *Response) Flush(w http.ResponseWriter) error {
	r.flushed = true
	if r.contentType != "" {
		w.Header().Set("Content-Type", r.contentType)
	}
	w.WriteHeader(r.status)
	if _, err := r.WriteTo(w); err != nil {
		return fmt.Errorf("writing response body: %w", err)
	}
	return nil
}
