package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/conneroisu/pagekit/internal/document"
	perrors "github.com/conneroisu/pagekit/internal/errors"
	"github.com/conneroisu/pagekit/internal/pagefile"
	"github.com/conneroisu/pagekit/internal/response"
	"github.com/conneroisu/pagekit/internal/tag"
	"github.com/conneroisu/pagekit/internal/validation"
)

// reloadScript connects the page to the reload endpoint, refreshes on every
// reload message, and reconnects after the connection drops.
const reloadScript = `(function () {
	var scheme = location.protocol === "https:" ? "wss:" : "ws:";
	var url = scheme + "//" + location.host + "` + ReloadPath + `";
	function connect() {
		var ws = new WebSocket(url);
		ws.onmessage = function (e) {
			var msg = JSON.parse(e.data);
			if (msg.type === "reload") { location.reload(); }
		};
		ws.onclose = function () { setTimeout(connect, 1000); };
	}
	connect();
})();`

var errPageNotFound = errors.New("page not found")

func (s *PageServer) handlePage(w http.ResponseWriter, r *http.Request) {
	path, err := s.resolvePage(r.URL.Path)
	if err != nil {
		s.writeError(w, r, http.StatusNotFound, "Not Found", err.Error())
		return
	}

	page, err := pagefile.Load(path)
	if err != nil {
		s.logger.Error(r.Context(), err, "loading page", "path", path)
		s.writeError(w, r, http.StatusInternalServerError, "Page Error", err.Error())
		return
	}

	resp, err := page.Render(s.config.HTML, s.injectReload, document.WithLogger(s.logger))
	if err != nil {
		s.logger.Error(r.Context(), err, "rendering page", "path", path)
		s.writeError(w, r, http.StatusInternalServerError, "Page Error", err.Error())
		return
	}

	if err := resp.Flush(w); err != nil {
		s.logger.Warn(r.Context(), err, "writing page", "path", path)
	}
}

func (s *PageServer) injectReload(doc *document.Document) {
	if s.config.Server.LiveReload {
		doc.JSEOFEmbed(reloadScript)
	}
}

// resolvePage maps a URL path onto a page file. "/" is index; "/a/b" is
// a/b.yml, a/b.yaml, or a/b/index.yml under the pages directory.
func (s *PageServer) resolvePage(urlPath string) (string, error) {
	name := strings.Trim(urlPath, "/")
	if name == "" {
		name = "index"
	}
	if err := validation.ValidatePageName(name); err != nil {
		return "", perrors.NewValidationError(perrors.ErrCodePageInvalid, "invalid page name").WithCause(err)
	}

	base := filepath.Join(s.config.Server.Pages, filepath.FromSlash(name))
	for _, candidate := range []string{
		base + ".yml",
		base + ".yaml",
		filepath.Join(base, "index.yml"),
	} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: /%s", errPageNotFound, name)
}

// writeError renders an error page through the same document pipeline.
func (s *PageServer) writeError(w http.ResponseWriter, r *http.Request, status int, title, detail string) {
	resp := response.New()
	resp.SetStatus(status)

	doc := document.New(s.config.HTML, resp, document.WithLogger(s.logger))
	doc.AddTitle(title)
	s.injectReload(doc)

	heading := tag.New("h1")
	message := tag.New("pre").AddClass("pagekit-error")
	// Neither element is a singleton.
	_ = heading.SetInnerContent(document.EntityEncode(title), tag.ContentOverwrite)
	_ = message.SetInnerContent(document.EntityEncode(detail), tag.ContentOverwrite)

	err := resp.Run(response.ViewOutput, func() error {
		resp.AppendOutput(heading.Render())
		resp.AppendOutput(message.Render())
		return nil
	})
	if err != nil {
		http.Error(w, detail, status)
		return
	}
	if err := resp.Flush(w); err != nil {
		s.logger.Warn(r.Context(), err, "writing error page")
	}
}
