package pagefile

import (
	"github.com/conneroisu/pagekit/internal/document"
	"github.com/conneroisu/pagekit/internal/response"
)

// Render builds a complete response for p: a fresh document on a fresh
// response, the page directives, then the body inside the view_output
// point. setup, when non-nil, runs after the directives.
func (p *Page) Render(cfg document.Config, setup func(*document.Document), opts ...document.Option) (*response.Response, error) {
	resp := response.New()
	doc := document.New(cfg, resp, opts...)

	if err := p.Apply(doc); err != nil {
		return nil, err
	}
	if setup != nil {
		setup(doc)
	}

	body, err := p.Body()
	if err != nil {
		return nil, err
	}

	err = resp.Run(response.ViewOutput, func() error {
		resp.AppendOutput(body)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
