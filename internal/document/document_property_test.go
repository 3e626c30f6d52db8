//go:build property

package document

import (
	"slices"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestDocumentProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	segments := gen.SliceOf(gen.Identifier())

	properties.Property("title reversal is the mirror of forward order", prop.ForAll(
		func(parts []string) bool {
			d := New(DefaultConfig(), nil)
			for _, p := range parts {
				d.AddTitle(p)
			}
			d.SetTitleReverse(false)
			forward := d.Title()

			d.SetTitleReverse(true)
			reversed := slices.Clone(parts)
			slices.Reverse(reversed)
			return forward == strings.Join(parts, " | ") &&
				d.Title() == strings.Join(reversed, " | ")
		},
		segments,
	))

	properties.Property("header is stable across reads", prop.ForAll(
		func(parts []string) bool {
			d := New(DefaultConfig(), nil)
			for _, p := range parts {
				d.AddTitle(p)
				d.BodyPrepend("<i>" + p + "</i>")
			}
			return d.Header() == d.Header()
		},
		segments,
	))

	properties.Property("footer keeps append order", prop.ForAll(
		func(parts []string) bool {
			d := New(DefaultConfig(), nil)
			for _, p := range parts {
				d.BodyAppend(p)
			}
			return d.Footer() == strings.Join(parts, "")+"\n</body>\n</html>"
		},
		segments,
	))

	properties.TestingRun(t)
}
