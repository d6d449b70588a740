//go:build property

package renderer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dmitrymomot/hyraft/pkg/renderer"
	"github.com/dmitrymomot/hyraft/pkg/section"
)

func TestRenderProperties(t *testing.T) {
	r := newRenderer(t)
	properties := gopter.NewProperties(nil)

	properties.Property("displayer is idempotent without placeholders", prop.ForAll(
		func(text, tag string, selfClose bool) bool {
			in := "<p>" + text + "</p>"
			if selfClose {
				in += "<" + tag + ` name="` + text + `"/>`
			}
			once := r.RenderDisplayer(in)
			return r.RenderDisplayer(once) == once
		},
		gen.RegexMatch(`^[a-zA-Z0-9 ]{0,30}$`),
		gen.RegexMatch(`^[a-z][a-z-]{0,8}$`),
		gen.Bool(),
	))

	properties.Property("unresolved placeholders survive", prop.ForAll(
		func(name string) bool {
			in := "[." + name + ".]"
			return r.RenderDisplayer(in) == in
		},
		gen.RegexMatch(`^[a-z_]{1,12}$`),
	))

	properties.Property("each slot is replaced exactly once", prop.ForAll(
		func(a, b, c, d, body string) bool {
			layout := a + renderer.StylesSlot + b + renderer.ContentSlot + c + renderer.ScriptSlot + d
			out, err := r.Render(context.Background(), layout, &section.Template{Displayer: body}, nil)
			if err != nil {
				return false
			}
			return out == a+b+body+c+d &&
				!strings.Contains(out, renderer.ContentSlot)
		},
		gen.RegexMatch(`^[a-z ]{0,10}$`),
		gen.RegexMatch(`^[a-z ]{0,10}$`),
		gen.RegexMatch(`^[a-z ]{0,10}$`),
		gen.RegexMatch(`^[a-z ]{0,10}$`),
		gen.RegexMatch(`^[a-zA-Z0-9 ]{0,20}$`),
	))

	properties.TestingRun(t)
}
