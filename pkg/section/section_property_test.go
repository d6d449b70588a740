//go:build property

package section_test

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dmitrymomot/hyraft/pkg/section"
)

func TestExtractProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("displayer body is returned trimmed", prop.ForAll(
		func(before, body, after string, pad int) bool {
			ws := strings.Repeat(" \n\t", pad)
			src := before + "<displayer html>" + ws + body + ws + "</displayer>" + after
			return section.Extract(src).Displayer == strings.TrimSpace(body)
		},
		gen.RegexMatch(`^[a-z ]{0,20}$`),
		gen.RegexMatch(`^[a-zA-Z0-9 .\[\]]{0,40}$`),
		gen.RegexMatch(`^[a-z ]{0,20}$`),
		gen.IntRange(0, 4),
	))

	properties.Property("styles keep declaration order", prop.ForAll(
		func(paths []string) bool {
			var b strings.Builder
			for _, p := range paths {
				b.WriteString(`<style src="` + p + `"/>`)
			}
			got := section.Extract(b.String()).Styles
			if len(got) != len(paths) {
				return false
			}
			for i := range paths {
				if got[i] != paths[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(5, gen.RegexMatch(`^/[a-z]{1,8}\.css$`)),
	))

	properties.TestingRun(t)
}
