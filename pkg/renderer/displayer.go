package renderer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrymomot/hyraft/pkg/purifier"
)

var (
	placeholderRe = regexp.MustCompile(`\[\.\s*(\w+)\s*\.\]`)
	componentRe   = regexp.MustCompile(`<([\w-]+)(\s+[^>]*)?\s*/>`)
	attrRe        = regexp.MustCompile(`([\w:-]+)="([^"]*)"`)
)

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {}, "img": {},
	"input": {}, "link": {}, "meta": {}, "param": {}, "source": {}, "track": {}, "wbr": {},
}

// RenderDisplayer expands placeholders and component tags in html using
// only the renderer's callables and components.
func (r *Renderer) RenderDisplayer(html string) string {
	return renderDisplayer(newScope(r, nil), html)
}

func renderDisplayer(s *Scope, html string) string {
	if html == "" {
		return ""
	}
	out := placeholderRe.ReplaceAllStringFunc(html, func(m string) string {
		name := placeholderRe.FindStringSubmatch(m)[1]
		if v, ok := s.Call(name); ok {
			return v
		}
		if v, ok := s.Get(name); ok {
			if v == nil {
				return ""
			}
			return fmt.Sprint(v)
		}
		return m
	})
	return componentRe.ReplaceAllStringFunc(out, func(m string) string {
		sub := componentRe.FindStringSubmatch(m)
		return renderComponent(s, m, sub[1], ParseAttrs(sub[2]))
	})
}

func renderComponent(s *Scope, match, tag string, attrs Attrs) string {
	if fn, ok := s.Component(tag); ok {
		return fn(attrs)
	}
	if _, void := voidElements[strings.ToLower(tag)]; void {
		return match
	}

	class := tag
	var b strings.Builder
	for _, a := range attrs {
		if a.Key == "class" {
			class += " " + a.Value
			continue
		}
		fmt.Fprintf(&b, ` %s="%s"`, a.Key, a.Value)
	}
	label := attrs.Value("name")
	if label == "" {
		label = tag
	}
	return fmt.Sprintf(`<div class="%s"%s>%s</div>`, class, b.String(), purifier.Escape(label))
}

// ParseAttrs scans key="value" pairs. A repeated key keeps its first
// position and takes the last value; anything else is ignored.
func ParseAttrs(src string) Attrs {
	matches := attrRe.FindAllStringSubmatch(src, -1)
	if len(matches) == 0 {
		return nil
	}
	attrs := make(Attrs, 0, len(matches))
	index := make(map[string]int, len(matches))
	for _, m := range matches {
		if i, ok := index[m[1]]; ok {
			attrs[i].Value = m[2]
			continue
		}
		index[m[1]] = len(attrs)
		attrs = append(attrs, Attr{Key: m[1], Value: m[2]})
	}
	return attrs
}
