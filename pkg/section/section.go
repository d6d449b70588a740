package section

import (
	"regexp"
	"strings"
)

var (
	metadataRe   = regexp.MustCompile(`(?s)<metadata\s+html\b[^>]*>(.*?)</metadata>`)
	metasRe      = regexp.MustCompile(`(?s)<metas\s+html\b[^>]*>(.*?)</metas>`)
	displayerRe  = regexp.MustCompile(`(?s)<displayer\s+html\b[^>]*>(.*?)</displayer>`)
	transmuterRe = regexp.MustCompile(`(?s)<transmuter\s+[\w-]+\b[^>]*>(.*?)</transmuter>`)
	manifestorRe = regexp.MustCompile(`(?s)<manifestor\s+js\b[^>]*>(.*?)</manifestor>`)
	styleRe      = regexp.MustCompile(`<style\s+src="([^"]+)"\s*/?>`)
	requireRe    = regexp.MustCompile(`<require\s+file="([^"]+)"\s*/?>`)
)

// Template is the parsed form of a .hyr source.
type Template struct {
	Metadata   string   `json:"metadata,omitempty"`
	Metas      string   `json:"metas,omitempty"`
	Displayer  string   `json:"displayer,omitempty"`
	Transmuter string   `json:"transmuter,omitempty"`
	Manifestor string   `json:"manifestor,omitempty"`
	Styles     []string `json:"styles,omitempty"`
}

// Extract parses src into its sections. It never fails.
func Extract(src string) *Template {
	t := &Template{
		Metadata:   first(metadataRe, src),
		Metas:      first(metasRe, src),
		Displayer:  first(displayerRe, src),
		Transmuter: first(transmuterRe, src),
		Manifestor: first(manifestorRe, src),
	}
	for _, m := range styleRe.FindAllStringSubmatch(src, -1) {
		t.Styles = append(t.Styles, m[1])
	}
	return t
}

// HasTransmuter reports whether the template carries view-model code.
func (t *Template) HasTransmuter() bool {
	return strings.TrimSpace(t.Transmuter) != ""
}

// Head returns the metadata and metas fragments joined by a newline.
// Empty fragments are skipped.
func (t *Template) Head() string {
	switch {
	case t.Metadata == "":
		return t.Metas
	case t.Metas == "":
		return t.Metadata
	default:
		return t.Metadata + "\n" + t.Metas
	}
}

// Clone returns a deep copy of the template.
func (t *Template) Clone() *Template {
	c := *t
	if t.Styles != nil {
		c.Styles = append([]string(nil), t.Styles...)
	}
	return &c
}

// Requires returns every <require file="X"/> reference in fragment,
// in declaration order.
func Requires(fragment string) []string {
	matches := requireRe.FindAllStringSubmatch(fragment, -1)
	if len(matches) == 0 {
		return nil
	}
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, m[1])
	}
	return refs
}

// StripRequires removes all require directives from fragment.
func StripRequires(fragment string) string {
	return requireRe.ReplaceAllString(fragment, "")
}

func first(re *regexp.Regexp, src string) string {
	m := re.FindStringSubmatch(src)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
