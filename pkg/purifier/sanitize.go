package purifier

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	strictPolicy *bluemonday.Policy
	ugcPolicy    *bluemonday.Policy
	markdown     goldmark.Markdown
	initOnce     sync.Once
)

func initShared() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
		ugcPolicy = bluemonday.UGCPolicy()
		markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
}

// Sanitize strips scripts, event handlers and unsafe URLs from user markup
// while keeping common formatting elements.
func Sanitize(s string) string {
	initShared()
	return ugcPolicy.Sanitize(s)
}

// StripTags removes all markup and returns plain text.
func StripTags(s string) string {
	initShared()
	return strictPolicy.Sanitize(s)
}

// Markdown renders src as HTML. Raw HTML in src is omitted from the output.
func Markdown(src string) (string, error) {
	initShared()
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("purifier: render markdown: %w", err)
	}
	return buf.String(), nil
}
