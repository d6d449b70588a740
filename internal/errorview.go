package internal

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// ErrorView is the page served for an error status without a custom
// template.
func ErrorView(status int, title, message, path string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		code := strconv.Itoa(status)

		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
		b.WriteString("  <meta charset=\"utf-8\"/>\n")
		b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>\n")
		b.WriteString("  <title>" + code + " " + templ.EscapeString(title) + "</title>\n")
		b.WriteString("  <style>body{font-family:system-ui,sans-serif;margin:0;display:flex;min-height:100vh;align-items:center;justify-content:center;background:#f6f7f9;color:#222}main{text-align:center;padding:2rem}h1{font-size:4rem;margin:0}p{color:#555}code{background:#eceef1;padding:.1rem .4rem;border-radius:4px}</style>\n")
		b.WriteString("</head>\n<body>\n  <main>\n")
		b.WriteString("    <h1>" + code + "</h1>\n")
		b.WriteString("    <h2>" + templ.EscapeString(title) + "</h2>\n")
		if message != "" {
			b.WriteString("    <p>" + templ.EscapeString(message) + "</p>\n")
		}
		if path != "" {
			b.WriteString("    <p><code>" + templ.EscapeString(path) + "</code></p>\n")
		}
		b.WriteString("    <p><a href=\"/\">Home</a></p>\n")
		b.WriteString("  </main>\n</body>\n</html>\n")

		_, err := io.WriteString(w, b.String())
		return err
	})
}
