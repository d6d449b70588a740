package purifier

import "strings"

var (
	htmlReplacer = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
	)
	attrReplacer = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
		"/", "&#x2F;",
	)
	jsReplacer = strings.NewReplacer(
		`\`, `\\`,
		"'", `\'`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"<", `\u003C`,
	)
)

// Escape escapes s for use as HTML element content.
func Escape(s string) string {
	return htmlReplacer.Replace(s)
}

// EscapeAttr escapes s for use inside a quoted attribute value.
func EscapeAttr(s string) string {
	return attrReplacer.Replace(s)
}

// EscapeJS escapes s for use inside a JavaScript string literal.
func EscapeJS(s string) string {
	return jsReplacer.Replace(s)
}
