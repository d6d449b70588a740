// Package purifier holds the text helpers available to templates.
//
// Escaping helpers cover the three output contexts a template writes into:
//
//	purifier.Escape(s)     // element content
//	purifier.EscapeAttr(s) // attribute values
//	purifier.EscapeJS(s)   // string literals inside <script>
//
// Formatting helpers (Truncate, LinkTo, FormatDateTime, NumberWithDelimiter,
// Pluralize, Highlight) are pure functions of their input. Sanitize and
// StripTags clean untrusted markup with bluemonday policies, Markdown renders
// CommonMark with GitHub extensions via goldmark, and FormatNumber applies
// locale-aware digit grouping from golang.org/x/text.
package purifier
