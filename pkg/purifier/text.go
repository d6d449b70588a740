package purifier

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// DefaultHighlightClass is the class HighlightWithClass applies when none is given.
	DefaultHighlightClass = "bg-warning text-dark px-1 rounded"

	// DefaultDateTimeLayout is the layout FormatDateTime uses when none is given.
	DefaultDateTimeLayout = "2006-01-02 15:04"

	defaultTruncateLength = 100
	defaultTruncateSuffix = "..."
)

// HighlightOption configures Highlight.
type HighlightOption func(*highlightConfig)

type highlightConfig struct {
	tag   string
	class string
}

// HighlightTag sets the wrapping element (default "mark").
func HighlightTag(tag string) HighlightOption {
	return func(c *highlightConfig) {
		if tag != "" {
			c.tag = tag
		}
	}
}

// HighlightClass sets a class attribute on the wrapping element.
func HighlightClass(class string) HighlightOption {
	return func(c *highlightConfig) {
		c.class = class
	}
}

// Highlight escapes text and wraps every case-insensitive occurrence of term.
// An empty term returns the escaped text.
func Highlight(text, term string, opts ...HighlightOption) string {
	cfg := highlightConfig{tag: "mark"}
	for _, opt := range opts {
		opt(&cfg)
	}

	escaped := Escape(text)
	if strings.TrimSpace(term) == "" {
		return escaped
	}

	open := "<" + cfg.tag + ">"
	if cfg.class != "" {
		open = "<" + cfg.tag + ` class="` + EscapeAttr(cfg.class) + `">`
	}
	closing := "</" + cfg.tag + ">"

	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(Escape(term)))
	return re.ReplaceAllStringFunc(escaped, func(m string) string {
		return open + m + closing
	})
}

// HighlightWithClass highlights term with a mark element carrying class,
// or DefaultHighlightClass when class is empty.
func HighlightWithClass(text, term, class string) string {
	if class == "" {
		class = DefaultHighlightClass
	}
	return Highlight(text, term, HighlightClass(class))
}

// TruncateOption configures Truncate.
type TruncateOption func(*truncateConfig)

type truncateConfig struct {
	suffix        string
	preserveWords bool
}

// WithSuffix replaces the default "..." suffix.
func WithSuffix(suffix string) TruncateOption {
	return func(c *truncateConfig) {
		c.suffix = suffix
	}
}

// PreserveWords cuts at the last space when it sits beyond 80% of the length.
func PreserveWords() TruncateOption {
	return func(c *truncateConfig) {
		c.preserveWords = true
	}
}

// Truncate shortens text to length characters and appends the suffix.
// A non-positive length means the default of 100.
func Truncate(text string, length int, opts ...TruncateOption) string {
	cfg := truncateConfig{suffix: defaultTruncateSuffix}
	for _, opt := range opts {
		opt(&cfg)
	}
	if length <= 0 {
		length = defaultTruncateLength
	}
	if utf8.RuneCountInString(text) <= length {
		return text
	}

	cut := string([]rune(text)[:length])
	if cfg.preserveWords {
		if i := strings.LastIndex(cut, " "); i >= 0 && utf8.RuneCountInString(cut[:i]) > length*8/10 {
			cut = cut[:i]
		}
	}
	return cut + cfg.suffix
}

// Attr is a single HTML attribute.
type Attr struct {
	Key   string
	Value string
}

// LinkTo builds an anchor element. Text is escaped, url and attribute
// values are attribute-escaped.
func LinkTo(text, url string, attrs ...Attr) string {
	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(EscapeAttr(url))
	b.WriteByte('"')
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(EscapeAttr(a.Value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	b.WriteString(Escape(text))
	b.WriteString("</a>")
	return b.String()
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// FormatDateTime formats v with layout (DefaultDateTimeLayout when empty).
// v may be a time.Time, *time.Time or a string in a common layout. Anything
// else, including nil and unparseable strings, yields fallback.
func FormatDateTime(v any, layout, fallback string) string {
	if layout == "" {
		layout = DefaultDateTimeLayout
	}
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return fallback
		}
		return t.Format(layout)
	case *time.Time:
		if t == nil || t.IsZero() {
			return fallback
		}
		return t.Format(layout)
	case string:
		for _, l := range dateLayouts {
			if parsed, err := time.Parse(l, strings.TrimSpace(t)); err == nil {
				return parsed.Format(layout)
			}
		}
	}
	return fallback
}

// NumberWithDelimiter groups the integer part of v by thousands.
// Empty delimiter and separator default to "," and ".".
func NumberWithDelimiter(v any, delimiter, separator string) string {
	if delimiter == "" {
		delimiter = ","
	}
	if separator == "" {
		separator = "."
	}

	var s string
	switch n := v.(type) {
	case float32:
		s = strconv.FormatFloat(float64(n), 'f', -1, 32)
	case float64:
		s = strconv.FormatFloat(n, 'f', -1, 64)
	default:
		s = fmt.Sprint(v)
	}

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(delimiter)
		}
		b.WriteRune(r)
	}

	out := sign + b.String()
	if hasFrac {
		out += separator + frac
	}
	return out
}

// Pluralize returns "1 singular" or "N plural". Without an explicit plural
// an "s" is appended to singular.
func Pluralize(count int, singular string, plural ...string) string {
	if count == 1 {
		return "1 " + singular
	}
	word := singular + "s"
	if len(plural) > 0 && plural[0] != "" {
		word = plural[0]
	}
	return strconv.Itoa(count) + " " + word
}
