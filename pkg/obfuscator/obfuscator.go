package obfuscator

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

const (
	// DefaultParts is the chunk count for MethodSplit.
	DefaultParts = 8

	// MultiLayerParts is the chunk count used by the multi-layer pipeline.
	MultiLayerParts = 6
)

// DefaultRenames maps generic identifiers to the aliases they are shortened to.
var DefaultRenames = map[string]string{
	"NeonPulse":    "NP",
	"signalName":   "sN",
	"initialValue": "iV",
	"element":      "el",
	"property":     "pr",
	"formData":     "fD",
	"callback":     "cb",
	"handler":      "hd",
	"processor":    "pc",
	"action":       "ac",
	"event":        "ev",
}

// DefaultExclusions are never renamed.
var DefaultExclusions = []string{"neonPulse"}

const loaderTemplate = `(function(){
  try {
    var c=%s;
    var s=c.join('');
    var e=document.createElement('script');
    e.textContent=s;
    document.head.appendChild(e);
  } catch(err) {
    console.error('Script load failed:', err);
  }
})();
`

// Obfuscator applies the obfuscation passes. It is safe for concurrent use.
type Obfuscator struct {
	renames map[string]string
	exclude map[string]struct{}
	mangle  bool

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures an Obfuscator.
type Option func(*Obfuscator)

// WithRand sets the random source for number rewriting.
func WithRand(r *rand.Rand) Option {
	return func(o *Obfuscator) {
		o.rng = r
	}
}

// WithSeed makes number rewriting reproducible.
func WithSeed(seed uint64) Option {
	return func(o *Obfuscator) {
		o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithoutNumberMangling disables the number rewriting pass.
func WithoutNumberMangling() Option {
	return func(o *Obfuscator) {
		o.mangle = false
	}
}

// WithRenames merges extra identifier aliases into the rename table.
func WithRenames(renames map[string]string) Option {
	return func(o *Obfuscator) {
		for k, v := range renames {
			o.renames[k] = v
		}
	}
}

// WithExclusions protects names from renaming.
func WithExclusions(names ...string) Option {
	return func(o *Obfuscator) {
		for _, n := range names {
			o.exclude[n] = struct{}{}
		}
	}
}

// New creates an Obfuscator with the default rename table and exclusions.
func New(opts ...Option) *Obfuscator {
	o := &Obfuscator{
		renames: make(map[string]string, len(DefaultRenames)),
		exclude: make(map[string]struct{}, len(DefaultExclusions)),
		mangle:  true,
	}
	for k, v := range DefaultRenames {
		o.renames[k] = v
	}
	for _, n := range DefaultExclusions {
		o.exclude[n] = struct{}{}
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

var std = New()

// Apply obfuscates src with the default Obfuscator.
func Apply(src string, m Method) string { return std.Apply(src, m) }

// MultiLayer runs the full pipeline with the default Obfuscator.
func MultiLayer(src string) string { return std.MultiLayer(src) }

// SplitAndReassemble wraps src in a chunked loader.
func SplitAndReassemble(src string, parts int) string { return std.SplitAndReassemble(src, parts) }

// Apply obfuscates src with method m. Unknown methods fall back to
// MethodMultiLayer.
func (o *Obfuscator) Apply(src string, m Method) string {
	switch m {
	case MethodNone:
		return src
	case MethodSplit:
		return o.SplitAndReassemble(src, DefaultParts)
	default:
		return o.MultiLayer(src)
	}
}

// MultiLayer runs Transform and splits the result into MultiLayerParts chunks.
func (o *Obfuscator) MultiLayer(src string) string {
	return o.SplitAndReassemble(o.Transform(src), MultiLayerParts)
}

// Transform runs every pass except chunk splitting.
func (o *Obfuscator) Transform(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}

	segs := lex(src)
	depth := 0
	var brackets []byte
	for i := range segs {
		switch segs[i].kind {
		case segCode:
			code := compact(segs[i].text)
			code = dropEmptyStatements(code, &depth)
			code = o.rename(code, &brackets)
			if o.mangle {
				code = o.mangleNumbers(code)
			}
			segs[i].text = code
		case segDouble:
			segs[i].text = encodeString(segs[i].text)
		}
	}

	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.text)
	}
	return strings.TrimSpace(b.String())
}

// SplitAndReassemble cuts src into at most parts chunks of equal character
// length and returns a loader that joins and injects them as a script element.
func (o *Obfuscator) SplitAndReassemble(src string, parts int) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	if parts <= 0 {
		parts = DefaultParts
	}

	runes := []rune(src)
	size := (len(runes) + parts - 1) / parts
	chunks := make([]string, 0, parts)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}

	encoded, err := json.Marshal(chunks)
	if err != nil {
		// []string always encodes.
		return src
	}
	return fmt.Sprintf(loaderTemplate, encoded)
}

const punctuation = "=+-*/&|^!<>?{}();:,"

func isPunct(c byte) bool {
	return strings.IndexByte(punctuation, c) >= 0
}

// compact collapses whitespace runs and removes spaces next to punctuation.
// Spaces at the edges of the code segment are kept when the neighbour is a
// literal, and "+ +" / "- -" keep their separator.
func compact(code string) string {
	var collapsed strings.Builder
	collapsed.Grow(len(code))
	inSpace := false
	for i := 0; i < len(code); i++ {
		if isSpace(code[i]) {
			if !inSpace {
				collapsed.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		collapsed.WriteByte(code[i])
	}

	s := collapsed.String()
	var out strings.Builder
	out.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			out.WriteByte(s[i])
			continue
		}
		var prev, next byte
		if i > 0 {
			prev = s[i-1]
		}
		if i+1 < len(s) {
			next = s[i+1]
		}
		if (prev == '+' || prev == '-') && prev == next {
			out.WriteByte(' ')
			continue
		}
		if (prev != 0 && isPunct(prev)) || (next != 0 && isPunct(next)) {
			continue
		}
		out.WriteByte(' ')
	}
	return out.String()
}

// dropEmptyStatements collapses ";;" outside parentheses so for(;;) survives.
func dropEmptyStatements(code string, depth *int) string {
	var out strings.Builder
	out.Grow(len(code))
	var last byte
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch c {
		case '(':
			*depth++
		case ')':
			if *depth > 0 {
				*depth--
			}
		case ';':
			if *depth == 0 && last == ';' {
				continue
			}
		}
		out.WriteByte(c)
		if c != ' ' {
			last = c
		}
	}
	return out.String()
}

// rename replaces allow-listed identifiers. Property accesses, private
// names and object literal keys keep their names. Shorthand properties
// expand to "name:alias" so literals and destructuring keep their keys.
// brackets carries the open bracket stack across code segments.
func (o *Obfuscator) rename(code string, brackets *[]byte) string {
	var out strings.Builder
	out.Grow(len(code))
	for i := 0; i < len(code); {
		c := code[i]
		if c >= '0' && c <= '9' {
			j := i
			for j < len(code) && (isIdentPart(code[j]) || code[j] == '.') {
				j++
			}
			out.WriteString(code[i:j])
			i = j
			continue
		}
		if !isIdentStart(c) {
			trackBracket(brackets, c)
			out.WriteByte(c)
			i++
			continue
		}

		j := i
		for j < len(code) && isIdentPart(code[j]) {
			j++
		}
		name := code[i:j]
		alias, ok := o.renames[name]
		_, excluded := o.exclude[name]
		switch {
		case !ok || excluded || isMemberName(code, i, j):
			out.WriteString(name)
		case isShorthand(code, i, j, *brackets):
			out.WriteString(name + ":" + alias)
		default:
			out.WriteString(alias)
		}
		i = j
	}
	return out.String()
}

func trackBracket(stack *[]byte, c byte) {
	switch c {
	case '(', '[', '{':
		*stack = append(*stack, c)
	case ')', ']', '}':
		if n := len(*stack); n > 0 {
			*stack = (*stack)[:n-1]
		}
	}
}

// isShorthand reports whether the identifier at start:end is a shorthand
// property inside braces, as in {a} or {a, b}.
func isShorthand(code string, start, end int, brackets []byte) bool {
	if len(brackets) == 0 || brackets[len(brackets)-1] != '{' {
		return false
	}
	p := start - 1
	for p >= 0 && code[p] == ' ' {
		p--
	}
	if p < 0 || (code[p] != '{' && code[p] != ',') {
		return false
	}
	n := end
	for n < len(code) && code[n] == ' ' {
		n++
	}
	return n < len(code) && (code[n] == ',' || code[n] == '}')
}

func isMemberName(code string, start, end int) bool {
	p := start - 1
	for p >= 0 && code[p] == ' ' {
		p--
	}
	if p >= 0 {
		switch code[p] {
		case '#':
			return true
		case '.':
			return !(p >= 2 && code[p-1] == '.' && code[p-2] == '.')
		}
	}
	return isObjectKey(code, p, end)
}

// isObjectKey reports whether the token ending at end is a key in an
// object literal: preceded by "{" or "," and followed by ":".
func isObjectKey(code string, prev, end int) bool {
	if prev < 0 || (code[prev] != '{' && code[prev] != ',') {
		return false
	}
	n := end
	for n < len(code) && code[n] == ' ' {
		n++
	}
	return n < len(code) && code[n] == ':'
}

func (o *Obfuscator) mangleNumbers(code string) string {
	var out strings.Builder
	out.Grow(len(code))
	for i := 0; i < len(code); {
		c := code[i]
		if isIdentStart(c) {
			j := i
			for j < len(code) && isIdentPart(code[j]) {
				j++
			}
			out.WriteString(code[i:j])
			i = j
			continue
		}
		if c < '0' || c > '9' {
			out.WriteByte(c)
			i++
			continue
		}

		j := i
		for j < len(code) && code[j] >= '0' && code[j] <= '9' {
			j++
		}
		if j < len(code) && (isIdentPart(code[j]) || code[j] == '.') {
			for j < len(code) && (isIdentPart(code[j]) || code[j] == '.') {
				j++
			}
			out.WriteString(code[i:j])
			i = j
			continue
		}

		lit := code[i:j]
		prev := i - 1
		for prev >= 0 && code[prev] == ' ' {
			prev--
		}
		n, err := strconv.Atoi(lit)
		switch {
		case err != nil, n < 6, n > 99, lit[0] == '0',
			prev >= 0 && code[prev] == '.',
			isObjectKey(code, prev, j):
			out.WriteString(lit)
		default:
			out.WriteString(o.numberForm(n))
		}
		i = j
	}
	return out.String()
}

func (o *Obfuscator) numberForm(n int) string {
	switch o.intN(4) {
	case 0:
		return fmt.Sprintf("(%d + 1)", n-1)
	case 1:
		return fmt.Sprintf("(%d / 2)", n*2)
	case 2:
		return fmt.Sprintf("(%d * 1)", n)
	default:
		return fmt.Sprintf("0x%x", n)
	}
}

func (o *Obfuscator) intN(n int) int {
	if o.rng == nil {
		return rand.IntN(n)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rng.IntN(n)
}

// encodeString re-encodes the characters of a double-quoted literal:
// positions 0, 3, 6... become \x escapes, 1, 4, 7... \u escapes, the rest
// stay literal. Existing escape sequences are copied unchanged.
func encodeString(lit string) string {
	if len(lit) < 2 || lit[len(lit)-1] != '"' {
		return lit
	}
	body := lit[1 : len(lit)-1]

	var b strings.Builder
	b.Grow(len(lit) * 4)
	b.WriteByte('"')
	for i, pos := 0, 0; i < len(body); pos++ {
		if body[i] == '\\' && i+1 < len(body) {
			n := escapeLen(body[i:])
			b.WriteString(body[i : i+n])
			i += n
			continue
		}
		r, size := utf8.DecodeRuneInString(body[i:])
		i += size
		switch pos % 3 {
		case 0:
			if r <= 0xff {
				fmt.Fprintf(&b, `\x%02x`, r)
			} else {
				writeUnicodeEscape(&b, r)
			}
		case 1:
			writeUnicodeEscape(&b, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// escapeLen returns the byte length of the escape sequence at the start of
// s, which begins with a backslash.
func escapeLen(s string) int {
	switch s[1] {
	case 'x':
		return 2 + hexRun(s[2:], 2)
	case 'u':
		if len(s) > 2 && s[2] == '{' {
			if end := strings.IndexByte(s[3:], '}'); end >= 0 {
				return 4 + end
			}
			return 3
		}
		return 2 + hexRun(s[2:], 4)
	case '\r':
		if len(s) > 2 && s[2] == '\n' {
			return 3
		}
	}
	_, size := utf8.DecodeRuneInString(s[1:])
	return 1 + size
}

// hexRun counts the leading hex digits of s, up to limit.
func hexRun(s string, limit int) int {
	n := 0
	for n < limit && n < len(s) && isHex(s[n]) {
		n++
	}
	return n
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func writeUnicodeEscape(b *strings.Builder, r rune) {
	if r > 0xffff {
		fmt.Fprintf(b, `\u{%x}`, r)
		return
	}
	fmt.Fprintf(b, `\u%04x`, r)
}
