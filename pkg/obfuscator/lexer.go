package obfuscator

import "strings"

type segKind uint8

const (
	segCode segKind = iota
	segDouble
	segSingle
	segTemplate
	segRegexp
)

type segment struct {
	kind segKind
	text string
}

// lex splits src into code and literal segments. Comments are replaced by a
// single space so adjacent tokens never merge.
func lex(src string) []segment {
	var (
		segs []segment
		code strings.Builder
	)
	flush := func() {
		if code.Len() > 0 {
			segs = append(segs, segment{kind: segCode, text: code.String()})
			code.Reset()
		}
	}
	literal := func(kind segKind, text string) {
		flush()
		segs = append(segs, segment{kind: kind, text: text})
	}

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				i = len(src)
			} else {
				i += end + 4
			}
			code.WriteByte(' ')
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				i = len(src)
			} else {
				i += end
			}
		case c == '/' && regexpAllowed(code.String(), segs):
			n := scanRegexp(src[i:])
			literal(segRegexp, src[i:i+n])
			i += n
		case c == '"':
			n := scanQuoted(src[i:], '"')
			literal(segDouble, src[i:i+n])
			i += n
		case c == '\'':
			n := scanQuoted(src[i:], '\'')
			literal(segSingle, src[i:i+n])
			i += n
		case c == '`':
			n := scanQuoted(src[i:], '`')
			literal(segTemplate, src[i:i+n])
			i += n
		default:
			code.WriteByte(c)
			i++
		}
	}
	flush()
	return segs
}

// scanQuoted returns the length of the literal opening at s[0], including
// both quotes. Unterminated single-line literals end at the newline.
func scanQuoted(s string, quote byte) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		case '\n':
			if quote != '`' {
				return i
			}
		}
	}
	return len(s)
}

func scanRegexp(s string) int {
	inClass := false
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '\n':
			return i
		case '/':
			if inClass {
				continue
			}
			i++
			for i < len(s) && isIdentPart(s[i]) {
				i++
			}
			return i
		}
	}
	return len(s)
}

// regexpAllowed reports whether a slash at this point starts a regular
// expression literal rather than a division.
func regexpAllowed(pending string, segs []segment) bool {
	prev := strings.TrimRight(pending, " \t\r\n\f\v")
	if prev == "" {
		if pending == "" && len(segs) > 0 {
			return false
		}
		for k := len(segs) - 1; k >= 0; k-- {
			if segs[k].kind != segCode {
				return false
			}
			if p := strings.TrimRight(segs[k].text, " \t\r\n\f\v"); p != "" {
				prev = p
				break
			}
		}
		if prev == "" {
			return true
		}
	}
	last := prev[len(prev)-1]
	if strings.IndexByte("(,=:[!&|?{};+-*%<>~^", last) >= 0 {
		return true
	}
	for _, kw := range []string{"return", "typeof", "case", "in", "of", "void", "delete"} {
		if strings.HasSuffix(prev, kw) && (len(prev) == len(kw) || !isIdentPart(prev[len(prev)-len(kw)-1])) {
			return true
		}
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
