package transmuter

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// Scope is the per-render state view-model code reads and writes.
type Scope interface {
	Get(name string) (any, bool)
	Set(name string, value any)
	// Call invokes a registered callable and returns its output.
	Call(name string) (string, bool)
}

// Evaluator runs view-model source against a scope.
type Evaluator interface {
	Evaluate(ctx context.Context, src string, scope Scope) error
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(ctx context.Context, src string, scope Scope) error

func (f EvaluatorFunc) Evaluate(ctx context.Context, src string, scope Scope) error {
	return f(ctx, src, scope)
}

var htmlBlockRe = regexp.MustCompile(`(?s)<html>(.*?)</html>`)

// ExpandHTMLBlocks replaces every <html>...</html> block with a Go string
// literal of its content: a raw string, or an interpreted one when the
// content holds a backtick.
func ExpandHTMLBlocks(src string) string {
	return htmlBlockRe.ReplaceAllStringFunc(src, func(m string) string {
		body := htmlBlockRe.FindStringSubmatch(m)[1]
		if strings.Contains(body, "`") {
			return strconv.Quote(body)
		}
		return "`" + body + "`"
	})
}
