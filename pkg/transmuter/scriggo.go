package transmuter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/open2b/scriggo"
	"github.com/open2b/scriggo/native"

	"github.com/dmitrymomot/hyraft/pkg/cache"
	"github.com/dmitrymomot/hyraft/pkg/purifier"
)

const programName = "transmuter.txt"

type scopeKey struct{}

// WithScope attaches a scope to ctx; the Scriggo globals read it from there.
func WithScope(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// ScopeFrom returns the scope attached to ctx.
func ScopeFrom(ctx context.Context) (Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(Scope)
	return s, ok
}

// Scriggo evaluates view-model code as Scriggo text templates.
type Scriggo struct {
	globals  native.Declarations
	programs cache.Cache[*scriggo.Template]
	ttl      time.Duration
}

// ScriggoOption configures a Scriggo evaluator.
type ScriggoOption func(*Scriggo)

// WithGlobals adds declarations visible to view-model code.
func WithGlobals(decls native.Declarations) ScriggoOption {
	return func(s *Scriggo) {
		for k, v := range decls {
			s.globals[k] = v
		}
	}
}

// WithProgramCache replaces the compiled program cache.
func WithProgramCache(c cache.Cache[*scriggo.Template], ttl time.Duration) ScriggoOption {
	return func(s *Scriggo) {
		s.programs = c
		s.ttl = ttl
	}
}

// NewScriggo creates the default evaluator.
func NewScriggo(opts ...ScriggoOption) *Scriggo {
	s := &Scriggo{
		globals:  builtins(),
		programs: cache.NewMemory[*scriggo.Template](cache.WithMaxEntries(512)),
		ttl:      -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate compiles src (cached by content hash) and runs it with scope.
func (s *Scriggo) Evaluate(ctx context.Context, src string, scope Scope) error {
	if strings.TrimSpace(src) == "" {
		return nil
	}

	program, err := s.compile(ctx, src)
	if err != nil {
		return errors.Join(ErrEvaluation, err)
	}
	if err := program.Run(io.Discard, nil, &scriggo.RunOptions{Context: WithScope(ctx, scope)}); err != nil {
		return errors.Join(ErrEvaluation, err)
	}
	return nil
}

func (s *Scriggo) compile(ctx context.Context, src string) (*scriggo.Template, error) {
	sum := sha256.Sum256([]byte(src))
	key := hex.EncodeToString(sum[:])

	return cache.GetOrSet(ctx, s.programs, key, func(context.Context) (*scriggo.Template, time.Duration, error) {
		files := scriggo.Files{programName: []byte(ExpandHTMLBlocks(src))}
		program, err := scriggo.BuildTemplate(files, programName, &scriggo.BuildOptions{Globals: s.globals})
		if err != nil {
			return nil, 0, fmt.Errorf("compile: %w", err)
		}
		return program, s.ttl, nil
	})
}

// Close releases the program cache.
func (s *Scriggo) Close() error {
	return s.programs.Close()
}

func scopeOf(env native.Env) Scope {
	if s, ok := ScopeFrom(env.Context()); ok {
		return s
	}
	return nopScope{}
}

func builtins() native.Declarations {
	return native.Declarations{
		"set": func(env native.Env, name string, value any) {
			scopeOf(env).Set(name, value)
		},
		"get": func(env native.Env, name string) any {
			v, _ := scopeOf(env).Get(name)
			return v
		},
		"has": func(env native.Env, name string) bool {
			_, ok := scopeOf(env).Get(name)
			return ok
		},
		"str": func(env native.Env, name string) string {
			v, ok := scopeOf(env).Get(name)
			if !ok || v == nil {
				return ""
			}
			return fmt.Sprint(v)
		},
		"callable": func(env native.Env, name string, fn func() string) {
			scopeOf(env).Set(name, fn)
		},
		"component": func(env native.Env, tag string, fn func(attrs map[string]string) string) {
			if !strings.HasPrefix(tag, "display_") {
				tag = "display_" + tag
			}
			scopeOf(env).Set(tag, fn)
		},
		"call": func(env native.Env, name string) string {
			out, _ := scopeOf(env).Call(name)
			return out
		},
		"escape":      purifier.Escape,
		"escape_attr": purifier.EscapeAttr,
		"escape_js":   purifier.EscapeJS,
		"strip_tags":  purifier.StripTags,
		"sanitize":    purifier.Sanitize,
		"truncate": func(text string, n int) string {
			return purifier.Truncate(text, n, purifier.PreserveWords())
		},
		"link_to": func(text, url string) string {
			return purifier.LinkTo(text, url)
		},
		"pluralize": func(count int, singular string) string {
			return purifier.Pluralize(count, singular)
		},
		"number_with_delimiter": func(v any) string {
			return purifier.NumberWithDelimiter(v, "", "")
		},
		"markdown": func(env native.Env, src string) string {
			out, err := purifier.Markdown(src)
			if err != nil {
				env.Fatal(err)
			}
			return out
		},
	}
}

type nopScope struct{}

func (nopScope) Get(string) (any, bool)     { return nil, false }
func (nopScope) Set(string, any)            {}
func (nopScope) Call(string) (string, bool) { return "", false }
