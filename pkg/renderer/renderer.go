package renderer

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/hyraft/pkg/display"
	"github.com/dmitrymomot/hyraft/pkg/jslib"
	"github.com/dmitrymomot/hyraft/pkg/obfuscator"
	"github.com/dmitrymomot/hyraft/pkg/purifier"
	"github.com/dmitrymomot/hyraft/pkg/section"
	"github.com/dmitrymomot/hyraft/pkg/transmuter"
)

// Layout slot tokens.
const (
	StylesSlot  = `<hyraft styles="css">`
	ContentSlot = `<hyraft content="hyraft">`
	ScriptSlot  = `<hyraft script="javascript">`
	MetaSlot    = `<hyraft meta="tags">`
)

const (
	headClose  = "</head>"
	tracerName = "github.com/dmitrymomot/hyraft/pkg/renderer"
)

var titleRe = regexp.MustCompile(`(?s)<title>(.*?)</title>`)

// Renderer renders parsed templates into layouts.
type Renderer struct {
	method     obfuscator.Method
	obf        *obfuscator.Obfuscator
	libs       *jslib.Registry
	eval       transmuter.Evaluator
	ownsEval   bool
	finder     *display.Finder
	components map[string]Component
	callables  map[string]Callable
	styles     StyleResolver
	logger     *slog.Logger
	tracer     trace.Tracer
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		method:     obfuscator.MethodMultiLayer,
		libs:       jslib.Default(),
		components: map[string]Component{},
		callables:  map[string]Callable{},
		logger:     slog.Default(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.eval == nil {
		r.eval = transmuter.NewScriggo()
		r.ownsEval = true
	}
	return r
}

// Method returns the obfuscation method applied to required libraries.
func (r *Renderer) Method() obfuscator.Method { return r.method }

// Close releases the default evaluator. Evaluators passed with
// WithEvaluator are left to their owner.
func (r *Renderer) Close() error {
	if c, ok := r.eval.(io.Closer); ok && r.ownsEval {
		return c.Close()
	}
	return nil
}

// Render renders tpl with locals into a copy of layout.
func (r *Renderer) Render(ctx context.Context, layout string, tpl *section.Template, locals map[string]any, opts ...RenderOption) (_ string, err error) {
	ctx, span := r.tracer.Start(ctx, "renderer.Render", trace.WithAttributes(
		attribute.Int("hyraft.locals", len(locals)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if tpl == nil {
		tpl = &section.Template{}
	}
	var cfg renderConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	s := newScope(r, locals)

	head := tpl.Head()
	var scripts []string
	for _, ref := range section.Requires(head) {
		js, err := r.require(ctx, ref, s)
		if errors.Is(err, ErrRequireNotFound) {
			r.logger.WarnContext(ctx, "required file not found",
				slog.String("ref", ref),
				slog.Any("available", r.libs.Names()),
			)
			continue
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(js) != "" {
			scripts = append(scripts, js)
		}
	}
	head = section.StripRequires(head)

	if tpl.HasTransmuter() {
		if err := r.evaluate(ctx, tpl.Transmuter, s); err != nil {
			return "", err
		}
	}
	for _, vm := range cfg.viewModels {
		if err := vm(ctx, s); err != nil {
			return "", errors.Join(ErrEvaluation, err)
		}
	}

	content := renderDisplayer(s, tpl.Displayer)
	styles := r.styleLinks(ctx, tpl.Styles)
	if strings.TrimSpace(tpl.Manifestor) != "" {
		scripts = append(scripts, tpl.Manifestor)
	}
	script := strings.Join(scripts, "\n")
	if strings.TrimSpace(script) != "" {
		script = "<script>" + script + "</script>"
	} else {
		script = ""
	}
	metas := renderDisplayer(s, head)
	title, hasTitle := findTitle(s, metas)

	return assemble(layout, page{
		title:    title,
		hasTitle: hasTitle,
		metas:    metas,
		styles:   styles,
		content:  content,
		script:   script,
	}), nil
}

func (r *Renderer) evaluate(ctx context.Context, src string, s *Scope) error {
	err := r.eval.Evaluate(ctx, src, s)
	if err == nil || errors.Is(err, ErrEvaluation) {
		return err
	}
	return errors.Join(ErrEvaluation, err)
}

func (r *Renderer) obfuscate(src string) string {
	if r.obf != nil {
		return r.obf.Apply(src, r.method)
	}
	return obfuscator.Apply(src, r.method)
}

func (r *Renderer) styleLinks(ctx context.Context, paths []string) string {
	var b strings.Builder
	for _, p := range paths {
		href := p
		if r.styles != nil {
			resolved, err := r.styles(p)
			if err != nil {
				r.logger.WarnContext(ctx, "stylesheet not resolved", slog.String("src", p), slog.String("error", err.Error()))
			} else {
				href = resolved
			}
		}
		b.WriteString(`<link rel="stylesheet" href="`)
		b.WriteString(purifier.Escape(href))
		b.WriteString(`">`)
	}
	return b.String()
}

// findTitle picks a title written in the head fragment first, then a bound
// page_title value, then a page_title callable.
func findTitle(s *Scope, metas string) (string, bool) {
	if m := titleRe.FindStringSubmatch(metas); m != nil {
		return m[1], true
	}
	if v, ok := s.Get("page_title"); ok && v != nil {
		return purifier.Escape(fmt.Sprint(v)), true
	}
	if v, ok := s.Call("page_title"); ok {
		return purifier.Escape(v), true
	}
	return "", false
}

type page struct {
	title    string
	hasTitle bool
	metas    string
	styles   string
	content  string
	script   string
}

type edit struct {
	start, end int
	text       string
}

// assemble applies all layout edits in one pass over positions found in
// the untouched layout, so inserted content is never searched again.
func assemble(layout string, p page) string {
	var edits []edit
	insert := func(i int, text string) { edits = append(edits, edit{start: i, end: i, text: text}) }
	replace := func(i int, token, text string) { edits = append(edits, edit{start: i, end: i + len(token), text: text}) }

	if p.hasTitle {
		tag := "<title>" + p.title + "</title>"
		if loc := titleRe.FindStringIndex(layout); loc != nil {
			edits = append(edits, edit{start: loc[0], end: loc[1], text: tag})
		} else if i := strings.Index(layout, headClose); i >= 0 {
			insert(i, "  "+tag+"\n")
		}
	}

	if p.metas != "" {
		if i := strings.Index(layout, MetaSlot); i >= 0 {
			replace(i, MetaSlot, p.metas)
		} else if i := strings.Index(layout, StylesSlot); i >= 0 {
			insert(i, p.metas+"\n")
		} else if i := strings.Index(layout, headClose); i >= 0 {
			insert(i, p.metas+"\n")
		}
	}

	for _, slot := range []struct{ token, text string }{
		{StylesSlot, p.styles},
		{ContentSlot, p.content},
		{ScriptSlot, p.script},
	} {
		if i := strings.Index(layout, slot.token); i >= 0 {
			replace(i, slot.token, slot.text)
		}
	}

	slices.SortStableFunc(edits, func(a, b edit) int {
		if c := cmp.Compare(a.start, b.start); c != 0 {
			return c
		}
		return cmp.Compare(a.end-a.start, b.end-b.start)
	})

	var b strings.Builder
	b.Grow(len(layout) + len(p.content) + len(p.script) + len(p.metas) + len(p.styles))
	pos := 0
	for _, e := range edits {
		if e.start < pos {
			continue
		}
		b.WriteString(layout[pos:e.start])
		b.WriteString(e.text)
		pos = e.end
	}
	b.WriteString(layout[pos:])
	return b.String()
}
