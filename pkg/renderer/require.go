package renderer

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/hyraft/pkg/display"
	"github.com/dmitrymomot/hyraft/pkg/section"
)

// require resolves one <require file="..."/> reference: the built-in
// registry first, then a template file whose transmuter runs in s and whose
// manifestor is obfuscated.
func (r *Renderer) require(ctx context.Context, ref string, s *Scope) (string, error) {
	ctx, span := r.tracer.Start(ctx, "renderer.require", trace.WithAttributes(
		attribute.String("hyraft.require", ref),
	))
	defer span.End()

	name := strings.TrimSuffix(ref, display.DefaultExt)
	if js, ok := r.libs.Get(name, r.obf, r.method); ok {
		span.SetAttributes(attribute.String("hyraft.require.source", "library"))
		return js, nil
	}
	if r.finder == nil {
		return "", ErrRequireNotFound
	}

	_, src, err := r.finder.Read(name)
	if errors.Is(err, display.ErrTemplateNotFound) {
		return "", errors.Join(ErrRequireNotFound, err)
	}
	if err != nil {
		return "", err
	}
	span.SetAttributes(attribute.String("hyraft.require.source", "file"))

	req := section.Extract(src)
	if req.HasTransmuter() {
		if err := r.evaluate(ctx, req.Transmuter, s); err != nil {
			return "", err
		}
	}
	if strings.TrimSpace(req.Manifestor) == "" {
		return "", nil
	}
	return r.obfuscate(req.Manifestor), nil
}
