// Package transmuter evaluates the view-model section of a template.
//
// The section runs once per render against a [Scope] holding the request
// locals. Whatever it stores with set becomes available to [.name.]
// placeholders and component handlers:
//
//	<transmuter go>
//	{% if has("user") %}
//	  {% set("greeting", "Hello, " + str("user")) %}
//	{% end %}
//	{% set("card", <html><b>[.greeting.]</b></html>) %}
//	{% callable("year", func() string { return "2024" }) %}
//	{% component("badge", func(attrs map[string]string) string {
//	  return "<span>" + escape(attrs["label"]) + "</span>"
//	}) %}
//	</transmuter>
//
// callable binds a function that [.year.] placeholders call. component
// binds the handler for <badge .../> tags under display_badge.
//
// The default [Scriggo] evaluator runs the section as a Scriggo text
// template. <html>...</html> blocks are turned into Go string literals
// before compilation. Any [Evaluator] can replace it, including plain Go
// code through [EvaluatorFunc].
package transmuter
