// Package renderer turns a parsed .hyr template into a full HTML page.
//
// A render binds the caller's locals into a fresh Scope, resolves the
// <require file="..."/> directives of the head fragments, evaluates the
// transmuter section, expands placeholders and component tags in the
// displayer section and splices the results into a shared layout document.
//
// # Layout slots
//
// The layout carries literal slot tokens, each replaced once:
//
//	<hyraft styles="css">        stylesheet links
//	<hyraft content="hyraft">    rendered displayer
//	<hyraft script="javascript"> required libraries and manifestor script
//	<hyraft meta="tags">         rendered head fragment (optional)
//
// Without a meta slot the head fragment goes right before the styles slot,
// or before </head> when there is no styles slot either.
//
// # Placeholders and components
//
// [.name.] resolves against callables first and bound values second. An
// unresolved placeholder is left untouched so a later pass can fill it.
//
// A self-closing tag such as <user-card name="Ada"/> calls the component
// registered for "user-card" (also reachable as display_user_card). Without
// a component it degrades to
//
//	<div class="user-card" name="Ada">Ada</div>
//
// Void HTML elements (<br/>, <meta .../>, <img .../> ...) stay verbatim
// unless a component is registered for them.
//
// # Usage
//
//	r := renderer.New(
//		renderer.WithFinder(display.NewFinder(os.DirFS("."))),
//		renderer.WithComponent("user-card", func(a renderer.Attrs) string {
//			return "<article>" + purifier.Escape(a.Value("name")) + "</article>"
//		}),
//	)
//	html, err := r.Render(ctx, layout, section.Extract(src), map[string]any{"user": "Ada"})
//	if errors.Is(err, renderer.ErrTemplateNotFound) {
//		// 404
//	}
//
// Renderer is safe for concurrent use; all per-render state lives in the
// Scope created by each call.
package renderer
