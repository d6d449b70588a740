// Package internal provides the core types and implementation for the hyraft framework.
//
// This package is internal and should not be used directly. Import "github.com/dmitrymomot/hyraft"
// instead, which re-exports the public API.
//
// # Handlers
//
// Web handlers return a Result and API handlers an APIResult:
//
//	func (h *Articles) Show(r *hyraft.Request) (hyraft.Result, error) {
//	    a, err := h.repo.Get(r.Context(), r.Param(0))
//	    if err != nil {
//	        return hyraft.Result{}, hyraft.ErrNotFound("article not found")
//	    }
//	    return hyraft.Render("articles/show", map[string]any{"article": a}), nil
//	}
//
// # Web dispatch
//
// For a request matched by the web router the WebDispatcher:
//
//  1. serves the 404 error page when no route matches;
//  2. serves the error page for the handler error's HTTPError code, or 500;
//  3. compiles the Result's Display template (or the route's default
//     template) as text/html, mapping a missing template to 404;
//  4. redirects for a 3xx status with a Location header;
//  5. serves the error page for any other status of 400 and above;
//  6. answers with the status and an empty body otherwise.
//
// Error pages use the template registered with WithErrorTemplate for the
// status and fall back to a built-in page.
//
// # API dispatch
//
// The APIDispatcher is mounted at the API prefix ("/api"), matches the path
// below it and encodes APIResult bodies as JSON. Misses answer
// {"error":"Not Found"} with 404 and handler errors {"error": message}.
//
// # Application Structure
//
//	app := internal.New(
//	    internal.WithCompiler(c),
//	    internal.WithWebRoutes(web),
//	    internal.WithAPIRoutes(api),
//	    internal.WithStaticFiles("/", os.DirFS("."), "public"),
//	    internal.WithHealthChecks(),
//	)
//	err := app.Run(":8080", internal.ShutdownTimeout(10*time.Second))
//
// Run blocks until SIGINT or SIGTERM, then stops the server and runs the
// shutdown hooks.
package internal
