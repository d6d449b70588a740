// Package hyraft is a web framework built around .hyr templates.
//
// A .hyr file carries its page in tagged sections: head fragments in
// <metadata html> and <metas html>, markup in <displayer html>, view-model
// code in <transmuter go> and client script in <manifestor js>. The
// compiler renders a template against request locals and splices the result
// into a shared layout.
//
// # Quick Start
//
//	c := compiler.New(os.DirFS("."), compiler.WithRoot("."))
//
//	app := hyraft.New(
//	    hyraft.WithCompiler(c),
//	    hyraft.WithWebRoutes(hyraft.DrawWeb(func(r *hyraft.WebRouter) {
//	        r.GET("/", home)
//	        r.GET("/articles/:id", showArticle, hyraft.Template("articles/show"))
//	    })),
//	    hyraft.WithAPIRoutes(hyraft.DrawAPI(func(r *hyraft.APIRouter) {
//	        r.GET("/articles", listArticles)
//	    })),
//	    hyraft.WithStaticFiles("/", os.DirFS("."), "public"),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Handlers
//
// Web handlers return a [Result]. Display names the template to render and
// Locals are bound before the transmuter runs:
//
//	func showArticle(r *hyraft.Request) (hyraft.Result, error) {
//	    id := hyraft.Param[int](r, 0)
//	    a, err := store.Article(r.Context(), id)
//	    if err != nil {
//	        return hyraft.Result{}, hyraft.ErrNotFound("article not found")
//	    }
//	    return hyraft.Render("articles/show", map[string]any{"article": a}), nil
//	}
//
// API handlers return an [APIResult] encoded as JSON. Route parameters are
// positional in both routers.
//
// # Errors
//
// A handler error carrying an [HTTPError] answers with its code, anything
// else with 500. Missing templates answer 404. Register per-status templates
// with [WithErrorTemplate]; a built-in page is used otherwise.
//
// # Server
//
// Run blocks until SIGINT or SIGTERM and then shuts down gracefully,
// running shutdown hooks and cleanup functions.
package hyraft
