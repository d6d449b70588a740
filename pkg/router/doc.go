// Package router maps an HTTP method and path to a handler.
//
// Two tables with different matching rules are provided, both generic over
// the handler type so the dispatch layer decides what a handler is.
//
// API routes match exactly first, then by pattern in registration order;
// ":name" segments become positional captures:
//
//	api := router.DrawAPI(func(r *router.API[Handler]) {
//		r.GET("/articles", listArticles)
//		r.GET("/articles/:id", showArticle)
//	})
//	route, params, ok := api.Resolve("GET", "/articles/42?full=1") // params == ["42"]
//
// Web routes drop trailing slashes and try three tiers in order: literal
// paths, ":name" parameter paths of the same segment count, and paths with a
// trailing "*" that captures the rest of the request path as one value:
//
//	web := router.DrawWeb(func(r *router.Web[Handler]) {
//		r.GET("/", home, router.Template("home/index"))
//		r.GET("/users/:id", showUser, router.Action("show"))
//		r.GET("/files/*", serveFile)
//	})
//	route, params, ok := web.Resolve("GET", "/files/a/b/c") // params == ["a/b/c"]
//
// Tables built with DrawAPI and DrawWeb are frozen: registering another
// route panics with ErrFrozen. Resolve never mutates a table and is safe
// for concurrent use once registration is finished.
package router
