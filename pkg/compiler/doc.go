// Package compiler renders .hyr template files into the shared layout.
//
// A Compiler owns the file-level view of the renderer: it finds templates
// through a display.Finder, keeps parsed sections and the layout in memory,
// and caches whole pages that do not depend on request data.
//
//	c := compiler.New(os.DirFS(root),
//		compiler.WithLayout("public/index.html"),
//		compiler.WithRenderer(r),
//	)
//	if err := c.Preload(ctx); err != nil {
//		return err
//	}
//	html, err := c.Compile(ctx, "articles/index", map[string]any{"articles": list})
//
// Preload parses every template in parallel and renders the ones without a
// transmuter section into the page cache. Cached pages are only served for
// calls without locals and view-models, so they never differ from a fresh
// render.
//
// In development Watch evicts changed files from the caches and reports them,
// which is how the live reload hub learns about edits.
package compiler
