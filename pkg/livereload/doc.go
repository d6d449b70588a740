// Package livereload pushes reload notifications to browsers over WebSocket.
//
// Mount the Hub on a path, inject Script(path) into pages served in
// development and call Reload when templates change:
//
//	hub := livereload.New(livereload.WithLogger(log))
//	defer hub.Close()
//	r.Handle(livereload.DefaultPath, hub)
//	comp.Watch(ctx, hub.Reload)
package livereload
