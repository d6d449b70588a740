package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hyraft/pkg/router"
)

func TestAPI_Resolve(t *testing.T) {
	t.Parallel()

	api := router.DrawAPI(func(r *router.API[string]) {
		r.GET("/articles", "list", router.Action("index"))
		r.GET("/articles/:id", "show", router.Action("show"))
		r.POST("/articles", "create")
		r.GET("/articles/:id/comments/:cid", "comment")
		r.DELETE("/articles/:id", "delete")
		r.GET("/v1.0/ping", "ping")
	})

	tests := []struct {
		name     string
		method   string
		path     string
		handler  string
		captures []string
	}{
		{"exact", "GET", "/articles", "list", []string{}},
		{"param", "GET", "/articles/42", "show", []string{"42"}},
		{"query stripped", "GET", "/articles/42?full=1", "show", []string{"42"}},
		{"method matters", "POST", "/articles", "create", []string{}},
		{"lowercase method", "delete", "/articles/7", "delete", []string{"7"}},
		{"positional captures", "GET", "/articles/1/comments/9", "comment", []string{"1", "9"}},
		{"literal dot", "GET", "/v1.0/ping", "ping", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			route, captures, ok := api.Resolve(tt.method, tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.handler, route.Handler)
			assert.Equal(t, tt.captures, captures)
		})
	}

	misses := []struct{ method, path string }{
		{"GET", "/articles/42/extra"},
		{"PUT", "/articles/42"},
		{"GET", "/v1x0/ping"},
		{"GET", "/articles/"},
	}
	for _, m := range misses {
		_, _, ok := api.Resolve(m.method, m.path)
		assert.False(t, ok, "%s %s", m.method, m.path)
	}

	route, _, ok := api.Resolve("GET", "/articles")
	require.True(t, ok)
	assert.Equal(t, "index", route.Action)
	assert.Equal(t, "GET", route.Method)
}

func TestAPI_ExactBeforePattern(t *testing.T) {
	t.Parallel()

	api := router.DrawAPI(func(r *router.API[string]) {
		r.GET("/users/:id", "show")
		r.GET("/users/me", "me")
	})

	route, captures, ok := api.Resolve("GET", "/users/me")
	require.True(t, ok)
	assert.Equal(t, "me", route.Handler)
	assert.Empty(t, captures)
}

func TestWeb_Resolve(t *testing.T) {
	t.Parallel()

	web := router.DrawWeb(func(r *router.Web[string]) {
		r.GET("/", "home", router.Template("home/index"))
		r.GET("/users/:id", "user")
		r.GET("/files/*", "files")
		r.GET("/users/new", "new-user")
		r.POST("/users/:id/", "update-user")
		r.GET("/docs/:section/*", "docs")
	})

	tests := []struct {
		name     string
		method   string
		path     string
		handler  string
		captures []string
	}{
		{"root", "GET", "/", "home", []string{}},
		{"root without slash", "GET", "", "home", []string{}},
		{"exact beats param", "GET", "/users/new", "new-user", []string{}},
		{"param", "GET", "/users/7", "user", []string{"7"}},
		{"trailing slash", "GET", "/users/7/", "user", []string{"7"}},
		{"registered with trailing slash", "POST", "/users/7", "update-user", []string{"7"}},
		{"wildcard", "GET", "/files/a/b/c", "files", []string{"a/b/c"}},
		{"wildcard empty rest", "GET", "/files", "files", []string{""}},
		{"wildcard after param segment is literal", "GET", "/docs/:section/x/y", "docs", []string{"x/y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			route, captures, ok := web.Resolve(tt.method, tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.handler, route.Handler)
			assert.Equal(t, tt.captures, captures)
		})
	}

	for _, path := range []string{"/users/7/edit", "/missing", "/docs/a/b"} {
		_, _, ok := web.Resolve("GET", path)
		assert.False(t, ok, path)
	}

	route, _, ok := web.Resolve("GET", "/")
	require.True(t, ok)
	assert.Equal(t, "home/index", route.Template)
}

func TestWeb_ParamBeforeWildcard(t *testing.T) {
	t.Parallel()

	web := router.DrawWeb(func(r *router.Web[int]) {
		r.GET("/*", 1)
		r.GET("/:page", 2)
	})

	route, captures, ok := web.Resolve("GET", "/about")
	require.True(t, ok)
	assert.Equal(t, 2, route.Handler)
	assert.Equal(t, []string{"about"}, captures)

	route, captures, ok = web.Resolve("GET", "/a/b")
	require.True(t, ok)
	assert.Equal(t, 1, route.Handler)
	assert.Equal(t, []string{"a/b"}, captures)

	route, captures, ok = web.Resolve("GET", "/")
	require.True(t, ok)
	assert.Equal(t, 1, route.Handler)
	assert.Equal(t, []string{""}, captures)
}

func TestFrozen(t *testing.T) {
	t.Parallel()

	api := router.DrawAPI(func(r *router.API[string]) { r.GET("/a", "a") })
	assert.True(t, api.Frozen())
	assert.PanicsWithValue(t, router.ErrFrozen, func() { api.GET("/b", "b") })

	web := router.DrawWeb(func(r *router.Web[string]) { r.GET("/a", "a") })
	assert.PanicsWithValue(t, router.ErrFrozen, func() { web.POST("/b", "b") })

	open := router.NewWeb[string]()
	open.GET("/x", "x")
	assert.False(t, open.Frozen())
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	web := router.DrawWeb(func(r *router.Web[string]) {
		r.GET("/b/", "b", router.Action("show"))
		r.PUT("/a", "a")
	})
	routes := web.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/b", routes[0].Path)
	assert.Equal(t, "show", routes[0].Action)
	assert.Equal(t, "PUT", routes[1].Method)

	api := router.DrawAPI(func(r *router.API[string]) { r.PATCH("/p/:id", "p") })
	require.Len(t, api.Routes(), 1)
	assert.Equal(t, "PATCH", api.Routes()[0].Method)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/", router.Normalize(""))
	assert.Equal(t, "/", router.Normalize("///"))
	assert.Equal(t, "/a/b", router.Normalize("/a/b//"))
}
