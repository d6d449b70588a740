package hyraft_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hyraft"
	"github.com/dmitrymomot/hyraft/pkg/compiler"
	"github.com/dmitrymomot/hyraft/pkg/logger"
)

func newApp(t *testing.T) *hyraft.App {
	t.Helper()
	fsys := fstest.MapFS{
		"public/index.html": {Data: []byte(`<html><head><title>App</title></head><body><hyraft content="hyraft"></body></html>`)},
		"adapter-intake/web-app/display/articles/show.hyr": {Data: []byte(
			`<displayer html><h1>Article [.id.]</h1></displayer>`)},
	}
	c := compiler.New(fsys, compiler.WithLogger(logger.NewNope()))
	t.Cleanup(func() { _ = c.Close() })

	web := hyraft.DrawWeb(func(r *hyraft.WebRouter) {
		r.GET("/articles/:id", func(req *hyraft.Request) (hyraft.Result, error) {
			id := hyraft.Param[int](req, 0)
			if id == 0 {
				return hyraft.Result{}, hyraft.ErrNotFound("no such article")
			}
			return hyraft.Result{Status: http.StatusOK, Locals: map[string]any{"id": id}}, nil
		}, hyraft.Action("show"), hyraft.Template("articles/show"))
		r.POST("/articles", func(*hyraft.Request) (hyraft.Result, error) {
			return hyraft.Redirect(http.StatusSeeOther, "/articles/1"), nil
		})
	})
	api := hyraft.DrawAPI(func(r *hyraft.APIRouter) {
		r.GET("/articles/:id", func(req *hyraft.Request) (hyraft.APIResult, error) {
			limit := hyraft.QueryDefault(req, "limit", 10)
			return hyraft.JSON(http.StatusOK, map[string]any{"id": req.Param(0), "limit": limit}), nil
		})
	})

	return hyraft.New(
		hyraft.WithLogger(logger.NewNope()),
		hyraft.WithCompiler(c),
		hyraft.WithWebRoutes(web),
		hyraft.WithAPIRoutes(api),
	)
}

func TestApp(t *testing.T) {
	t.Parallel()
	app := newApp(t)

	tests := []struct {
		name   string
		method string
		target string
		status int
		body   string
	}{
		{name: "route template", method: http.MethodGet, target: "/articles/7", status: http.StatusOK, body: "<h1>Article 7</h1>"},
		{name: "handler error", method: http.MethodGet, target: "/articles/abc", status: http.StatusNotFound, body: "404"},
		{name: "redirect", method: http.MethodPost, target: "/articles", status: http.StatusSeeOther},
		{name: "api", method: http.MethodGet, target: "/api/articles/3?limit=5", status: http.StatusOK, body: `{"id":"3","limit":5}`},
		{name: "api miss", method: http.MethodGet, target: "/api/nope", status: http.StatusNotFound, body: `{"error":"Not Found"}`},
		{name: "web miss", method: http.MethodGet, target: "/nope", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			app.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))
			require.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestStatusOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusNotFound, hyraft.StatusOf(hyraft.ErrNotFound("x")))
	assert.Equal(t, http.StatusBadRequest, hyraft.StatusOf(hyraft.ErrBadRequest("x")))
	assert.Equal(t, http.StatusTeapot, hyraft.StatusOf(hyraft.NewHTTPError(http.StatusTeapot, "tea")))
	assert.Equal(t, http.StatusInternalServerError, hyraft.StatusOf(errors.New("boom")))
}
