package internal_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hyraft/internal"
	"github.com/dmitrymomot/hyraft/pkg/logger"
	"github.com/dmitrymomot/hyraft/pkg/router"
)

type article struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func apiRoutes() *router.API[internal.APIHandlerFunc] {
	return router.DrawAPI(func(r *router.API[internal.APIHandlerFunc]) {
		r.GET("/articles", func(req *internal.Request) (internal.APIResult, error) {
			return internal.JSON(http.StatusOK, map[string]any{
				"page": internal.QueryDefault(req, "page", 1),
				"tags": req.Query["tag"],
			}), nil
		}, router.Action("index"))
		r.GET("/articles/:id", func(req *internal.Request) (internal.APIResult, error) {
			if req.Param(0) == "0" {
				return internal.APIResult{}, internal.ErrNotFound("article not found")
			}
			return internal.JSON(http.StatusOK, article{ID: req.Param(0), Title: req.Route.Action}), nil
		}, router.Action("show"))
		r.POST("/articles", func(req *internal.Request) (internal.APIResult, error) {
			var a article
			if err := req.Decode(&a); err != nil {
				return internal.APIResult{}, err
			}
			a.ID = "new"
			return internal.APIResult{Status: http.StatusCreated, Body: a, Headers: http.Header{"Location": {"/api/articles/new"}}}, nil
		})
		r.DELETE("/articles/:id", func(*internal.Request) (internal.APIResult, error) {
			return internal.APIResult{Status: http.StatusNoContent}, nil
		})
		r.GET("/fail", func(*internal.Request) (internal.APIResult, error) {
			return internal.APIResult{}, errors.New("secret connection string")
		})
	})
}

func TestAPIDispatcher(t *testing.T) {
	t.Parallel()

	d := internal.NewAPIDispatcher(apiRoutes(), internal.DefaultAPIPrefix, logger.NewNope())

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		want   string
	}{
		{"query flattened", http.MethodGet, "/api/articles?page=3&tag=a&tag=b", "", 200, `{"page":3,"tags":["a","b"]}`},
		{"query default", http.MethodGet, "/api/articles?page=x&tag=go", "", 200, `{"page":1,"tags":"go"}`},
		{"param", http.MethodGet, "/api/articles/7", "", 200, `{"id":"7","title":"show"}`},
		{"http error", http.MethodGet, "/api/articles/0", "", 404, `{"error":"article not found"}`},
		{"create", http.MethodPost, "/api/articles", `{"title":"Hi"}`, 201, `{"id":"new","title":"Hi"}`},
		{"bad body", http.MethodPost, "/api/articles", `{`, 400, `{"error":"invalid JSON body"}`},
		{"not found", http.MethodGet, "/api/nothing", "", 404, `{"error":"Not Found"}`},
		{"wrong method", http.MethodPut, "/api/articles/7", "", 404, `{"error":"Not Found"}`},
		{"plain error hides detail", http.MethodGet, "/api/fail", "", 500, `{"error":"Internal Server Error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			d.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}

	t.Run("no content", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		d.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/articles/7", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("result headers", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		d.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/articles", strings.NewReader(`{}`)))
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/api/articles/new", w.Header().Get("Location"))
	})
}

func TestRequestHelpers(t *testing.T) {
	t.Parallel()

	var got *internal.Request
	routes := router.DrawAPI(func(r *router.API[internal.APIHandlerFunc]) {
		r.GET("/users/:id/posts/:n", func(req *internal.Request) (internal.APIResult, error) {
			got = req
			return internal.APIResult{}, nil
		})
	})
	d := internal.NewAPIDispatcher(routes, "/api/", logger.NewNope())
	d.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/users/12/posts/3?flag=true&ratio=0.5&name=x", nil))
	require.NotNil(t, got)

	assert.Equal(t, []string{"12", "3"}, got.Params)
	assert.Equal(t, "", got.Param(5))
	assert.Equal(t, 12, internal.Param[int](got, 0))
	assert.Equal(t, int64(3), internal.Param[int64](got, 1))
	assert.Equal(t, 0, internal.Param[int](got, 9))
	assert.True(t, internal.Query[bool](got, "flag"))
	assert.InDelta(t, 0.5, internal.Query[float64](got, "ratio"), 1e-9)
	assert.Equal(t, "x", internal.Query[string](got, "name"))
	assert.Equal(t, 0, internal.Query[int](got, "name"))
	assert.Equal(t, 10, internal.QueryDefault(got, "limit", 10))

	type userID string
	type postNum int
	type flag bool
	assert.Equal(t, userID("12"), internal.Param[userID](got, 0))
	assert.Equal(t, postNum(3), internal.Param[postNum](got, 1))
	assert.Equal(t, flag(true), internal.Query[flag](got, "flag"))
	assert.Equal(t, postNum(7), internal.QueryDefault(got, "name", postNum(7)))
}
