//go:build property

package router_test

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dmitrymomot/hyraft/pkg/router"
)

func TestRouterProperties(t *testing.T) {
	web := router.DrawWeb(func(r *router.Web[string]) {
		r.GET("/files/*", "files")
		r.GET("/users/:id", "user")
	})
	api := router.DrawAPI(func(r *router.API[string]) {
		r.GET("/articles/:id", "show")
	})
	properties := gopter.NewProperties(nil)
	segment := gen.RegexMatch(`^[a-z0-9]{1,6}$`)

	properties.Property("wildcard captures the remaining path", prop.ForAll(
		func(segs []string) bool {
			rest := strings.Join(segs, "/")
			_, captures, ok := web.Resolve("GET", "/files/"+rest)
			return ok && len(captures) == 1 && captures[0] == rest
		},
		gen.SliceOfN(4, segment),
	))

	properties.Property("trailing slashes do not change the match", prop.ForAll(
		func(id string, slashes int) bool {
			_, captures, ok := web.Resolve("GET", "/users/"+id+strings.Repeat("/", slashes))
			return ok && len(captures) == 1 && captures[0] == id
		},
		segment,
		gen.IntRange(0, 3),
	))

	properties.Property("api captures ignore the query", prop.ForAll(
		func(id, query string) bool {
			_, captures, ok := api.Resolve("GET", "/articles/"+id+"?"+query)
			return ok && len(captures) == 1 && captures[0] == id
		},
		segment,
		gen.RegexMatch(`^[a-z=&]{0,10}$`),
	))

	properties.TestingRun(t)
}
