package internal

import (
	"net/http"

	"github.com/dmitrymomot/hyraft/pkg/renderer"
)

// Result is what a web handler returns.
//
// A Result with Display set renders that template with Locals. A 3xx Status
// with a Location header redirects. Any other Status of 400 and above
// renders the error page for it.
type Result struct {
	Status    int
	Locals    map[string]any
	Display   string
	Headers   http.Header
	ViewModel renderer.ViewModel
}

// WebHandlerFunc handles a request matched by the web router.
type WebHandlerFunc func(r *Request) (Result, error)

// APIResult is what an API handler returns. Body is encoded as JSON.
type APIResult struct {
	Status  int
	Body    any
	Headers http.Header
}

// APIHandlerFunc handles a request matched by the API router.
type APIHandlerFunc func(r *Request) (APIResult, error)

// Render returns a 200 Result displaying name with locals.
func Render(name string, locals map[string]any) Result {
	return Result{Status: http.StatusOK, Display: name, Locals: locals}
}

// Redirect returns a Result redirecting to url with a 3xx status.
func Redirect(status int, url string) Result {
	return Result{Status: status, Headers: http.Header{"Location": {url}}}
}

// Status returns a Result with only a status code.
func Status(code int) Result {
	return Result{Status: code}
}

// JSON returns an APIResult with body.
func JSON(status int, body any) APIResult {
	return APIResult{Status: status, Body: body}
}

func copyHeaders(w http.ResponseWriter, h http.Header) {
	for k, vs := range h {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
}
