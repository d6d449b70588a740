package internal

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrymomot/hyraft/pkg/router"
)

// Request is what a handler receives: the HTTP request, the positional
// route captures and the flattened query string.
type Request struct {
	*http.Request

	// Params holds route captures in pattern order.
	Params []string

	// Query maps each query key to a string, or to a []string when the key
	// repeats.
	Query map[string]any

	// Route is the metadata of the matched route.
	Route router.Meta
}

func newRequest(r *http.Request, params []string, meta router.Meta) *Request {
	return &Request{
		Request: r,
		Params:  params,
		Query:   flattenQuery(r),
		Route:   meta,
	}
}

// Param returns the i-th route capture, or "" when there is none.
func (r *Request) Param(i int) string {
	if i < 0 || i >= len(r.Params) {
		return ""
	}
	return r.Params[i]
}

// QueryValue returns the first value of a query key.
func (r *Request) QueryValue(name string) string {
	switch v := r.Query[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

// Decode reads the JSON request body into v. An empty body leaves v as is.
func (r *Request) Decode(v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return ErrBadRequest("invalid JSON body", WithError(err))
	}
	return nil
}

func flattenQuery(r *http.Request) map[string]any {
	values := r.URL.Query()
	q := make(map[string]any, len(values))
	for k, v := range values {
		if len(v) == 1 {
			q[k] = v[0]
			continue
		}
		q[k] = v
	}
	return q
}
