package internal

import (
	"reflect"
	"strconv"
)

// Param converts the i-th route capture to T. Returns the zero value when
// the capture is missing or does not parse.
func Param[T ~string | ~int | ~int64 | ~float64 | ~bool](r *Request, i int) T {
	v, _ := convertParam[T](r.Param(i))
	return v
}

func Query[T ~string | ~int | ~int64 | ~float64 | ~bool](r *Request, name string) T {
	v, _ := convertParam[T](r.QueryValue(name))
	return v
}

// QueryDefault retrieves a typed query parameter with a default value.
// Returns defaultValue if the parameter is empty or cannot be parsed.
func QueryDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](r *Request, name string, defaultValue T) T {
	raw := r.QueryValue(name)
	if raw == "" {
		return defaultValue
	}
	v, ok := convertParam[T](raw)
	if !ok {
		return defaultValue
	}
	return v
}

// convertParam converts a raw string to the target type T, named types
// included. Returns the converted value and true on success, or the zero
// value and false on failure.
func convertParam[T ~string | ~int | ~int64 | ~float64 | ~bool](raw string) (T, bool) {
	var v T
	rv := reflect.ValueOf(&v).Elem()
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(raw)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, rv.Type().Bits())
		if err != nil {
			return v, false
		}
		rv.SetInt(n)
	case reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return v, false
		}
		rv.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return v, false
		}
		rv.SetBool(b)
	default:
		return v, false
	}
	return v, true
}
