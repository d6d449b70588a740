package obfuscator

import (
	"fmt"
	"strings"
)

// Method selects how a script is obfuscated.
type Method string

const (
	MethodMultiLayer Method = "multi_layer"
	MethodSplit      Method = "split_and_reassemble"
	MethodNone       Method = "none"
)

// Methods lists the supported methods.
func Methods() []Method {
	return []Method{MethodMultiLayer, MethodSplit, MethodNone}
}

// ParseMethod converts a configuration value into a Method.
// An empty string selects MethodMultiLayer.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(MethodMultiLayer), "multi-layer", "multilayer":
		return MethodMultiLayer, nil
	case string(MethodSplit), "split":
		return MethodSplit, nil
	case string(MethodNone), "off":
		return MethodNone, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

func (m Method) String() string { return string(m) }
