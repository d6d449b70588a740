package transmuter

import "errors"

// ErrEvaluation wraps compile and runtime failures of view-model code.
var ErrEvaluation = errors.New("transmuter: evaluation failed")
