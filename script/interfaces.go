package script

import (
	"context"
)

// Evaluator runs a fragment of host-language source against a caller-supplied
// set of bindings layered over the evaluator's ambient globals.
type Evaluator interface {

	// Evaluate runs source with bindings visible as globals. It returns the
	// values bound to each requested output name after the run, converted to
	// Go values. Outputs that do not exist after the run are absent from the
	// returned map.
	Evaluate(ctx context.Context, source string, bindings map[string]any, outputs ...string) (map[string]any, error)
}
