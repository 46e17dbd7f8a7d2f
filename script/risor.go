package script

import (
	"context"
	"fmt"
	"sort"

	"github.com/risor-io/risor/compiler"
	"github.com/risor-io/risor/modules/all"
	"github.com/risor-io/risor/object"
	"github.com/risor-io/risor/parser"
	"github.com/risor-io/risor/vm"
)

// RisorEvaluator evaluates Risor source. Every call compiles the source and
// runs it on a fresh virtual machine, so calls never share state.
type RisorEvaluator struct {
	globals map[string]any
}

// NewRisorEvaluator returns an evaluator whose ambient globals are the given
// map. Bindings passed to Evaluate shadow ambient globals of the same name.
func NewRisorEvaluator(globals map[string]any) *RisorEvaluator {
	return &RisorEvaluator{globals: globals}
}

// Globals returns a copy of the ambient globals.
func (e *RisorEvaluator) Globals() map[string]any {
	result := make(map[string]any, len(e.globals))
	for name, value := range e.globals {
		result[name] = value
	}
	return result
}

// WithGlobal returns a new evaluator with one extra ambient global.
func (e *RisorEvaluator) WithGlobal(name string, value any) *RisorEvaluator {
	globals := e.Globals()
	globals[name] = value
	return &RisorEvaluator{globals: globals}
}

func (e *RisorEvaluator) Evaluate(ctx context.Context, source string, bindings map[string]any, outputs ...string) (map[string]any, error) {
	combinedGlobals := e.Globals()
	for name, value := range bindings {
		combinedGlobals[name] = value
	}

	ast, err := parser.Parse(ctx, source)
	if err != nil {
		return nil, err
	}

	var globalNames []string
	for name := range combinedGlobals {
		globalNames = append(globalNames, name)
	}
	sort.Strings(globalNames)

	code, err := compiler.Compile(ast, compiler.WithGlobalNames(globalNames))
	if err != nil {
		return nil, err
	}

	machine := vm.New(code, vm.WithGlobals(combinedGlobals))
	if err := machine.Run(ctx); err != nil {
		return nil, fmt.Errorf("failed to evaluate risor script: %w", err)
	}

	result := make(map[string]any, len(outputs))
	for _, name := range outputs {
		obj, err := machine.Get(name)
		if err != nil || obj == nil {
			continue
		}
		result[name] = ConvertRisorValueToGo(obj)
	}
	return result, nil
}

// DefaultRisorGlobals returns the Risor builtins and standard modules.
func DefaultRisorGlobals() map[string]any {
	globals := map[string]any{}
	for name, value := range all.Builtins() {
		globals[name] = value
	}
	return globals
}

// Builtin wraps a Go function returning a value or an error as a Risor
// builtin. A returned error becomes a Risor error object.
func Builtin(name string, fn func(ctx context.Context) (object.Object, error)) *object.Builtin {
	return object.NewBuiltin(name, func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 0 {
			return object.Errorf("type error: %s() takes 0 arguments (%d given)", name, len(args))
		}
		value, err := fn(ctx)
		if err != nil {
			return object.NewError(err)
		}
		return value
	})
}
