package bridge

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/bridge/script"
	"github.com/risor-io/risor"
	"github.com/risor-io/risor/object"
)

func (ns *Namespace) buildModule() *object.Module {
	typeName := ns.exampleType.Name
	return object.NewBuiltinsModule(ModuleName, map[string]object.Object{
		AnswerName: object.NewInt(ns.answer),
		DocsName: object.NewMap(map[string]object.Object{
			typeName: object.NewString(ns.exampleType.Doc),
		}),
		typeName: script.Builtin(typeName, func(ctx context.Context) (object.Object, error) {
			return ns.exampleType.Constructor().Object(), nil
		}),
	})
}

func (e *Example) buildObject() *object.Module {
	methods := e.ns.exampleType.Methods
	contents := make(map[string]object.Object, len(methods))
	for _, m := range methods {
		contents[m.Name] = script.Builtin(m.Name, func(ctx context.Context) (object.Object, error) {
			text, err := m.Call(ctx, e)
			if err != nil {
				return nil, err
			}
			return object.NewString(text), nil
		})
	}
	return object.NewBuiltinsModule(e.ns.exampleType.Name, contents)
}

// Run evaluates a host-language program with the module available as the
// global "bridge" and returns the program's final value converted to Go.
func (ns *Namespace) Run(ctx context.Context, source string) (any, error) {
	result, err := risor.Eval(ctx, source, risor.WithGlobals(map[string]any{
		ModuleName: ns.Module(),
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to run program: %w", err)
	}
	return script.ConvertRisorValueToGo(result), nil
}
