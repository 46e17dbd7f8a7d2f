// Package bridge publishes a native Go type into the Risor scripting
// language and lets native methods evaluate Risor source at runtime.
package bridge

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/deepnoodle-ai/bridge/script"
	"github.com/risor-io/risor/object"
)

const (
	// ModuleName is the name the module is published under in the host.
	ModuleName = "bridge"

	// AnswerName is the exported name of the scalar constant.
	AnswerName = "the_answer"

	// TheAnswer is the value of the scalar constant.
	TheAnswer int64 = 42

	// TypeName is the exported name of the value type.
	TypeName = "Example"
)

// Method is one entry in a type's method table.
type Method struct {
	Name string
	Call func(ctx context.Context, e *Example) (string, error)
}

// TypeDescriptor describes a native type published to the host: its name,
// its doc, its zero-argument constructor and its methods.
type TypeDescriptor struct {
	Name string

	// Doc describes the type and carries a runnable usage example in
	// ">>> " prompt form. See ParseDocExamples.
	Doc string

	Constructor func() *Example
	Methods     []*Method
}

// Method returns the method with the given name.
func (d *TypeDescriptor) Method(name string) (*Method, bool) {
	for _, m := range d.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// MethodNames returns the method names in registration order.
func (d *TypeDescriptor) MethodNames() []string {
	names := make([]string, 0, len(d.Methods))
	for _, m := range d.Methods {
		names = append(names, m.Name)
	}
	return names
}

// NamespaceOptions configures a new namespace
type NamespaceOptions struct {
	// Evaluator runs the embedded fragment. Defaults to a Risor evaluator
	// whose ambient globals are the Risor builtins plus this module.
	Evaluator script.Evaluator

	// Fragment replaces the embedded source fragment. Only tests set this.
	Fragment string

	Logger *slog.Logger
}

// Namespace is the module's exported state: the scalar constant and the
// value type descriptor. It is fully built by NewNamespace and never
// modified afterwards.
type Namespace struct {
	answer      int64
	exampleType *TypeDescriptor
	evaluator   script.Evaluator
	fragment    string
	logger      *slog.Logger
	module      *object.Module
}

var (
	defaultOnce      sync.Once
	defaultNamespace *Namespace
)

// Load returns the process-wide namespace, building it on first use.
func Load() *Namespace {
	defaultOnce.Do(func() {
		defaultNamespace = NewNamespace(NamespaceOptions{})
	})
	return defaultNamespace
}

// NewNamespace builds and registers a standalone namespace. Most callers
// should use Load.
func NewNamespace(opts NamespaceOptions) *Namespace {
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	if opts.Fragment == "" {
		opts.Fragment = HostGreetingFragment
	}
	ns := &Namespace{
		answer:   TheAnswer,
		fragment: opts.Fragment,
		logger:   opts.Logger.With("module", ModuleName),
	}
	ns.exampleType = &TypeDescriptor{
		Name:        TypeName,
		Doc:         ExampleDoc,
		Constructor: ns.New,
		Methods: []*Method{
			{
				Name: NativeGreetingName,
				Call: func(ctx context.Context, e *Example) (string, error) {
					return e.NativeGreeting(), nil
				},
			},
			{
				Name: HostGreetingName,
				Call: func(ctx context.Context, e *Example) (string, error) {
					return e.HostGreeting(ctx)
				},
			},
		},
	}
	ns.module = ns.buildModule()

	if opts.Evaluator == nil {
		ns.evaluator = script.NewRisorEvaluator(script.DefaultRisorGlobals()).
			WithGlobal(ModuleName, ns.module)
	} else {
		ns.evaluator = opts.Evaluator
	}

	ns.logger.Debug("registered module",
		"constant", AnswerName,
		"type", TypeName,
		"methods", ns.exampleType.MethodNames())
	return ns
}

// Name returns the module name.
func (ns *Namespace) Name() string {
	return ModuleName
}

// Answer returns the exported scalar constant.
func (ns *Namespace) Answer() int64 {
	return ns.answer
}

// Type returns the descriptor of the exported value type.
func (ns *Namespace) Type() *TypeDescriptor {
	return ns.exampleType
}

// Names returns the sorted names exported by the module.
func (ns *Namespace) Names() []string {
	names := []string{AnswerName, DocsName, ns.exampleType.Name}
	sort.Strings(names)
	return names
}

// New constructs an instance of the value type.
func (ns *Namespace) New() *Example {
	return newExample(ns)
}

// Module returns the module as a Risor object, suitable for use as a global.
func (ns *Namespace) Module() *object.Module {
	return ns.module
}
