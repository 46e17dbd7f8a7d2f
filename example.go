package bridge

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/bridge/script"
	"github.com/risor-io/risor/object"
	"go.jetify.com/typeid"
)

const (
	NativeGreetingName = "native_greeting"
	HostGreetingName   = "host_greeting"

	// NativeGreetingText is the value returned by NativeGreeting.
	NativeGreetingText = "Hello Go"

	// HostGreetingFragment is the Risor source evaluated by HostGreeting.
	HostGreetingFragment = `retval := "Hello World"`

	// SelfBinding names the receiver inside the evaluated fragment.
	SelfBinding = "self"

	// ResultBinding names the variable the fragment assigns its result to.
	ResultBinding = "retval"
)

// ExampleDoc is the doc published for the Example type.
const ExampleDoc = `Example is a native type with one method implemented in Go and one
method that evaluates Risor source at runtime.

Example:
    >>> e := bridge.Example()
    >>> e.native_greeting()
    "Hello Go"
    >>> e.host_greeting()
    "Hello World"
`

// NewBindingID returns a new ID identifying one evaluation binding
func NewBindingID() string {
	id, err := typeid.WithPrefix("binding")
	if err != nil {
		panic(err)
	}
	return id.String()
}

// Example is the value type exported by the module. It carries no state of
// its own; the namespace reference only supplies the evaluator and logger.
type Example struct {
	ns  *Namespace
	obj *object.Module
}

func newExample(ns *Namespace) *Example {
	e := &Example{ns: ns}
	e.obj = e.buildObject()
	return e
}

// NativeGreeting returns a fixed greeting computed in Go.
func (e *Example) NativeGreeting() string {
	return NativeGreetingText
}

// HostGreeting evaluates the embedded host-language fragment with "self"
// bound to the receiver and returns the text the fragment assigned to
// "retval".
func (e *Example) HostGreeting(ctx context.Context) (string, error) {
	bindingID := NewBindingID()
	logger := e.ns.logger.With("binding_id", bindingID)

	bindings := map[string]any{SelfBinding: e.obj}
	logger.Debug("evaluating fragment", "method", HostGreetingName)

	outputs, err := e.ns.evaluator.Evaluate(ctx, e.ns.fragment, bindings, ResultBinding)
	if err != nil {
		return "", NewEvaluationError(err)
	}
	value, ok := outputs[ResultBinding]
	if !ok {
		return "", NewConversionError(fmt.Sprintf("%q is not bound after evaluation", ResultBinding), nil)
	}
	text, err := script.AsText(value)
	if err != nil {
		return "", NewConversionError(fmt.Sprintf("%q holds an unconvertible value", ResultBinding), err)
	}

	logger.Debug("evaluated fragment", "method", HostGreetingName)
	return text, nil
}

// Object returns the instance as a Risor object whose attributes are the
// type's methods bound to this receiver.
func (e *Example) Object() *object.Module {
	return e.obj
}
