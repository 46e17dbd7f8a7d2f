package bridge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingEvaluator struct {
	source   string
	bindings map[string]any
	outputs  []string
	result   map[string]any
	err      error
}

func (r *recordingEvaluator) Evaluate(ctx context.Context, source string, bindings map[string]any, outputs ...string) (map[string]any, error) {
	r.source = source
	r.bindings = bindings
	r.outputs = outputs
	return r.result, r.err
}

func TestLoadBuildsOnce(t *testing.T) {
	first := Load()
	second := Load()
	require.Same(t, first, second)
	require.Equal(t, int64(42), first.Answer())
	require.Equal(t, "bridge", first.Name())
}

func TestNamespaceExports(t *testing.T) {
	ns := NewNamespace(NamespaceOptions{})
	require.Equal(t, []string{"Example", "docs", "the_answer"}, ns.Names())

	desc := ns.Type()
	require.Equal(t, "Example", desc.Name)
	require.Equal(t, ExampleDoc, desc.Doc)
	require.Equal(t, []string{"native_greeting", "host_greeting"}, desc.MethodNames())

	m, ok := desc.Method("native_greeting")
	require.True(t, ok)
	text, err := m.Call(context.Background(), desc.Constructor())
	require.NoError(t, err)
	require.Equal(t, "Hello Go", text)

	_, ok = desc.Method("missing")
	require.False(t, ok)
}

func TestNativeGreeting(t *testing.T) {
	ns := NewNamespace(NamespaceOptions{})
	for i := 0; i < 3; i++ {
		require.Equal(t, "Hello Go", ns.New().NativeGreeting())
	}
}

func TestHostGreeting(t *testing.T) {
	ctx := context.Background()
	ns := NewNamespace(NamespaceOptions{})

	first := ns.New()
	second := ns.New()

	for _, e := range []*Example{first, second, first} {
		text, err := e.HostGreeting(ctx)
		require.NoError(t, err)
		require.Equal(t, "Hello World", text)
	}
	require.Equal(t, int64(42), ns.Answer())
}

func TestHostGreetingFragments(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     string
		errType  string
	}{
		{
			name:     "self is bound to the receiver",
			fragment: `retval := self.native_greeting()`,
			want:     "Hello Go",
		},
		{
			name:     "module is an ambient global",
			fragment: `retval := bridge.Example().native_greeting()`,
			want:     "Hello Go",
		},
		{
			name:     "retval never assigned",
			fragment: `other := "Hello World"`,
			errType:  ErrorTypeConversion,
		},
		{
			name:     "retval is not text",
			fragment: `retval := 42`,
			errType:  ErrorTypeConversion,
		},
		{
			name:     "retval is nil",
			fragment: `retval := nil`,
			errType:  ErrorTypeConversion,
		},
		{
			name:     "syntax error",
			fragment: `retval := `,
			errType:  ErrorTypeEvaluation,
		},
		{
			name:     "undefined variable",
			fragment: `retval := missing_name`,
			errType:  ErrorTypeEvaluation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns := NewNamespace(NamespaceOptions{Fragment: tt.fragment})
			text, err := ns.New().HostGreeting(context.Background())
			if tt.errType != "" {
				require.Error(t, err)
				require.True(t, MatchesErrorType(err, tt.errType), "got %v", err)
				require.Empty(t, text)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, text)
		})
	}
}

func TestHostGreetingBinding(t *testing.T) {
	evaluator := &recordingEvaluator{result: map[string]any{"retval": "from evaluator"}}
	ns := NewNamespace(NamespaceOptions{Evaluator: evaluator})
	e := ns.New()

	text, err := e.HostGreeting(context.Background())
	require.NoError(t, err)
	require.Equal(t, "from evaluator", text)

	require.Equal(t, HostGreetingFragment, evaluator.source)
	require.Len(t, evaluator.bindings, 1)
	require.Same(t, e.Object(), evaluator.bindings["self"])
	require.Equal(t, []string{"retval"}, evaluator.outputs)
}

func TestHostGreetingEvaluatorFailure(t *testing.T) {
	cause := errors.New("evaluator unavailable")
	ns := NewNamespace(NamespaceOptions{Evaluator: &recordingEvaluator{err: cause}})

	_, err := ns.New().HostGreeting(context.Background())
	require.True(t, IsEvaluationError(err))
	require.ErrorIs(t, err, cause)
}

func TestHostGreetingMissingResult(t *testing.T) {
	ns := NewNamespace(NamespaceOptions{Evaluator: &recordingEvaluator{result: map[string]any{}}})

	_, err := ns.New().HostGreeting(context.Background())
	require.True(t, IsConversionError(err))
	require.Contains(t, err.Error(), `"retval" is not bound`)
}

func TestBindingIDs(t *testing.T) {
	first := NewBindingID()
	second := NewBindingID()
	require.Contains(t, first, "binding_")
	require.NotEqual(t, first, second)
}
