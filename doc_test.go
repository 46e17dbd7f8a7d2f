package bridge

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDocExamples(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []DocPart
	}{
		{
			name: "no example",
			doc:  "Plain prose only.",
			want: nil,
		},
		{
			name: "source without want",
			doc:  "Intro\n    >>> x := 1\n",
			want: []DocPart{{Source: "x := 1"}},
		},
		{
			name: "consecutive prompts form one block",
			doc:  ">>> x := 1\n>>> x + 1\n2\n",
			want: []DocPart{{Source: "x := 1\nx + 1", Want: "2"}},
		},
		{
			name: "continuation lines",
			doc:  ">>> func f() {\n... return 3\n... }\n>>> f()\n3",
			want: []DocPart{{Source: "func f() {\nreturn 3\n}\nf()", Want: "3"}},
		},
		{
			name: "want ends a block",
			doc:  ">>> 1\n1\n>>> 2\n2\n\ntrailing prose",
			want: []DocPart{{Source: "1", Want: "1"}, {Source: "2", Want: "2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseDocExamples(tt.doc))
		})
	}
}

func TestExampleDocRuns(t *testing.T) {
	ns := NewNamespace(NamespaceOptions{})
	parts := ParseDocExamples(ns.Type().Doc)
	require.Len(t, parts, 2)

	var source []string
	var got []string
	for _, part := range parts {
		source = append(source, part.Source)
		result, err := ns.Run(context.Background(), strings.Join(source, "\n"))
		require.NoError(t, err)
		require.Equal(t, part.Want, fmt.Sprintf("%q", result))
		got = append(got, result.(string))
	}
	require.Equal(t, []string{"Hello Go", "Hello World"}, got)
}

func TestExampleDocInRisor(t *testing.T) {
	ns := NewNamespace(NamespaceOptions{})
	got, err := ns.Run(context.Background(), `bridge.docs["Example"]`)
	require.NoError(t, err)
	require.Equal(t, ns.Type().Doc, got)
	require.Contains(t, got, ">>> e := bridge.Example()")
}
