package loader

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traefik/yaegi/interp"
)

func wrap(body string) string {
	return "package main\n\nfunc f() {\n" + body + "\n}\n"
}

func TestSplitNilAssignments(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "node fields",
			body: "\tn.Next, n.Prev = nil, nil",
			want: "\tn.Next = nil; n.Prev = nil",
		},
		{
			name: "list fields",
			body: "\tl.head, l.tail = nil, nil",
			want: "\tl.head = nil; l.tail = nil",
		},
		{
			name: "deeper target first",
			body: "\tn.Next, n.Next.Prev, n = nil, nil, nil",
			want: "\tn.Next.Prev = nil; n.Next = nil; n = nil",
		},
		{
			name: "inside switch case",
			body: "\tswitch {\n\tcase true:\n\t\ta, b = nil, nil\n\t}",
			want: "\tswitch {\n\tcase true:\n\t\ta = nil; b = nil\n\t}",
		},
		{
			name: "nested blocks",
			body: "\tif ok {\n\t\tx, y = nil, nil\n\t}\n\tp, q = nil, nil",
			want: "\tif ok {\n\t\tx = nil; y = nil\n\t}\n\tp = nil; q = nil",
		},
		{
			name: "swap untouched",
			body: "\ta, b = b, a",
			want: "\ta, b = b, a",
		},
		{
			name: "mixed values untouched",
			body: "\ta, b = nil, c",
			want: "\ta, b = nil, c",
		},
		{
			name: "single untouched",
			body: "\ta = nil",
			want: "\ta = nil",
		},
		{
			name: "init statement untouched",
			body: "\tif a, b = nil, nil; ok {\n\t}",
			want: "\tif a, b = nil, nil; ok {\n\t}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitNilAssignments("f.go", wrap(tt.body))
			require.NoError(t, err)
			assert.Equal(t, wrap(tt.want), got)
		})
	}
}

func TestSplitNilAssignmentsSyntaxError(t *testing.T) {
	_, err := splitNilAssignments("f.go", "package main\n\nfunc f( {\n")
	assert.ErrorContains(t, err, "parse source")
}

type Cell struct {
	Value string
	Next  *Cell
	Prev  *Cell
}

const clearing = `package main

import "csplay/cells"

type pair struct {
	first *cells.Cell
	last  *cells.Cell
}

func Clear() *cells.Cell {
	c := &cells.Cell{Value: "c", Next: &cells.Cell{}, Prev: &cells.Cell{}}
	c.Next, c.Prev = nil, nil

	p := &pair{first: c, last: c}
	p.first, p.last = nil, nil
	if p.first != nil || p.last != nil {
		return nil
	}
	return c
}
`

func TestLoadClearsCompiledPointersInOneStatement(t *testing.T) {
	binding := Binding{
		Symbols: interp.Exports{
			"csplay/cells/cells": {"Cell": reflect.ValueOf((*Cell)(nil))},
		},
		Imports: []string{"csplay/cells"},
		Entry:   "main.Clear",
	}

	v, err := New().Load(context.Background(), "clear.go", clearing, binding)
	require.NoError(t, err)

	clearCell, ok := v.Interface().(func() *Cell)
	require.True(t, ok, "unexpected entry type %s", v.Type())
	c := clearCell()
	require.NotNil(t, c)
	assert.Equal(t, "c", c.Value)
	assert.Nil(t, c.Next)
	assert.Nil(t, c.Prev)
}
