package dll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"
	"text/template"

	"github.com/traefik/yaegi/interp"

	"csplay/internal/discovery"
	"csplay/internal/domain"
	"csplay/internal/loader"
)

const (
	// ImportPath is what learner source imports to reach Node
	ImportPath = "csplay/dll"
	// Constructor is the function a submission must declare
	Constructor = "NewDoublyLinkedList"
)

// ErrNoConstructor is returned by Bind when the submission declares no constructor.
// The corpus still runs, against a nil Factory.
var ErrNoConstructor = errors.New("no " + Constructor + " function declared")

// Symbols exposes the compiled package to interpreted code
var Symbols = interp.Exports{
	ImportPath + "/dll": {
		"Node":   reflect.ValueOf((*Node)(nil)),
		"Bridge": reflect.ValueOf((*Bridge)(nil)),
	},
}

// slot is a Bridge field the glue may fill with the learner method of the same name
type slot struct{ method, field string }

// signature is the method shape the field accepts, as discovery renders it
func (s slot) signature() string {
	f, _ := reflect.TypeOf((*Bridge)(nil)).Elem().FieldByName(s.field)
	return f.Type.String()
}

var bindable = []slot{
	{"Head", "HeadFn"},
	{"Tail", "TailFn"},
	{"Length", "LengthFn"},
	{"Add", "AddFn"},
	{"Remove", "RemoveFn"},
	{"RemoveAt", "RemoveAtFn"},
	{"AddAt", "AddAtFn"},
	{"PeekHead", "PeekHeadFn"},
	{"PeekTail", "PeekTailFn"},
	{"IndexOf", "IndexOfFn"},
	{"ElementAt", "ElementAtFn"},
}

// Bridge adapts an interpreted list to List and its optional interfaces. Only the
// methods named in Methods are bound, and a method is bound only when its signature
// matches its field. Calling any other one panics, which the runner records as a
// failed check.
type Bridge struct {
	Methods []string

	HeadFn      func() *Node
	TailFn      func() *Node
	LengthFn    func() int
	AddFn       func(string)
	RemoveFn    func(string) (string, bool)
	RemoveAtFn  func(int) (string, bool)
	AddAtFn     func(int, string) bool
	PeekHeadFn  func() *Node
	PeekTailFn  func() *Node
	IndexOfFn   func(string) int
	ElementAtFn func(int) (string, bool)
}

// HasMethod reports whether the learner declared name
func (b *Bridge) HasMethod(name string) bool {
	return slices.Contains(b.Methods, name)
}

func (b *Bridge) Head() *Node {
	return need(b.HeadFn, "Head")()
}

func (b *Bridge) Tail() *Node {
	return need(b.TailFn, "Tail")()
}

func (b *Bridge) Length() int {
	return need(b.LengthFn, "Length")()
}

func (b *Bridge) Add(v string) {
	need(b.AddFn, "Add")(v)
}

func (b *Bridge) Remove(v string) (string, bool) {
	return need(b.RemoveFn, "Remove")(v)
}

func (b *Bridge) RemoveAt(i int) (string, bool) {
	return need(b.RemoveAtFn, "RemoveAt")(i)
}

func (b *Bridge) AddAt(i int, v string) bool {
	return need(b.AddAtFn, "AddAt")(i, v)
}

func (b *Bridge) PeekHead() *Node {
	return need(b.PeekHeadFn, "PeekHead")()
}

func (b *Bridge) PeekTail() *Node {
	return need(b.PeekTailFn, "PeekTail")()
}

func (b *Bridge) IndexOf(v string) int {
	return need(b.IndexOfFn, "IndexOf")(v)
}

func (b *Bridge) ElementAt(i int) (string, bool) {
	return need(b.ElementAtFn, "ElementAt")(i)
}

func need[F any](fn F, method string) F {
	if reflect.ValueOf(fn).IsNil() {
		panic(fmt.Sprintf("%s has no method %s%s", Name, method, strings.TrimPrefix(reflect.TypeOf(fn).String(), "func")))
	}
	return fn
}

var glueTemplate = template.Must(template.New("glue").Parse(`package main

import csplaybridge "{{.Import}}"

func NewBridge() *csplaybridge.Bridge {
	l := {{.Constructor}}()
	b := &csplaybridge.Bridge{}
{{- range .Bound}}
	b.Methods = append(b.Methods, "{{.Method}}")
	b.{{.Field}} = l.{{.Method}}
{{- else}}
	_ = l
{{- end}}
	return b
}
`))

type boundMethod struct {
	Method string
	Field  string
}

// Glue generates the interpreted source binding the submission's constructor to a Bridge
func Glue(filename, source string) (string, error) {
	p := discovery.NewParser()
	typeName, err := p.FindFuncResult(filename, source, Constructor)
	if err != nil {
		if errors.Is(err, discovery.ErrNotDeclared) {
			return "", ErrNoConstructor
		}
		return "", err
	}
	sigs, err := p.FindMethodSignatures(filename, source)
	if err != nil {
		return "", err
	}

	// a method of the wrong shape is left unbound, so its checks see it as missing
	declared := sigs[typeName]
	var bound []boundMethod
	for _, b := range bindable {
		if sig, ok := declared[b.method]; ok && sig == b.signature() {
			bound = append(bound, boundMethod{Method: b.method, Field: b.field})
		}
	}

	var buf bytes.Buffer
	err = glueTemplate.Execute(&buf, map[string]any{
		"Import":      ImportPath,
		"Constructor": Constructor,
		"Bound":       bound,
	})
	if err != nil {
		return "", fmt.Errorf("render glue: %w", err)
	}
	return buf.String(), nil
}

// Binding is how the loader attaches this topic to a submission
func Binding() loader.Binding {
	return loader.Binding{
		Symbols: Symbols,
		Imports: []string{ImportPath},
		Glue:    Glue,
		Entry:   "main.NewBridge",
	}
}

// Bind evaluates a submission and returns a Factory producing a fresh bridged list per call.
// Learner output goes to stdout.
func Bind(ctx context.Context, l *loader.Loader, sub domain.Submission, stdout io.Writer) (Factory, error) {
	v, err := l.LoadWithOutput(ctx, sub.Path, sub.Source, Binding(), stdout)
	if err != nil {
		return nil, err
	}
	newBridge, ok := v.Interface().(func() *Bridge)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected constructor type %s", sub.Path, v.Type())
	}
	return func() List {
		return newBridge()
	}, nil
}
