// Package loader evaluates learner Go source with the yaegi interpreter and hands back the
// symbol a topic binds its capability interface to.
package loader

import (
	"context"
	"fmt"
	"go/parser"
	"go/token"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// DefaultAllowedPackages are the stdlib imports learner code may use
var DefaultAllowedPackages = []string{
	"bytes",
	"errors",
	"fmt",
	"math",
	"sort",
	"strconv",
	"strings",
	"unicode",
	"unicode/utf8",
}

// Binding describes how a topic attaches to evaluated learner code
type Binding struct {
	// Symbols are the compiled packages the learner and glue code may import
	Symbols interp.Exports
	// Imports are import paths allowed in addition to the loader's whitelist
	Imports []string
	// Glue returns interpreted source evaluated after the learner's, in the same package
	Glue func(filename, source string) (string, error)
	// Entry is the symbol returned to the caller, e.g. "main.NewBridge"
	Entry string
}

// Loader evaluates learner source in a fresh interpreter per call
type Loader struct {
	allowed map[string]bool
	stdout  io.Writer
	stderr  io.Writer
}

// Option configures a Loader
type Option func(*Loader)

// WithOutput routes the learner's stdout and stderr
func WithOutput(stdout, stderr io.Writer) Option {
	return func(l *Loader) {
		l.stdout = stdout
		l.stderr = stderr
	}
}

// WithAllowedPackages replaces the stdlib import whitelist
func WithAllowedPackages(pkgs ...string) Option {
	return func(l *Loader) {
		l.allowed = make(map[string]bool, len(pkgs))
		for _, pkg := range pkgs {
			l.allowed[pkg] = true
		}
	}
}

// New creates a Loader
func New(opts ...Option) *Loader {
	l := &Loader{
		stdout: io.Discard,
		stderr: io.Discard,
	}
	WithAllowedPackages(DefaultAllowedPackages...)(l)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load evaluates source plus the binding's glue and returns the entry symbol
func (l *Loader) Load(ctx context.Context, filename, source string, b Binding) (reflect.Value, error) {
	return l.load(ctx, filename, source, b, l.stdout, l.stderr)
}

// LoadWithOutput is Load with per-call output writers
func (l *Loader) LoadWithOutput(ctx context.Context, filename, source string, b Binding, stdout io.Writer) (reflect.Value, error) {
	if stdout == nil {
		stdout = l.stdout
	}
	return l.load(ctx, filename, source, b, stdout, stdout)
}

func (l *Loader) load(ctx context.Context, filename, source string, b Binding, stdout, stderr io.Writer) (reflect.Value, error) {
	if b.Entry == "" {
		return reflect.Value{}, fmt.Errorf("binding has no entry symbol")
	}
	if err := l.validateImports(filename, source, b.Imports); err != nil {
		return reflect.Value{}, fmt.Errorf("invalid imports: %w", err)
	}

	source, err := splitNilAssignments(filename, source)
	if err != nil {
		return reflect.Value{}, err
	}

	glue := ""
	if b.Glue != nil {
		if glue, err = b.Glue(filename, source); err != nil {
			return reflect.Value{}, fmt.Errorf("bind %s: %w", filename, err)
		}
	}

	i := interp.New(interp.Options{Stdout: stdout, Stderr: stderr})
	if err := i.Use(stdlib.Symbols); err != nil {
		return reflect.Value{}, fmt.Errorf("load stdlib: %w", err)
	}
	if b.Symbols != nil {
		if err := i.Use(b.Symbols); err != nil {
			return reflect.Value{}, fmt.Errorf("load topic symbols: %w", err)
		}
	}

	if _, err := i.EvalWithContext(ctx, source); err != nil {
		return reflect.Value{}, fmt.Errorf("evaluate %s: %w", filename, err)
	}
	if glue != "" {
		if _, err := i.EvalWithContext(ctx, glue); err != nil {
			return reflect.Value{}, fmt.Errorf("bind %s: %w", filename, err)
		}
	}

	v, err := i.EvalWithContext(ctx, b.Entry)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("symbol %s not found: %w", b.Entry, err)
	}
	return v, nil
}

// validateImports checks that source only imports whitelisted packages
func (l *Loader) validateImports(filename, source string, extra []string) error {
	file, err := parser.ParseFile(token.NewFileSet(), filename, source, parser.ImportsOnly)
	if err != nil {
		return fmt.Errorf("parse source: %w", err)
	}
	if file.Name.Name != "main" {
		return fmt.Errorf("submission must be package main, got %q", file.Name.Name)
	}

	allowedExtra := make(map[string]bool, len(extra))
	for _, pkg := range extra {
		allowedExtra[pkg] = true
	}

	var forbidden []string
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			return fmt.Errorf("bad import %s: %w", spec.Path.Value, err)
		}
		if !l.allowed[path] && !allowedExtra[path] {
			forbidden = append(forbidden, path)
		}
	}

	if len(forbidden) > 0 {
		return fmt.Errorf("forbidden imports %s (allowed: %s)",
			strings.Join(forbidden, ", "), strings.Join(l.allowedList(extra), ", "))
	}
	return nil
}

func (l *Loader) allowedList(extra []string) []string {
	pkgs := append([]string(nil), extra...)
	for pkg := range l.allowed {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)
	return pkgs
}
