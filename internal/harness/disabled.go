package harness

import (
	"reflect"
	"unicode"
	"unicode/utf8"
)

// MethodSet lets an instance report its own methods. Implementations whose Go method set
// does not reflect what the learner wrote (such as interpreted submissions) use it.
type MethodSet interface {
	HasMethod(name string) bool
}

// IsTestDisabled reports whether instances built by newFn lack the named method, in which
// case a check covering that optional method should return VerdictDisabled.
// The method name may be given in lower camel case ("peekHead").
func IsTestDisabled[T any](newFn func() T, method string) bool {
	if newFn == nil || method == "" {
		return true
	}
	instance := any(newFn())
	if isNil(instance) {
		return true
	}

	name := exportedName(method)
	if ms, ok := instance.(MethodSet); ok {
		return !ms.HasMethod(name)
	}
	return !reflect.ValueOf(instance).MethodByName(name).IsValid()
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func exportedName(method string) string {
	r, size := utf8.DecodeRuneInString(method)
	if unicode.IsUpper(r) {
		return method
	}
	return string(unicode.ToUpper(r)) + method[size:]
}
