package mapper

import (
	"fmt"
	"reflect"
	"strconv"

	"object-mapper/internal/common"
)

var (
	errorType     = reflect.TypeFor[error]()
	anyType       = reflect.TypeFor[any]()
	listType      = reflect.TypeFor[ListSource]()
	stringType    = reflect.TypeFor[string]()
	byteSliceType = reflect.TypeFor[[]byte]()
)

// typeStr renders t with package aliases instead of full import paths.
func typeStr(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Ptr:
		return "*" + typeStr(t.Elem())
	case reflect.Slice:
		return "[]" + typeStr(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + typeStr(t.Elem())
	case reflect.Map:
		return "map[" + typeStr(t.Key()) + "]" + typeStr(t.Elem())
	default:
		if t.PkgPath() == "" || t.Name() == "" {
			return t.String()
		}

		return common.PkgAlias(t.PkgPath()) + "." + t.Name()
	}
}

func isError(t reflect.Type) bool {
	if t == nil {
		return false
	}

	return t.Implements(errorType)
}

// isNil reports whether v holds no value: an invalid Value or a nil reference.
func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}

	switch v.Kind() {
	default:
		return false
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
}

// isBlank extends isNil to the zero value of non nillable kinds.
func isBlank(v reflect.Value) bool {
	return isNil(v) || v.IsZero()
}

// unwrapInterface returns the dynamic value behind an interface typed Value.
func unwrapInterface(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}

	return v
}

// runtimeType is the dynamic type of v, or declared when v carries nothing.
func runtimeType(v reflect.Value, declared reflect.Type) reflect.Type {
	v = unwrapInterface(v)
	if isNil(v) && (!v.IsValid() || v.Kind() == reflect.Interface) {
		return declared
	}

	return v.Type()
}

// ptrDepthAndBase returns the pointer depth and the final base type.
func ptrDepthAndBase(t reflect.Type) (depth int, base reflect.Type) {
	depth, base = 0, t
	for base != nil && base.Kind() == reflect.Ptr {
		depth++
		base = base.Elem()
	}

	return
}

// conform makes v a value of exactly type t.
func conform(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	v = unwrapInterface(v)

	switch {
	case !v.IsValid():
		return reflect.Zero(t), nil
	case v.Type() == t:
		return v, nil
	case v.Type().AssignableTo(t):
		res := reflect.New(t).Elem()
		res.Set(v)

		return res, nil
	case v.Type().ConvertibleTo(t) && v.Kind() == t.Kind():
		return v.Convert(t), nil
	case v.Kind() == reflect.Ptr && !v.IsNil() && v.Elem().Type() == t:
		return v.Elem(), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", ErrTypeMismatch, typeStr(v.Type()), typeStr(t))
	}
}

// addressable returns v itself when it can be written in place, a settable copy otherwise.
func addressable(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Ptr || v.CanSet() {
		return v
	}

	res := reflect.New(v.Type()).Elem()
	res.Set(v)

	return res
}

// valueAs extracts v as a T, reporting false when it holds a different type.
func valueAs[T any](v reflect.Value) (T, bool) {
	var zero T

	v = unwrapInterface(v)
	if isNil(v) {
		if !v.IsValid() || v.Type().AssignableTo(reflect.TypeFor[T]()) {
			return zero, true
		}
	}

	if !v.Type().AssignableTo(reflect.TypeFor[T]()) {
		return zero, false
	}

	res, ok := v.Interface().(T)

	return res, ok
}

// isSequence reports slices, arrays and iter.Seq functions.
func isSequence(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return true
	default:
		return seqElem(t) != nil
	}
}

// elemOf is the element type of a sequence.
func elemOf(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		return t.Elem()
	}

	return seqElem(t)
}

// seqElem recognizes func(yield func(T) bool), the shape of iter.Seq[T].
func seqElem(t reflect.Type) reflect.Type {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 {
		return nil
	}

	yield := t.In(0)
	if yield.Kind() != reflect.Func || yield.NumIn() != 1 || yield.NumOut() != 1 || yield.Out(0).Kind() != reflect.Bool {
		return nil
	}

	return yield.In(0)
}

// collect reads every element of a slice, array or iter.Seq.
func collect(v reflect.Value) []reflect.Value {
	v = unwrapInterface(v)
	if isNil(v) {
		return nil
	}

	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		res := make([]reflect.Value, v.Len())
		for i := range v.Len() {
			res[i] = v.Index(i)
		}

		return res
	}

	var res []reflect.Value

	yield := reflect.MakeFunc(v.Type().In(0), func(args []reflect.Value) []reflect.Value {
		res = append(res, args[0])

		return []reflect.Value{reflect.ValueOf(true)}
	})
	v.Call([]reflect.Value{yield})

	return res
}
