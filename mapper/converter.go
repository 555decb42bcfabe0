package mapper

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"
)

var (
	ErrIsNotAConverter         = errors.New("provided function is not a recognizable converter")
	ErrConverterIsNotAFunction = errors.New("provided converter is not a function")
	ErrDoublePointer           = errors.New("converter function does not support double pointers")
)

// Converter is a user function registered for one source/destination pair.
type Converter struct {
	Src, Dst     reflect.Type
	PackageAlias string
	Name         string
	HasBool      bool
	HasErr       bool

	fn reflect.Value
}

// ParseConverter inspects the provided function and returns a Converter if it has a supported shape.
//
// Supports interfaces:
//   - func(src Type) (dst Type)
//   - func(src Type) (dst Type, bool)
//   - func(src Type) (dst Type, error)
//   - func(src Type) (dst Type, bool, error)
func ParseConverter(fn any) (Converter, error) {
	fnVal := reflect.ValueOf(fn)
	if !fnVal.IsValid() || fnVal.Kind() != reflect.Func {
		return Converter{}, ErrConverterIsNotAFunction
	}

	fnType := fnVal.Type()
	if fnType.NumIn() != 1 || fnType.NumOut() == 0 || fnType.IsVariadic() {
		return Converter{}, ErrIsNotAConverter
	}

	src := fnType.In(0)
	if src.Kind() == reflect.Ptr && src.Elem().Kind() == reflect.Ptr {
		return Converter{}, ErrDoublePointer
	}

	dst := fnType.Out(0)
	if dst.Kind() == reflect.Ptr && dst.Elem().Kind() == reflect.Ptr {
		return Converter{}, ErrDoublePointer
	}

	converter := Converter{Src: src, Dst: dst, fn: fnVal}

	if fnPC := runtime.FuncForPC(fnVal.Pointer()); fnPC != nil {
		alias, name, _ := strings.Cut(fnPC.Name(), ".")
		_, converter.PackageAlias = path.Split(alias)
		converter.Name = name
	}

	switch fnType.NumOut() {
	default:
		return Converter{}, ErrIsNotAConverter

	case 1:
		return converter, nil

	case 2:
		last := fnType.Out(1)

		switch {
		default:
			return Converter{}, ErrIsNotAConverter
		case last.Kind() == reflect.Bool:
			converter.HasBool = true
		case isError(last):
			converter.HasErr = true
		}

		return converter, nil

	case 3:
		tbool, terr := fnType.Out(1), fnType.Out(2)
		if tbool.Kind() != reflect.Bool || !isError(terr) {
			return Converter{}, ErrIsNotAConverter
		}

		converter.HasBool = true
		converter.HasErr = true

		return converter, nil
	}
}

func (c Converter) Pair() TypePair {
	return TypePair{Source: c.Src, Destination: c.Dst}
}

func (c Converter) String() string {
	if c.Name == "" {
		return c.Pair().String()
	}

	return c.PackageAlias + "." + c.Name
}

// Convert calls the function. A false bool result becomes ErrConversionRejected.
func (c Converter) Convert(src reflect.Value) (reflect.Value, error) {
	src, err := conform(src, c.Src)
	if err != nil {
		return reflect.Value{}, err
	}

	out := c.fn.Call([]reflect.Value{src})

	if c.HasErr {
		if errVal := out[len(out)-1]; !errVal.IsNil() {
			return reflect.Value{}, errVal.Interface().(error)
		}
	}

	if c.HasBool && !out[1].Bool() {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrConversionRejected, c)
	}

	return out[0], nil
}
