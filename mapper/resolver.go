package mapper

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// ResolutionResult carries a value through a resolver chain together with
// its declared type, which stays known even when the value is nil.
type ResolutionResult struct {
	Value   reflect.Value
	Type    reflect.Type
	Context *ResolutionContext
}

// NewResolutionResult starts a chain from the source of ctx.
func NewResolutionResult(ctx *ResolutionContext) ResolutionResult {
	return ResolutionResult{Value: ctx.SourceValue(), Type: ctx.SourceType(), Context: ctx}
}

// New keeps the context of r and replaces the value.
func (r ResolutionResult) New(value reflect.Value, typ reflect.Type) ResolutionResult {
	return ResolutionResult{Value: value, Type: typ, Context: r.Context}
}

func (r ResolutionResult) IsNil() bool {
	return isNil(r.Value)
}

// ValueResolver computes the source side value of a destination member.
type ValueResolver interface {
	Resolve(source ResolutionResult) (ResolutionResult, error)
}

type ResolverFunc func(source ResolutionResult) (ResolutionResult, error)

func (f ResolverFunc) Resolve(source ResolutionResult) (ResolutionResult, error) {
	return f(source)
}

// memberResolver reads one member of the incoming value. A nil input resolves
// to a nil of the member type so chains over optional members stay quiet.
type memberResolver struct {
	accessor MemberAccessor
}

func (r memberResolver) Resolve(source ResolutionResult) (ResolutionResult, error) {
	if source.IsNil() {
		return source.New(reflect.Value{}, r.accessor.Type()), nil
	}

	v, err := r.accessor.GetValue(source.Value)
	if err != nil {
		return ResolutionResult{}, fmt.Errorf("read %s: %w", r.accessor.Name(), err)
	}

	return source.New(v, r.accessor.Type()), nil
}

func (r memberResolver) String() string {
	return r.accessor.Name()
}

// DelegateResolver adapts a plain function over the source type S, as given
// to MapFrom and FromMember.
type DelegateResolver[S any] struct {
	fn func(S) any
}

func NewDelegateResolver[S any](fn func(S) any) *DelegateResolver[S] {
	return &DelegateResolver[S]{fn: fn}
}

// Resolve fails with ErrResolverTypeMismatch when the incoming value is not an S.
// A nil dereference inside the function resolves to nil instead of failing.
func (r *DelegateResolver[S]) Resolve(source ResolutionResult) (ResolutionResult, error) {
	src, ok := valueAs[S](source.Value)
	if !ok {
		return ResolutionResult{}, fmt.Errorf("%w: expected %s but was %s",
			ErrResolverTypeMismatch, typeStr(reflect.TypeFor[S]()), typeStr(unwrapInterface(source.Value).Type()))
	}

	res, nilDeref := r.call(src)
	if nilDeref || res == nil {
		return source.New(reflect.Value{}, anyType), nil
	}

	v := reflect.ValueOf(res)

	return source.New(v, v.Type()), nil
}

func (r *DelegateResolver[S]) call(src S) (res any, nilDeref bool) {
	defer func() {
		if p := recover(); p != nil {
			if !isNilDereference(p) {
				panic(p)
			}

			res, nilDeref = nil, true
		}
	}()

	return r.fn(src), false
}

func isNilDereference(p any) bool {
	err, ok := p.(runtime.Error)

	return ok && strings.Contains(err.Error(), "nil pointer dereference")
}

// chainResolver runs its steps in order, each one reading from the result of the previous.
type chainResolver []ValueResolver

func (c chainResolver) Resolve(source ResolutionResult) (ResolutionResult, error) {
	res := source

	for _, step := range c {
		var err error

		res, err = step.Resolve(res)
		if err != nil {
			return ResolutionResult{}, err
		}
	}

	return res, nil
}
