package mapper

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"object-mapper/options"
)

// serviceFactory builds resolvers, formatters and converters known only by
// type. Instances are created on first use and then shared.
type serviceFactory struct {
	factory   options.Factory
	group     singleflight.Group
	instances sync.Map

	// keys gives every type its own flight; type strings are not unique
	keys    sync.Map
	lastKey atomic.Uint64
}

func newServiceFactory(factory options.Factory) *serviceFactory {
	if factory == nil {
		factory = newInstance
	}

	return &serviceFactory{factory: factory}
}

// newInstance is the default factory: a zero value, or a pointer to one for pointer types.
func newInstance(t reflect.Type) (any, error) {
	if t.Kind() == reflect.Ptr {
		return reflect.New(t.Elem()).Interface(), nil
	}

	if t.Kind() == reflect.Interface {
		return nil, fmt.Errorf("%w: %s", ErrAbstractDestination, typeStr(t))
	}

	return reflect.New(t).Elem().Interface(), nil
}

func (f *serviceFactory) Instance(t reflect.Type) (any, error) {
	if inst, ok := f.instances.Load(t); ok {
		return inst, nil
	}

	inst, err, _ := f.group.Do(f.flightKey(t), func() (any, error) {
		if inst, ok := f.instances.Load(t); ok {
			return inst, nil
		}

		inst, err := f.factory(t)
		if err != nil {
			return nil, fmt.Errorf("construct %s: %w", typeStr(t), err)
		}

		f.instances.Store(t, inst)

		return inst, nil
	})

	return inst, err
}

func (f *serviceFactory) flightKey(t reflect.Type) string {
	if key, ok := f.keys.Load(t); ok {
		return key.(string)
	}

	key, _ := f.keys.LoadOrStore(t, strconv.FormatUint(f.lastKey.Add(1), 10))

	return key.(string)
}

type deferredResolver struct {
	typ     reflect.Type
	factory *serviceFactory
}

func (r deferredResolver) Resolve(source ResolutionResult) (ResolutionResult, error) {
	inst, err := r.factory.Instance(r.typ)
	if err != nil {
		return ResolutionResult{}, err
	}

	resolver, ok := inst.(ValueResolver)
	if !ok {
		return ResolutionResult{}, fmt.Errorf("%w: %s", ErrNotAResolver, typeStr(r.typ))
	}

	return resolver.Resolve(source)
}

type deferredFormatter struct {
	typ     reflect.Type
	factory *serviceFactory
}

func (f deferredFormatter) FormatterType() reflect.Type {
	return f.typ
}

func (f deferredFormatter) FormatValue(ctx *ResolutionContext) (string, error) {
	inst, err := f.factory.Instance(f.typ)
	if err != nil {
		return "", err
	}

	formatter, ok := inst.(ValueFormatter)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotAFormatter, typeStr(f.typ))
	}

	return formatter.FormatValue(ctx)
}
