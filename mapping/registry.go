package mapping

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"

	"object-mapper/internal/common"
	"object-mapper/mapper"
)

var (
	ErrUnknownType   = errors.New("type is not registered")
	ErrAmbiguousType = errors.New("type name matches more than one registered type")
	ErrUnnamedType   = errors.New("only named types can be registered")
)

// Registry resolves the names used in mapping files. Types are registered
// once and found by short, full or bare name; formatters and resolvers by
// the name the file uses.
type Registry struct {
	mu sync.RWMutex

	types      map[string]reflect.Type
	formatters map[string]mapper.ValueFormatter
	resolvers  map[string]mapper.ValueResolver
}

func NewRegistry() *Registry {
	return &Registry{
		types:      map[string]reflect.Type{},
		formatters: map[string]mapper.ValueFormatter{},
		resolvers:  map[string]mapper.ValueResolver{},
	}
}

// RegisterTypes adds named types. Pointers are registered as their element
// type; write "*pkg.Name" in the file to get the pointer back.
func (r *Registry) RegisterTypes(types ...reflect.Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range types {
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}

		if t.Name() == "" || t.PkgPath() == "" {
			return fmt.Errorf("%w: %s", ErrUnnamedType, t)
		}

		r.types[fullID(t)] = t
	}

	return nil
}

// Register is RegisterTypes for a static type.
func Register[T any](r *Registry) error {
	return r.RegisterTypes(reflect.TypeFor[T]())
}

func (r *Registry) RegisterFormatter(name string, formatter mapper.ValueFormatter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.formatters[name] = formatter
}

func (r *Registry) RegisterResolver(name string, resolver mapper.ValueResolver) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.resolvers[name] = resolver
}

func (r *Registry) Formatter(name string) (mapper.ValueFormatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formatters[name]

	return f, ok
}

func (r *Registry) Resolver(name string) (mapper.ValueResolver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.resolvers[name]

	return res, ok
}

// FormatterNames lists registered formatter names, sorted.
func (r *Registry) FormatterNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.formatters))
}

// ResolverNames lists registered resolver names, sorted.
func (r *Registry) ResolverNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.resolvers))
}

// TypeNames lists the short "pkg.Name" form of every registered type, sorted.
func (r *Registry) TypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for _, t := range r.types {
		names = append(names, shortID(t))
	}

	slices.Sort(names)

	return names
}

// LookupType resolves a type name like:
// - "store.Order" (short)
// - "object-mapper/store.Order" (full)
// - "Order" (name only)
// - "*store.Order" (pointer to any of the above).
func (r *Registry) LookupType(id string) (reflect.Type, error) {
	if rest, ok := strings.CutPrefix(id, "*"); ok {
		t, err := r.LookupType(rest)
		if err != nil {
			return nil, err
		}

		return reflect.PointerTo(t), nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.types[id]; ok {
		return t, nil
	}

	var found []reflect.Type

	lastDot := strings.LastIndex(id, ".")
	pkg, name := "", id

	if lastDot >= 0 {
		pkg, name = id[:lastDot], id[lastDot+1:]
	}

	for _, t := range r.types {
		if t.Name() != name {
			continue
		}

		if pkg == "" || t.PkgPath() == pkg || strings.HasSuffix(t.PkgPath(), "/"+pkg) {
			found = append(found, t)
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, id)
	case 1:
		return found[0], nil
	default:
		ids := make([]string, 0, len(found))
		for _, t := range found {
			ids = append(ids, fullID(t))
		}

		slices.Sort(ids)

		return nil, fmt.Errorf("%w: %s could be %s", ErrAmbiguousType, id, strings.Join(ids, ", "))
	}
}

func fullID(t reflect.Type) string {
	return t.PkgPath() + "." + t.Name()
}

func shortID(t reflect.Type) string {
	return common.PkgAlias(t.PkgPath()) + "." + t.Name()
}
