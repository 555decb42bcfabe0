package mapper

import (
	"fmt"
	"reflect"
	"sync"

	"object-mapper/internal/match"
)

// TypeConverter converts a whole source into a destination.
type TypeConverter[S, D any] interface {
	Convert(source S) (D, error)
}

// MappingExpression configures the type map of S to D. Configuration mistakes
// such as unknown member names panic with a *ConfigurationError.
type MappingExpression[S, D any] struct {
	config  *Configuration
	typeMap *TypeMap
}

// CreateMap registers (or reopens) the type map of S to D.
func CreateMap[S, D any](c *Configuration) *MappingExpression[S, D] {
	return &MappingExpression[S, D]{
		config:  c,
		typeMap: c.CreateTypeMap(reflect.TypeFor[S](), reflect.TypeFor[D]()),
	}
}

func (e *MappingExpression[S, D]) TypeMap() *TypeMap {
	return e.typeMap
}

// ForMember configures the destination member called name.
func (e *MappingExpression[S, D]) ForMember(name string, configure func(m *MemberExpression[S])) *MappingExpression[S, D] {
	pm := e.typeMap.PropertyMapFor(name)
	if pm == nil {
		var names []string
		for _, pm := range e.typeMap.GetPropertyMaps() {
			names = append(names, pm.Name())
		}

		panic(&ConfigurationError{
			Pair:        e.typeMap.Pair(),
			Member:      name,
			Suggestions: match.Suggest(name, names, match.SuggestionThreshold, maxSuggestions),
			Err:         ErrUnknownMember,
		})
	}

	configure(e.member(pm))

	return e
}

// ForAllMembers applies configure to every destination member.
func (e *MappingExpression[S, D]) ForAllMembers(configure func(m *MemberExpression[S])) {
	for _, pm := range e.typeMap.GetPropertyMaps() {
		configure(e.member(pm))
	}
}

func (e *MappingExpression[S, D]) member(pm *PropertyMap) *MemberExpression[S] {
	return &MemberExpression[S]{config: e.config, pair: e.typeMap.Pair(), propertyMap: pm}
}

// Include makes sources whose runtime type is sourceType use the type map of
// (sourceType, destinationType) when mapped as S to D.
func (e *MappingExpression[S, D]) Include(sourceType, destinationType reflect.Type) *MappingExpression[S, D] {
	if !sourceType.AssignableTo(reflect.TypeFor[S]()) || !destinationType.AssignableTo(reflect.TypeFor[D]()) {
		panic(&ConfigurationError{
			Pair: e.typeMap.Pair(),
			Err: fmt.Errorf("%w: included pair %s does not derive from the mapped pair",
				ErrInvalidConfiguration, TypePair{Source: sourceType, Destination: destinationType}),
		})
	}

	e.typeMap.IncludeDerivedTypes(sourceType, destinationType)

	return e
}

func (e *MappingExpression[S, D]) WithProfile(name string) *MappingExpression[S, D] {
	e.config.Profile(name)
	e.typeMap.SetProfile(name)

	return e
}

// ConvertUsing replaces member mapping with fn.
func (e *MappingExpression[S, D]) ConvertUsing(fn func(source S) D) {
	e.ConvertUsingContext(func(_ *ResolutionContext, source S) (D, error) {
		return fn(source), nil
	})
}

// ConvertUsingContext replaces member mapping with fn, which also sees the context.
func (e *MappingExpression[S, D]) ConvertUsingContext(fn func(ctx *ResolutionContext, source S) (D, error)) {
	e.typeMap.UseCustomMapper(func(ctx *ResolutionContext) (reflect.Value, error) {
		src, ok := valueAs[S](ctx.SourceValue())
		if !ok {
			return reflect.Value{}, sourceMismatch[S](ctx.SourceValue())
		}

		dst, err := fn(ctx, src)
		if err != nil {
			return reflect.Value{}, err
		}

		return reflect.ValueOf(&dst).Elem(), nil
	})
}

// ConvertUsingConverter replaces member mapping with converter.
func (e *MappingExpression[S, D]) ConvertUsingConverter(converter TypeConverter[S, D]) {
	e.ConvertUsingContext(func(_ *ResolutionContext, source S) (D, error) {
		return converter.Convert(source)
	})
}

// ConvertUsingType is ConvertUsingConverter with a converter built on first use
// by the configured factory.
func (e *MappingExpression[S, D]) ConvertUsingType(converterType reflect.Type) {
	factory := e.config.factory

	e.ConvertUsingContext(func(_ *ResolutionContext, source S) (D, error) {
		var zero D

		inst, err := factory.Instance(converterType)
		if err != nil {
			return zero, err
		}

		converter, ok := inst.(TypeConverter[S, D])
		if !ok {
			return zero, fmt.Errorf("%w: %s", ErrNotAConverter, typeStr(converterType))
		}

		return converter.Convert(source)
	})
}

// BeforeMap runs fn once before any member is mapped.
func (e *MappingExpression[S, D]) BeforeMap(fn func(source S, destination *D)) *MappingExpression[S, D] {
	e.typeMap.AddBeforeMapAction(typedAction(fn))

	return e
}

// AfterMap runs fn once after every member is mapped.
func (e *MappingExpression[S, D]) AfterMap(fn func(source S, destination *D)) *MappingExpression[S, D] {
	e.typeMap.AddAfterMapAction(typedAction(fn))

	return e
}

// ConstructUsing builds new destinations with ctor instead of a zero value.
func (e *MappingExpression[S, D]) ConstructUsing(ctor func(source S) D) *MappingExpression[S, D] {
	e.typeMap.SetDestinationCtor(func(source reflect.Value) (reflect.Value, error) {
		src, ok := valueAs[S](source)
		if !ok {
			return reflect.Value{}, sourceMismatch[S](source)
		}

		dst := ctor(src)

		return reflect.ValueOf(&dst).Elem(), nil
	})

	return e
}

func typedAction[S, D any](fn func(S, *D)) MappingAction {
	return func(source, destination reflect.Value) error {
		src, ok := valueAs[S](source)
		if !ok {
			return sourceMismatch[S](source)
		}

		if destination.CanAddr() && destination.Type() == reflect.TypeFor[D]() {
			fn(src, destination.Addr().Interface().(*D))

			return nil
		}

		dst, ok := valueAs[D](destination)
		if !ok {
			return fmt.Errorf("%w: destination %s is not %s",
				ErrTypeMismatch, typeStr(destination.Type()), typeStr(reflect.TypeFor[D]()))
		}

		fn(src, &dst)

		return nil
	}
}

func sourceMismatch[S any](v reflect.Value) error {
	return fmt.Errorf("%w: expected %s but was %s",
		ErrTypeMismatch, typeStr(reflect.TypeFor[S]()), typeStr(unwrapInterface(v).Type()))
}

// MemberExpression configures one destination member of a type map from S.
type MemberExpression[S any] struct {
	config      *Configuration
	pair        TypePair
	propertyMap *PropertyMap
}

func (m *MemberExpression[S]) PropertyMap() *PropertyMap {
	return m.propertyMap
}

// MapFrom reads the member value with fn. A nil dereference inside fn yields nil.
func (m *MemberExpression[S]) MapFrom(fn func(source S) any) {
	m.propertyMap.AssignCustomValueResolver(NewDelegateResolver(fn))
}

func (m *MemberExpression[S]) Ignore() {
	m.propertyMap.Ignore()
}

// SetMappingOrder moves the member before those with a higher order; the default is 0.
func (m *MemberExpression[S]) SetMappingOrder(order int) {
	m.propertyMap.SetMappingOrder(order)
}

// UseDestinationValue keeps a non empty value already present on the destination.
func (m *MemberExpression[S]) UseDestinationValue() {
	m.propertyMap.SetUseDestinationValue(true)
}

// NullSubstitute is mapped instead of a nil source value.
func (m *MemberExpression[S]) NullSubstitute(value any) {
	m.propertyMap.SetNullSubstitute(value)
}

// FormatNullValueAs is NullSubstitute for rendered members.
func (m *MemberExpression[S]) FormatNullValueAs(text string) {
	m.propertyMap.SetNullSubstitute(text)
}

func (m *MemberExpression[S]) AddFormatter(formatter ValueFormatter) {
	m.propertyMap.AddFormatter(formatter)
}

// AddFormatterType adds a formatter built on first use by the configured factory.
func (m *MemberExpression[S]) AddFormatterType(formatterType reflect.Type) {
	m.propertyMap.AddFormatter(deferredFormatter{typ: formatterType, factory: m.config.factory})
}

// SkipFormatter drops formatters of formatterType for this member, profile wide ones included.
func (m *MemberExpression[S]) SkipFormatter(formatterType reflect.Type) {
	m.propertyMap.AddFormatterToSkip(formatterType)
}

// ResolveUsing computes the member with resolver, fed with the whole source
// unless FromMember narrows it.
func (m *MemberExpression[S]) ResolveUsing(resolver ValueResolver) *ResolutionExpression[S] {
	m.propertyMap.AssignCustomValueResolver(resolver)

	return &ResolutionExpression[S]{pair: m.pair, propertyMap: m.propertyMap}
}

// ResolveUsingType is ResolveUsing with a resolver built on first use by the configured factory.
func (m *MemberExpression[S]) ResolveUsingType(resolverType reflect.Type) *ResolutionExpression[S] {
	return m.ResolveUsing(deferredResolver{typ: resolverType, factory: m.config.factory})
}

// ResolutionExpression narrows the input of a custom resolver.
type ResolutionExpression[S any] struct {
	pair        TypePair
	propertyMap *PropertyMap
}

// FromMember feeds the resolver with the source member called name.
func (r *ResolutionExpression[S]) FromMember(name string) *ResolutionExpression[S] {
	member, ok := FindMember(reflect.TypeFor[S](), name)
	if !ok {
		var names []string
		for _, member := range Members(reflect.TypeFor[S]()) {
			names = append(names, member.Name())
		}

		panic(&ConfigurationError{
			Pair:        r.pair,
			Member:      r.propertyMap.Name(),
			Suggestions: match.Suggest(name, names, match.SuggestionThreshold, maxSuggestions),
			Err:         fmt.Errorf("%w: source has no member %s", ErrUnknownMember, name),
		})
	}

	r.propertyMap.ChainTypeMemberForResolver(memberResolver{accessor: member})

	return r
}

// FromMemberFunc feeds the resolver with the result of fn.
func (r *ResolutionExpression[S]) FromMemberFunc(fn func(source S) any) *ResolutionExpression[S] {
	r.propertyMap.ChainTypeMemberForResolver(NewDelegateResolver(fn))

	return r
}

// ConstructedBy builds the resolver lazily with ctor, once.
func (r *ResolutionExpression[S]) ConstructedBy(ctor func() ValueResolver) *ResolutionExpression[S] {
	build := sync.OnceValue(ctor)

	r.propertyMap.AssignCustomValueResolver(ResolverFunc(func(source ResolutionResult) (ResolutionResult, error) {
		return build().Resolve(source)
	}))

	return r
}
