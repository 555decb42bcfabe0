package mapper

import (
	"reflect"
	"slices"
)

// PropertyMap holds the rules for one destination member. It is created when
// the member is first configured and never removed; Ignore only flags it.
type PropertyMap struct {
	destination MemberAccessor
	index       int

	sourceResolvers      []ValueResolver
	customResolver       ValueResolver
	customMemberResolver ValueResolver

	formatters []ValueFormatter
	skipped    []reflect.Type

	nullSubstitute    any
	hasNullSubstitute bool

	ignored             bool
	useDestinationValue bool
	mappingOrder        int
}

func newPropertyMap(destination MemberAccessor, index int) *PropertyMap {
	return &PropertyMap{destination: destination, index: index}
}

func (pm *PropertyMap) DestinationMember() MemberAccessor { return pm.destination }
func (pm *PropertyMap) Name() string                      { return pm.destination.Name() }

// ChainResolver appends a step to the default source member chain.
func (pm *PropertyMap) ChainResolver(resolver ValueResolver) {
	pm.sourceResolvers = append(pm.sourceResolvers, resolver)
}

// AssignCustomValueResolver replaces the default chain with resolver.
func (pm *PropertyMap) AssignCustomValueResolver(resolver ValueResolver) {
	pm.customResolver = resolver
	pm.ignored = false
}

// ChainTypeMemberForResolver picks the source member handed to the custom resolver.
func (pm *PropertyMap) ChainTypeMemberForResolver(resolver ValueResolver) {
	pm.customMemberResolver = resolver
}

func (pm *PropertyMap) HasCustomValueResolver() bool {
	return pm.customResolver != nil
}

// Resolvers returns the chain that runs for this member.
func (pm *PropertyMap) Resolvers() []ValueResolver {
	if pm.customResolver == nil {
		return slices.Clone(pm.sourceResolvers)
	}

	if pm.customMemberResolver == nil {
		return []ValueResolver{pm.customResolver}
	}

	return []ValueResolver{pm.customMemberResolver, pm.customResolver}
}

// ResolveValue runs the chain starting from the source of input.
func (pm *PropertyMap) ResolveValue(input ResolutionResult) (ResolutionResult, error) {
	res := input

	for _, resolver := range pm.Resolvers() {
		var err error

		res, err = resolver.Resolve(res)
		if err != nil {
			return ResolutionResult{}, err
		}
	}

	return res, nil
}

func (pm *PropertyMap) Ignore() {
	pm.ignored = true
}

func (pm *PropertyMap) IsIgnored() bool {
	return pm.ignored
}

// IsMapped reports whether the member is ignored or has something to read from.
func (pm *PropertyMap) IsMapped() bool {
	return pm.ignored || len(pm.sourceResolvers) > 0 || pm.customResolver != nil
}

func (pm *PropertyMap) SetUseDestinationValue(use bool) {
	pm.useDestinationValue = use
}

func (pm *PropertyMap) UseDestinationValue() bool {
	return pm.useDestinationValue
}

func (pm *PropertyMap) SetMappingOrder(order int) {
	pm.mappingOrder = order
}

func (pm *PropertyMap) MappingOrder() int {
	return pm.mappingOrder
}

func (pm *PropertyMap) AddFormatter(formatter ValueFormatter) {
	pm.formatters = append(pm.formatters, formatter)
}

func (pm *PropertyMap) Formatters() []ValueFormatter {
	return slices.Clone(pm.formatters)
}

// AddFormatterToSkip drops formatters of type t, including profile wide ones.
func (pm *PropertyMap) AddFormatterToSkip(t reflect.Type) {
	pm.skipped = append(pm.skipped, t)
}

func (pm *PropertyMap) FormattersToSkip() []reflect.Type {
	return slices.Clone(pm.skipped)
}

// SetNullSubstitute sets the value used when the source resolves to nil.
func (pm *PropertyMap) SetNullSubstitute(value any) {
	pm.nullSubstitute = value
	pm.hasNullSubstitute = true
}

func (pm *PropertyMap) NullSubstitute() (any, bool) {
	return pm.nullSubstitute, pm.hasNullSubstitute
}
