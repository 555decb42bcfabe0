package mapper

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// MappingAction runs before or after the members of a type map are mapped.
type MappingAction func(source, destination reflect.Value) error

// CustomMapper replaces member mapping for a whole type map.
type CustomMapper func(ctx *ResolutionContext) (reflect.Value, error)

// DestinationCtor builds the destination from the source.
type DestinationCtor func(source reflect.Value) (reflect.Value, error)

// TypeMap holds the rules for one source/destination pair. It is changed while
// configuring and only read while mapping.
type TypeMap struct {
	mu sync.RWMutex

	pair         TypePair
	profile      string
	propertyMaps []*PropertyMap
	byName       map[string]*PropertyMap

	customMapper    CustomMapper
	destinationCtor DestinationCtor
	beforeMap       []MappingAction
	afterMap        []MappingAction
	includes        []TypePair
}

func newTypeMap(pair TypePair, profile string) *TypeMap {
	return &TypeMap{pair: pair, profile: profile, byName: map[string]*PropertyMap{}}
}

func (tm *TypeMap) Pair() TypePair                { return tm.pair }
func (tm *TypeMap) SourceType() reflect.Type      { return tm.pair.Source }
func (tm *TypeMap) DestinationType() reflect.Type { return tm.pair.Destination }

func (tm *TypeMap) Profile() string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	return tm.profile
}

func (tm *TypeMap) SetProfile(name string) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.profile = name
}

// FindOrCreatePropertyMap returns the rules for the member reached by accessor.
func (tm *TypeMap) FindOrCreatePropertyMap(accessor MemberAccessor) *PropertyMap {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if pm, ok := tm.byName[accessor.Name()]; ok {
		return pm
	}

	pm := newPropertyMap(accessor, len(tm.propertyMaps))
	tm.propertyMaps = append(tm.propertyMaps, pm)
	tm.byName[accessor.Name()] = pm

	return pm
}

func (tm *TypeMap) PropertyMapFor(name string) *PropertyMap {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	return tm.byName[name]
}

// GetPropertyMaps returns the member rules by mapping order, then declaration order.
func (tm *TypeMap) GetPropertyMaps() []*PropertyMap {
	tm.mu.RLock()
	res := slices.Clone(tm.propertyMaps)
	tm.mu.RUnlock()

	slices.SortStableFunc(res, func(a, b *PropertyMap) int {
		return cmp.Or(cmp.Compare(a.mappingOrder, b.mappingOrder), cmp.Compare(a.index, b.index))
	})

	return res
}

// UnmappedPropertyNames lists writable members with neither a source nor an Ignore.
func (tm *TypeMap) UnmappedPropertyNames() []string {
	if tm.CustomMapper() != nil {
		return nil
	}

	var res []string

	for _, pm := range tm.GetPropertyMaps() {
		if !pm.IsMapped() {
			res = append(res, pm.Name())
		}
	}

	return res
}

// UseCustomMapper makes the whole pair map through fn.
func (tm *TypeMap) UseCustomMapper(fn CustomMapper) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.customMapper = fn
}

func (tm *TypeMap) CustomMapper() CustomMapper {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	return tm.customMapper
}

func (tm *TypeMap) SetDestinationCtor(ctor DestinationCtor) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.destinationCtor = ctor
}

func (tm *TypeMap) DestinationCtor() DestinationCtor {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	return tm.destinationCtor
}

func (tm *TypeMap) AddBeforeMapAction(action MappingAction) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.beforeMap = append(tm.beforeMap, action)
}

func (tm *TypeMap) AddAfterMapAction(action MappingAction) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.afterMap = append(tm.afterMap, action)
}

func (tm *TypeMap) BeforeMapActions() []MappingAction {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	return slices.Clone(tm.beforeMap)
}

func (tm *TypeMap) AfterMapActions() []MappingAction {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	return slices.Clone(tm.afterMap)
}

// IncludeDerivedTypes lets a source whose runtime type is source use the
// type map of (source, destination) when mapped through this pair.
func (tm *TypeMap) IncludeDerivedTypes(source, destination reflect.Type) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	pair := TypePair{Source: source, Destination: destination}
	if !slices.Contains(tm.includes, pair) {
		tm.includes = append(tm.includes, pair)
	}
}

func (tm *TypeMap) IncludedPairs() []TypePair {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	return slices.Clone(tm.includes)
}

// derivedPairFor picks the included pair for a runtime source type.
func (tm *TypeMap) derivedPairFor(runtime reflect.Type) (TypePair, bool) {
	for _, pair := range tm.IncludedPairs() {
		if pair.Source == runtime {
			return pair, true
		}
	}

	return TypePair{}, false
}

func (tm *TypeMap) String() string {
	return tm.pair.String()
}

// MapFromPath points the destination member at a dotted path of source
// members, e.g. Customer.Address.City, replacing the matched chain.
func (tm *TypeMap) MapFromPath(member, path string) (*PropertyMap, error) {
	pm, err := tm.FindPropertyMap(member)
	if err != nil {
		return nil, err
	}

	chain, ok := resolvePath(tm.pair.Source, strings.Split(path, "."))
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", ErrUnknownSourcePath, path, typeStr(tm.pair.Source))
	}

	tm.mu.Lock()
	pm.sourceResolvers = chain
	pm.ignored = false
	tm.mu.Unlock()

	return pm, nil
}

// ResolveUsingPath assigns resolver to the destination member and feeds it
// the value at path instead of the whole source. An empty path feeds the source.
func (tm *TypeMap) ResolveUsingPath(member string, resolver ValueResolver, path string) (*PropertyMap, error) {
	pm, err := tm.FindPropertyMap(member)
	if err != nil {
		return nil, err
	}

	pm.AssignCustomValueResolver(resolver)

	if path == "" {
		return pm, nil
	}

	chain, ok := resolvePath(tm.pair.Source, strings.Split(path, "."))
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", ErrUnknownSourcePath, path, typeStr(tm.pair.Source))
	}

	pm.ChainTypeMemberForResolver(chainResolver(chain))

	return pm, nil
}

// FindPropertyMap returns the rules of a writable destination member, found
// the way FindMember finds it.
func (tm *TypeMap) FindPropertyMap(member string) (*PropertyMap, error) {
	accessor, ok := FindMember(tm.pair.Destination, member)
	if !ok || !accessor.CanWrite() {
		return nil, fmt.Errorf("%w: %s on %s", ErrUnknownMember, member, typeStr(tm.pair.Destination))
	}

	return tm.FindOrCreatePropertyMap(accessor), nil
}
