package mapper

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"sync"

	"object-mapper/internal/match"
	"object-mapper/options"
	"object-mapper/primitive"
)

// ConfigurationProvider is what an Engine needs from the configuration.
type ConfigurationProvider interface {
	// FindTypeMapFor returns the type map for the declared pair, preferring an
	// included pair that matches the runtime type of source.
	FindTypeMapFor(source reflect.Value, sourceType, destinationType reflect.Type) *TypeMap
	// CreateTypeMap returns the type map of the pair, creating it with
	// automatic member matching when missing.
	CreateTypeMap(sourceType, destinationType reflect.Type) *TypeMap
	// Profile returns the named profile, creating it when missing.
	Profile(name string) *Profile
	// MapNullSourceValuesAsNull is the switch of the default profile.
	MapNullSourceValuesAsNull() bool
	// OnTypeMapCreated subscribes to type map creation.
	OnTypeMapCreated(handler func(*TypeMap))
	// OnChanged subscribes to every other change that can affect strategy selection.
	OnChanged(handler func())
	Mappers() []ObjectMapper
	Enum(t reflect.Type) (*EnumType, bool)
	Converter(pair TypePair) (Converter, bool)
	Implementation(iface reflect.Type) (reflect.Type, bool)
	Conversions() primitive.CategoryEnum
	AssertConfigurationIsValid(typeMaps ...*TypeMap) error
}

// Configuration is the registry of type maps, profiles and registered types.
// Build one at startup and hand it to NewEngine; nothing here is global.
type Configuration struct {
	mu sync.RWMutex

	typeMaps        map[TypePair]*TypeMap
	order           []*TypeMap
	profiles        map[string]*Profile
	enums           map[reflect.Type]*EnumType
	converters      map[TypePair]Converter
	implementations map[reflect.Type]reflect.Type
	mappers         []ObjectMapper

	sourceConvention      match.NamingConvention
	destinationConvention match.NamingConvention

	createdHandlers []func(*TypeMap)
	changedHandlers []func()

	conversions primitive.CategoryEnum
	factory     *serviceFactory
	logger      *slog.Logger
}

var _ ConfigurationProvider = (*Configuration)(nil)

func NewConfiguration(opts ...options.Option) *Configuration {
	o := options.New(opts...)

	c := &Configuration{
		typeMaps:              map[TypePair]*TypeMap{},
		profiles:              map[string]*Profile{},
		enums:                 map[reflect.Type]*EnumType{},
		converters:            map[TypePair]Converter{},
		implementations:       map[reflect.Type]reflect.Type{},
		sourceConvention:      match.PascalCase{},
		destinationConvention: match.PascalCase{},
		conversions:           o.Conversions,
		factory:               newServiceFactory(o.Factory),
		logger:                o.Logger,
	}

	c.profiles[DefaultProfileName] = newProfile(DefaultProfileName, o.MapNullSourceValuesAsNull, c.changed)
	c.mappers = DefaultMappers(c)

	return c
}

func (c *Configuration) FindTypeMapFor(source reflect.Value, sourceType, destinationType reflect.Type) *TypeMap {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pair := TypePair{Source: sourceType, Destination: destinationType}
	tm := c.typeMaps[pair]

	runtime := runtimeType(source, sourceType)
	if runtime == nil || runtime == sourceType {
		return tm
	}

	if tm != nil {
		if derived, ok := tm.derivedPairFor(runtime); ok {
			if derivedMap := c.typeMaps[derived]; derivedMap != nil {
				return derivedMap
			}
		}

		return tm
	}

	if sourceType.Kind() == reflect.Interface {
		return c.typeMaps[TypePair{Source: runtime, Destination: destinationType}]
	}

	return nil
}

// TypeMaps returns every type map in creation order.
func (c *Configuration) TypeMaps() []*TypeMap {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.order)
}

func (c *Configuration) CreateTypeMap(sourceType, destinationType reflect.Type) *TypeMap {
	return c.createTypeMap(sourceType, destinationType, DefaultProfileName)
}

func (c *Configuration) createTypeMap(sourceType, destinationType reflect.Type, profile string) *TypeMap {
	pair := TypePair{Source: sourceType, Destination: destinationType}

	c.mu.Lock()
	if tm, ok := c.typeMaps[pair]; ok {
		c.mu.Unlock()

		return tm
	}

	tm := newTypeMap(pair, profile)
	for _, member := range Members(destinationType) {
		if !member.CanWrite() {
			continue
		}

		pm := tm.FindOrCreatePropertyMap(member)
		for _, resolver := range c.matchMember(sourceType, member) {
			pm.ChainResolver(resolver)
		}
	}

	c.typeMaps[pair] = tm
	c.order = append(c.order, tm)
	handlers := slices.Clone(c.createdHandlers)
	c.mu.Unlock()

	c.logger.Debug("type map created", slog.String("pair", pair.String()),
		slog.Int("members", len(tm.propertyMaps)), slog.Any("unmapped", tm.UnmappedPropertyNames()))

	for _, handler := range handlers {
		handler(tm)
	}

	return tm
}

// matchMember finds the source side chain of a destination member. In order:
// the mapper tag (a dotted source path), the json tag, the member name
// exactly, case-insensitively, and finally flattened through nested members.
func (c *Configuration) matchMember(sourceType reflect.Type, dst MemberAccessor) []ValueResolver {
	if field, ok := dst.(fieldAccessor); ok {
		if tag := field.field.Tag.Get("mapper"); tag != "" && tag != "-" {
			if chain, ok := resolvePath(sourceType, strings.Split(tag, ".")); ok {
				return chain
			}
		}

		if dstJSON := jsonTagName(field.field); dstJSON != "" {
			for _, member := range Members(sourceType) {
				if src, ok := member.(fieldAccessor); ok && jsonTagName(src.field) == dstJSON {
					return []ValueResolver{memberResolver{accessor: member}}
				}
			}
		}
	}

	if member, ok := FindMember(sourceType, dst.Name()); ok {
		return []ValueResolver{memberResolver{accessor: member}}
	}

	chain, _ := c.flatten(sourceType, c.destinationConvention.Split(dst.Name()))

	return chain
}

// flatten matches words against a path of source members, longest leading
// member name first, e.g. CustomerAddressCity against Customer.Address.City.
func (c *Configuration) flatten(t reflect.Type, words []string) ([]ValueResolver, bool) {
	if len(words) == 0 {
		return nil, false
	}

	if member, ok := FindMember(t, c.sourceConvention.Join(words)); ok {
		return []ValueResolver{memberResolver{accessor: member}}, true
	}

	for _, split := range match.Prefixes(words, c.sourceConvention) {
		member, ok := FindMember(t, split[0])
		if !ok {
			continue
		}

		if rest, ok := c.flatten(member.Type(), c.sourceConvention.Split(split[1])); ok {
			return append([]ValueResolver{memberResolver{accessor: member}}, rest...), true
		}
	}

	return nil, false
}

// resolvePath follows exact member names.
func resolvePath(t reflect.Type, path []string) ([]ValueResolver, bool) {
	var chain []ValueResolver

	for _, name := range path {
		member, ok := FindMember(t, strings.TrimSpace(name))
		if !ok {
			return nil, false
		}

		chain = append(chain, memberResolver{accessor: member})
		t = member.Type()
	}

	return chain, len(chain) > 0
}

func jsonTagName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	// trim options
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}

	return tag
}

func (c *Configuration) Profile(name string) *Profile {
	if name == "" {
		name = DefaultProfileName
	}

	c.mu.RLock()
	p, ok := c.profiles[name]
	c.mu.RUnlock()

	if ok {
		return p
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.profiles[name]; ok {
		return p
	}

	p = newProfile(name, c.profiles[DefaultProfileName].MapNullSourceValuesAsNull(), c.changed)
	c.profiles[name] = p

	return p
}

// AddProfile is Profile under the name used while configuring.
func (c *Configuration) AddProfile(name string) *Profile {
	return c.Profile(name)
}

// HasProfile reports whether name was configured, without creating it.
func (c *Configuration) HasProfile(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.profiles[name]

	return ok
}

func (c *Configuration) MapNullSourceValuesAsNull() bool {
	return c.Profile(DefaultProfileName).MapNullSourceValuesAsNull()
}

func (c *Configuration) OnTypeMapCreated(handler func(*TypeMap)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.createdHandlers = append(c.createdHandlers, handler)
}

func (c *Configuration) OnChanged(handler func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.changedHandlers = append(c.changedHandlers, handler)
}

func (c *Configuration) changed() {
	c.mu.RLock()
	handlers := slices.Clone(c.changedHandlers)
	c.mu.RUnlock()

	for _, handler := range handlers {
		handler()
	}
}

func (c *Configuration) Mappers() []ObjectMapper {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.mappers)
}

// SetMappers replaces the strategy chain; order is priority.
func (c *Configuration) SetMappers(mappers ...ObjectMapper) {
	c.mu.Lock()
	c.mappers = slices.Clone(mappers)
	c.mu.Unlock()

	c.changed()
}

func (c *Configuration) registerEnum(t reflect.Type, flags bool, names []string, values []reflect.Value) error {
	enum, err := newEnumType(t, flags, names, values)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.enums[t] = enum
	c.mu.Unlock()

	c.changed()

	return nil
}

func (c *Configuration) Enum(t reflect.Type) (*EnumType, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	enum, ok := c.enums[t]

	return enum, ok
}

// RegisterConverter registers fn, a function of one of the shapes accepted
// by ParseConverter, for its source/destination pair.
func (c *Configuration) RegisterConverter(fn any) error {
	converter, err := ParseConverter(fn)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.converters[converter.Pair()] = converter
	c.mu.Unlock()

	c.logger.Debug("converter registered", slog.String("pair", converter.Pair().String()),
		slog.String("func", converter.String()))
	c.changed()

	return nil
}

func (c *Configuration) Converter(pair TypePair) (Converter, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	converter, ok := c.converters[pair]

	return converter, ok
}

// RegisterImplementation names the concrete type created for an interface destination.
func (c *Configuration) RegisterImplementation(iface, concrete reflect.Type) error {
	if iface.Kind() != reflect.Interface {
		return fmt.Errorf("%w: %s is not an interface", ErrInvalidConfiguration, typeStr(iface))
	}

	if concrete.Kind() == reflect.Interface || !concrete.Implements(iface) {
		return fmt.Errorf("%w: %s does not implement %s", ErrInvalidConfiguration, typeStr(concrete), typeStr(iface))
	}

	c.mu.Lock()
	c.implementations[iface] = concrete
	c.mu.Unlock()

	c.changed()

	return nil
}

func (c *Configuration) Implementation(iface reflect.Type) (reflect.Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	concrete, ok := c.implementations[iface]

	return concrete, ok
}

func (c *Configuration) Conversions() primitive.CategoryEnum {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.conversions
}

// SetConversions changes the scalar conversion families the type converter may use.
func (c *Configuration) SetConversions(allowed primitive.CategoryEnum) {
	c.mu.Lock()
	c.conversions = allowed
	c.mu.Unlock()

	c.changed()
}

// SetSourceNamingConvention sets how source member names split into words.
func (c *Configuration) SetSourceNamingConvention(convention match.NamingConvention) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sourceConvention = convention
}

// SetDestinationNamingConvention sets how destination member names split into words.
func (c *Configuration) SetDestinationNamingConvention(convention match.NamingConvention) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.destinationConvention = convention
}

func (c *Configuration) Logger() *slog.Logger {
	return c.logger
}
