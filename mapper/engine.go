package mapper

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"object-mapper/options"
)

// Engine maps values using a ConfigurationProvider. It is safe for concurrent
// use once the configuration is built.
//
// Cyclic object graphs are not detected and recurse until the stack runs out.
type Engine struct {
	config  ConfigurationProvider
	logger  *slog.Logger
	metrics *Metrics

	mu      sync.RWMutex
	mappers []ObjectMapper
	// nil values record that no strategy matches the pair
	cache map[TypePair]ObjectMapper
}

var _ Runner = (*Engine)(nil)

func NewEngine(config ConfigurationProvider, opts ...options.Option) *Engine {
	o := options.New(opts...)

	e := &Engine{
		config:  config,
		logger:  o.Logger,
		metrics: NewMetrics(o.Registerer),
		mappers: config.Mappers(),
		cache:   map[TypePair]ObjectMapper{},
	}

	config.OnTypeMapCreated(e.clearTypeMap)
	config.OnChanged(e.clearAll)

	return e
}

func (e *Engine) ConfigurationProvider() ConfigurationProvider {
	return e.config
}

func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// Map maps source, declared as sourceType, into a new destinationType value.
// A nil sourceType means the runtime type of source.
func (e *Engine) Map(source any, sourceType, destinationType reflect.Type) (any, error) {
	v, err := e.mapValue(reflect.ValueOf(source), reflect.Value{}, sourceType, destinationType)
	if err != nil {
		return nil, err
	}

	return v.Interface(), nil
}

// MapInto maps source onto an existing destination. Pointer destinations are
// updated in place; for other values the updated copy is returned.
func (e *Engine) MapInto(source, destination any, sourceType, destinationType reflect.Type) (any, error) {
	v, err := e.mapValue(reflect.ValueOf(source), reflect.ValueOf(destination), sourceType, destinationType)
	if err != nil {
		return nil, err
	}

	return v.Interface(), nil
}

// DynamicMap creates and validates the type map of an untracked pair before mapping.
func (e *Engine) DynamicMap(source any, sourceType, destinationType reflect.Type) (any, error) {
	src := reflect.ValueOf(source)
	if sourceType == nil {
		sourceType = runtimeType(src, anyType)
	}

	if tm := e.config.FindTypeMapFor(src, sourceType, destinationType); tm == nil {
		tm = e.config.CreateTypeMap(sourceType, destinationType)
		if err := e.config.AssertConfigurationIsValid(tm); err != nil {
			return nil, err
		}
	}

	return e.Map(source, sourceType, destinationType)
}

func (e *Engine) mapValue(source, destination reflect.Value, sourceType, destinationType reflect.Type) (reflect.Value, error) {
	if destinationType == nil {
		return reflect.Value{}, fmt.Errorf("%w: destination type is required", ErrUnsupportedMapping)
	}

	if sourceType == nil {
		sourceType = runtimeType(source, anyType)
	}

	tm := e.config.FindTypeMapFor(source, sourceType, destinationType)

	v, err := e.MapContext(NewResolutionContext(tm, source, destination, sourceType, destinationType))
	if err != nil {
		e.metrics.IncrementMappingFailure()

		return reflect.Value{}, err
	}

	return v, nil
}

// MapContext is the recursive step used by strategies for nested values.
// Every failure leaves it wrapped in exactly one *MappingError for this step.
func (e *Engine) MapContext(ctx *ResolutionContext) (res reflect.Value, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, p)
		}

		if err != nil {
			res = reflect.Value{}
			err = &MappingError{Pair: ctx.Pair(), MemberPath: ctx.MemberPath(), Err: err}
		}
	}()

	if ctx.IsSourceNil() && e.shouldMapSourceValueAsNull(ctx) {
		return reflect.Zero(ctx.DestinationType()), nil
	}

	mapper := e.mapperFor(ctx)
	if mapper == nil {
		if !ctx.IsSourceNil() {
			return reflect.Value{}, ErrUnsupportedMapping
		}

		return reflect.Zero(ctx.DestinationType()), nil
	}

	res, err = mapper.Map(ctx, e)
	if err != nil {
		return reflect.Value{}, err
	}

	return conform(res, ctx.DestinationType())
}

// mapperFor returns the cached strategy of the declared pair, scanning the
// chain once per pair. The scan runs under the write lock so concurrent
// misses for one pair agree on a single answer.
func (e *Engine) mapperFor(ctx *ResolutionContext) ObjectMapper {
	pair := ctx.Pair()

	e.mu.RLock()
	mapper, ok := e.cache[pair]
	e.mu.RUnlock()

	if ok {
		e.metrics.IncrementCacheHit()

		return mapper
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if mapper, ok := e.cache[pair]; ok {
		e.metrics.IncrementCacheHit()

		return mapper
	}

	e.metrics.IncrementCacheMiss()

	for _, candidate := range e.mappers {
		if candidate.IsMatch(ctx) {
			mapper = candidate

			break
		}
	}

	e.cache[pair] = mapper
	e.logger.Debug("strategy selected", slog.String("pair", pair.String()), slog.String("mapper", mapperName(mapper)))

	return mapper
}

// CachedMapper reports the cached decision for pair; a nil mapper with ok
// set means the pair is known to be unsupported.
func (e *Engine) CachedMapper(pair TypePair) (ObjectMapper, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	mapper, ok := e.cache[pair]

	return mapper, ok
}

func (e *Engine) clearTypeMap(tm *TypeMap) {
	e.mu.Lock()
	delete(e.cache, tm.Pair())
	e.mu.Unlock()

	e.metrics.IncrementInvalidation("pair")
	e.logger.Debug("strategy cache invalidated", slog.String("pair", tm.Pair().String()))
}

func (e *Engine) clearAll() {
	mappers := e.config.Mappers()

	e.mu.Lock()
	e.cache = map[TypePair]ObjectMapper{}
	e.mappers = mappers
	e.mu.Unlock()

	e.metrics.IncrementInvalidation("all")
	e.logger.Debug("strategy cache cleared")
}

func (e *Engine) shouldMapSourceValueAsNull(ctx *ResolutionContext) bool {
	if tm := ctx.ContextTypeMap(); tm != nil {
		return e.config.Profile(tm.Profile()).MapNullSourceValuesAsNull()
	}

	return e.config.MapNullSourceValuesAsNull()
}

func (e *Engine) profileFor(ctx *ResolutionContext) *Profile {
	name := DefaultProfileName
	if tm := ctx.ContextTypeMap(); tm != nil {
		name = tm.Profile()
	}

	return e.config.Profile(name)
}

// CreateObject builds the destination instance: the type map constructor
// first, then the destination being updated, then the registered
// implementation of an interface, then a new zero value.
func (e *Engine) CreateObject(ctx *ResolutionContext) (reflect.Value, error) {
	tm := ctx.TypeMap()

	if tm != nil {
		if ctor := tm.DestinationCtor(); ctor != nil {
			v, err := ctor(ctx.SourceValue())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("construct %s: %w", typeStr(tm.DestinationType()), err)
			}

			return addressable(unwrapInterface(v)), nil
		}
	}

	if existing := unwrapInterface(ctx.DestinationValue()); !isNil(existing) {
		return addressable(existing), nil
	}

	t := ctx.DestinationType()
	if t.Kind() == reflect.Interface && tm != nil && tm.DestinationType().Kind() != reflect.Interface {
		t = tm.DestinationType()
	}

	if t.Kind() == reflect.Interface {
		concrete, ok := e.config.Implementation(t)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrAbstractDestination, typeStr(t))
		}

		t = concrete
	}

	return newObject(t), nil
}

func newObject(t reflect.Type) reflect.Value {
	switch t.Kind() {
	case reflect.Ptr:
		return reflect.New(t.Elem())
	case reflect.Map:
		return reflect.MakeMap(t)
	case reflect.Slice:
		return reflect.MakeSlice(t, 0, 0)
	default:
		return reflect.New(t).Elem()
	}
}

// FormatValue renders the source of ctx through the profile and member formatters.
func (e *Engine) FormatValue(ctx *ResolutionContext) (string, error) {
	profile := e.profileFor(ctx)
	value := ctx.SourceValue()
	text := renderValue(value, e.config, profile.Printer())

	for _, formatter := range formatters(profile, ctx) {
		out, err := formatter.FormatValue(ctx.CreateValueContext(value))
		if err != nil {
			return "", fmt.Errorf("format: %w", err)
		}

		text = out
		value = reflect.ValueOf(out)
	}

	return text, nil
}

func mapperName(mapper ObjectMapper) string {
	if mapper == nil {
		return "none"
	}

	return reflect.TypeOf(mapper).Name()
}

// Map maps source into a new D.
func Map[D, S any](e *Engine, source S) (D, error) {
	var zero D

	v, err := e.mapValue(reflect.ValueOf(&source).Elem(), reflect.Value{}, reflect.TypeFor[S](), reflect.TypeFor[D]())
	if err != nil {
		return zero, err
	}

	res, _ := v.Interface().(D)

	return res, nil
}

// MapInto maps source onto destination and returns the result. A pointer
// destination is updated in place.
func MapInto[S, D any](e *Engine, source S, destination D) (D, error) {
	v, err := e.mapValue(
		reflect.ValueOf(&source).Elem(), reflect.ValueOf(&destination).Elem(), reflect.TypeFor[S](), reflect.TypeFor[D]())
	if err != nil {
		return destination, err
	}

	res, _ := v.Interface().(D)

	return res, nil
}

// DynamicMap is Engine.DynamicMap for static types.
func DynamicMap[D, S any](e *Engine, source S) (D, error) {
	var zero D

	sourceType, destinationType := reflect.TypeFor[S](), reflect.TypeFor[D]()
	src := reflect.ValueOf(&source).Elem()

	if tm := e.config.FindTypeMapFor(src, sourceType, destinationType); tm == nil {
		tm = e.config.CreateTypeMap(sourceType, destinationType)
		if err := e.config.AssertConfigurationIsValid(tm); err != nil {
			return zero, err
		}
	}

	return Map[D](e, source)
}

// IsUnsupported reports whether err comes from a pair no strategy can map.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedMapping)
}
