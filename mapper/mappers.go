package mapper

import "reflect"

// ObjectMapper is one strategy of the chain. IsMatch must depend only on the
// declared types of the context and the configuration: its answer is cached
// per pair until the configuration changes.
type ObjectMapper interface {
	IsMatch(ctx *ResolutionContext) bool
	Map(ctx *ResolutionContext, runner Runner) (reflect.Value, error)
}

// Runner is the part of the engine strategies call back into.
type Runner interface {
	MapContext(ctx *ResolutionContext) (reflect.Value, error)
	CreateObject(ctx *ResolutionContext) (reflect.Value, error)
	FormatValue(ctx *ResolutionContext) (string, error)
	ConfigurationProvider() ConfigurationProvider
}

// DefaultMappers returns the strategy chain in priority order.
func DefaultMappers(config ConfigurationProvider) []ObjectMapper {
	return []ObjectMapper{
		TypeMapMapper{},
		DataReaderMapper{},
		StringMapper{},
		FlagsEnumMapper{enums: config},
		EnumMapper{enums: config},
		ArrayMapper{config: config},
		EnumerableToDictionaryMapper{},
		DictionaryMapper{},
		ListSourceMapper{},
		EnumerableMapper{},
		AssignableMapper{},
		TypeConverterMapper{config: config},
		NullableMapper{},
	}
}

// mapElement maps one nested value through the runner with a fresh element context.
func mapElement(runner Runner, ctx *ResolutionContext, value reflect.Value, srcType, dstType reflect.Type, index int) (reflect.Value, error) {
	tm := runner.ConfigurationProvider().FindTypeMapFor(value, srcType, dstType)

	return runner.MapContext(ctx.CreateElementContext(tm, value, srcType, dstType, index))
}
