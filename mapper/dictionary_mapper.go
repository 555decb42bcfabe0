package mapper

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

// DictionaryMapper maps a map into a map, keys and values alike.
type DictionaryMapper struct{}

func (DictionaryMapper) IsMatch(ctx *ResolutionContext) bool {
	return ctx.SourceType().Kind() == reflect.Map && ctx.DestinationType().Kind() == reflect.Map
}

func (DictionaryMapper) Map(ctx *ResolutionContext, runner Runner) (reflect.Value, error) {
	srcType, dstType := ctx.SourceType(), ctx.DestinationType()
	res := reflect.MakeMap(dstType)

	source := unwrapInterface(ctx.SourceValue())
	if isNil(source) {
		return res, nil
	}

	// sorted so that failures are reported for the same key every time
	keys := source.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
	})

	for _, key := range keys {
		k, v, err := mapEntry(runner, ctx, key, source.MapIndex(key), srcType.Key(), srcType.Elem(), dstType)
		if err != nil {
			return reflect.Value{}, err
		}

		res.SetMapIndex(k, v)
	}

	return res, nil
}

// EnumerableToDictionaryMapper builds a map from a sequence of structs that
// carry Key and Value fields.
type EnumerableToDictionaryMapper struct{}

func (EnumerableToDictionaryMapper) IsMatch(ctx *ResolutionContext) bool {
	if ctx.DestinationType().Kind() != reflect.Map || !isSequence(ctx.SourceType()) {
		return false
	}

	_, _, ok := keyValueFields(elemOf(ctx.SourceType()))

	return ok
}

func (EnumerableToDictionaryMapper) Map(ctx *ResolutionContext, runner Runner) (reflect.Value, error) {
	dstType := ctx.DestinationType()
	res := reflect.MakeMap(dstType)

	elemType := elemOf(ctx.SourceType())
	keyField, valueField, _ := keyValueFields(elemType)

	for _, element := range collect(ctx.SourceValue()) {
		element = derefInstance(element)
		if !element.IsValid() {
			continue
		}

		key := element.FieldByIndex(keyField.Index)

		k, v, err := mapEntry(runner, ctx, key, element.FieldByIndex(valueField.Index), keyField.Type, valueField.Type, dstType)
		if err != nil {
			return reflect.Value{}, err
		}

		res.SetMapIndex(k, v)
	}

	return res, nil
}

func keyValueFields(t reflect.Type) (key, value reflect.StructField, ok bool) {
	_, base := ptrDepthAndBase(t)
	if base.Kind() != reflect.Struct {
		return key, value, false
	}

	key, keyOK := base.FieldByName("Key")
	value, valueOK := base.FieldByName("Value")

	return key, value, keyOK && valueOK && key.IsExported() && value.IsExported()
}

func mapEntry(
	runner Runner, ctx *ResolutionContext, key, value reflect.Value, srcKey, srcValue, dstType reflect.Type,
) (reflect.Value, reflect.Value, error) {
	config := runner.ConfigurationProvider()
	label := key.Interface()

	k, err := runner.MapContext(ctx.CreateEntryContext(
		config.FindTypeMapFor(key, srcKey, dstType.Key()), key, srcKey, dstType.Key(), label))
	if err != nil {
		return reflect.Value{}, reflect.Value{}, err
	}

	v, err := runner.MapContext(ctx.CreateEntryContext(
		config.FindTypeMapFor(value, srcValue, dstType.Elem()), value, srcValue, dstType.Elem(), label))
	if err != nil {
		return reflect.Value{}, reflect.Value{}, err
	}

	return k, v, nil
}
