package mapper

import (
	"fmt"
	"reflect"

	"object-mapper/primitive"
)

// ArrayMapper fills a fixed size array from any sequence.
type ArrayMapper struct {
	config ConfigurationProvider
}

func (m ArrayMapper) IsMatch(ctx *ResolutionContext) bool {
	src, dst := ctx.SourceType(), ctx.DestinationType()
	if dst.Kind() != reflect.Array || !isSequence(src) {
		return false
	}

	if src.Kind() == reflect.Array {
		return true
	}

	return m.config.Conversions()&(primitive.CategorySafeArray|primitive.CategoryUnsafeArray) != 0
}

// Map fails when the source does not fit, unless unsafe array conversions are allowed,
// in which case the tail is cut.
func (m ArrayMapper) Map(ctx *ResolutionContext, runner Runner) (reflect.Value, error) {
	dstType := ctx.DestinationType()
	res := reflect.New(dstType).Elem()

	elements := collect(ctx.SourceValue())
	if len(elements) > dstType.Len() {
		if !m.config.Conversions().Has(primitive.CategoryUnsafeArray) {
			return reflect.Value{}, fmt.Errorf("%w: %d elements into %s", ErrArrayOverflow, len(elements), typeStr(dstType))
		}

		elements = elements[:dstType.Len()]
	}

	srcElem := elemOf(ctx.SourceType())

	for i, element := range elements {
		v, err := mapElement(runner, ctx, element, srcElem, dstType.Elem(), i)
		if err != nil {
			return reflect.Value{}, err
		}

		res.Index(i).Set(v)
	}

	return res, nil
}

// ListSource is implemented by containers that expose their items as a slice.
type ListSource interface {
	List() any
}

// ListSourceMapper maps the items of a ListSource into a slice.
type ListSourceMapper struct{}

func (ListSourceMapper) IsMatch(ctx *ResolutionContext) bool {
	return ctx.SourceType().Implements(listType) && ctx.DestinationType().Kind() == reflect.Slice
}

func (ListSourceMapper) Map(ctx *ResolutionContext, runner Runner) (reflect.Value, error) {
	dstType := ctx.DestinationType()
	if ctx.IsSourceNil() {
		return reflect.MakeSlice(dstType, 0, 0), nil
	}

	list := reflect.ValueOf(unwrapInterface(ctx.SourceValue()).Interface().(ListSource).List())
	if isNil(list) {
		return reflect.MakeSlice(dstType, 0, 0), nil
	}

	tm := runner.ConfigurationProvider().FindTypeMapFor(list, list.Type(), dstType)

	return runner.MapContext(ctx.CreateTypeContext(tm, list, reflect.Value{}, list.Type(), dstType))
}

// EnumerableMapper maps slices, arrays and iter.Seq values into a new slice
// element by element.
type EnumerableMapper struct{}

func (EnumerableMapper) IsMatch(ctx *ResolutionContext) bool {
	return ctx.DestinationType().Kind() == reflect.Slice && isSequence(ctx.SourceType())
}

// Map returns an empty, non nil slice for a nil source: with the null policy
// on, the engine never gets here for one.
func (EnumerableMapper) Map(ctx *ResolutionContext, runner Runner) (reflect.Value, error) {
	dstType := ctx.DestinationType()
	elements := collect(ctx.SourceValue())
	res := reflect.MakeSlice(dstType, len(elements), len(elements))
	srcElem := elemOf(ctx.SourceType())

	for i, element := range elements {
		v, err := mapElement(runner, ctx, element, srcElem, dstType.Elem(), i)
		if err != nil {
			return reflect.Value{}, err
		}

		res.Index(i).Set(v)
	}

	return res, nil
}
