package mapper

import "reflect"

// AssignableMapper copies a source the destination can hold as is.
type AssignableMapper struct{}

func (AssignableMapper) IsMatch(ctx *ResolutionContext) bool {
	return ctx.SourceType().AssignableTo(ctx.DestinationType())
}

func (AssignableMapper) Map(ctx *ResolutionContext, _ Runner) (reflect.Value, error) {
	if ctx.IsSourceNil() {
		return reflect.Zero(ctx.DestinationType()), nil
	}

	return conform(ctx.SourceValue(), ctx.DestinationType())
}

// NullableMapper unwraps pointers on either side, maps the pointed to types
// and wraps the result again.
type NullableMapper struct{}

func (NullableMapper) IsMatch(ctx *ResolutionContext) bool {
	return ctx.SourceType().Kind() == reflect.Ptr || ctx.DestinationType().Kind() == reflect.Ptr
}

func (NullableMapper) Map(ctx *ResolutionContext, runner Runner) (reflect.Value, error) {
	srcType, dstType := ctx.SourceType(), ctx.DestinationType()
	source := unwrapInterface(ctx.SourceValue())

	innerSrcType := srcType
	if srcType.Kind() == reflect.Ptr {
		innerSrcType = srcType.Elem()

		if isNil(source) {
			source = reflect.Value{}
		} else {
			source = source.Elem()
		}
	}

	innerDstType := dstType
	existing := ctx.DestinationValue()

	if dstType.Kind() == reflect.Ptr {
		innerDstType = dstType.Elem()

		if isNil(existing) {
			existing = reflect.Value{}
		} else {
			existing = existing.Elem()
		}
	}

	tm := runner.ConfigurationProvider().FindTypeMapFor(source, innerSrcType, innerDstType)

	// an empty optional stays empty unless a type map can build a default destination
	if !source.IsValid() && dstType.Kind() == reflect.Ptr && !existing.IsValid() && tm == nil {
		return reflect.Zero(dstType), nil
	}

	inner, err := runner.MapContext(ctx.CreateTypeContext(tm, source, existing, innerSrcType, innerDstType))
	if err != nil {
		return reflect.Value{}, err
	}

	if dstType.Kind() != reflect.Ptr {
		return inner, nil
	}

	if existing.IsValid() && existing.CanSet() {
		existing.Set(inner)

		return existing.Addr(), nil
	}

	res := reflect.New(innerDstType)
	res.Elem().Set(inner)

	return res, nil
}
