package mapper

import (
	"fmt"
	"reflect"
)

// TypeMapMapper runs an explicitly configured type map.
type TypeMapMapper struct{}

func (TypeMapMapper) IsMatch(ctx *ResolutionContext) bool {
	return ctx.TypeMap() != nil
}

func (TypeMapMapper) Map(ctx *ResolutionContext, runner Runner) (reflect.Value, error) {
	tm := ctx.TypeMap()
	if tm == nil {
		// the pair was cached through a runtime type that had a type map
		return reflect.Value{}, fmt.Errorf("%w: no type map for runtime source %s",
			ErrUnsupportedMapping, typeStr(runtimeType(ctx.SourceValue(), ctx.SourceType())))
	}

	if custom := tm.CustomMapper(); custom != nil {
		return custom(ctx)
	}

	dst, err := runner.CreateObject(ctx)
	if err != nil {
		return reflect.Value{}, err
	}

	for _, action := range tm.BeforeMapActions() {
		if err := action(ctx.SourceValue(), dst); err != nil {
			return reflect.Value{}, fmt.Errorf("before map: %w", err)
		}
	}

	for _, pm := range tm.GetPropertyMaps() {
		if pm.IsIgnored() || !pm.IsMapped() {
			continue
		}

		if err := mapPropertyValue(ctx, runner, dst, pm); err != nil {
			return reflect.Value{}, err
		}
	}

	for _, action := range tm.AfterMapActions() {
		if err := action(ctx.SourceValue(), dst); err != nil {
			return reflect.Value{}, fmt.Errorf("after map: %w", err)
		}
	}

	return dst, nil
}

func mapPropertyValue(ctx *ResolutionContext, runner Runner, dst reflect.Value, pm *PropertyMap) error {
	member := pm.DestinationMember()

	result, err := pm.ResolveValue(NewResolutionResult(ctx))
	if err != nil {
		return fmt.Errorf("resolve %s: %w", pm.Name(), err)
	}

	if result.IsNil() {
		if substitute, ok := pm.NullSubstitute(); ok && substitute != nil {
			value := reflect.ValueOf(substitute)
			result = result.New(value, value.Type())
		}
	}

	srcType := result.Type
	if srcType == nil || srcType == anyType {
		srcType = runtimeType(result.Value, anyType)
	}

	config := runner.ConfigurationProvider()
	memberCtx := ctx.CreateMemberContext(config.FindTypeMapFor(result.Value, srcType, member.Type()), result.Value, srcType, pm)

	value, err := runner.MapContext(memberCtx)
	if err != nil {
		return err
	}

	if pm.UseDestinationValue() {
		existing, err := member.GetValue(dst)
		if err == nil && !isBlank(existing) {
			return nil
		}
	}

	if err := member.SetValue(dst, value); err != nil {
		return fmt.Errorf("set %s: %w", pm.Name(), err)
	}

	return nil
}
