package mapper

import (
	"fmt"
	"reflect"
)

// FlagsEnumMapper maps between two registered flag sets by composite case names.
type FlagsEnumMapper struct {
	enums enumLookup
}

func (m FlagsEnumMapper) IsMatch(ctx *ResolutionContext) bool {
	src, ok := m.enums.Enum(ctx.SourceType())
	if !ok || !src.IsFlags() {
		return false
	}

	dst, ok := m.enums.Enum(ctx.DestinationType())

	return ok && dst.IsFlags()
}

func (m FlagsEnumMapper) Map(ctx *ResolutionContext, runner Runner) (reflect.Value, error) {
	if ctx.IsSourceNil() {
		return runner.CreateObject(ctx)
	}

	src, _ := m.enums.Enum(ctx.SourceType())
	dst, _ := m.enums.Enum(ctx.DestinationType())

	name, _ := src.Format(unwrapInterface(ctx.SourceValue()))

	return dst.Parse(name)
}

// EnumMapper maps between two registered enumerations by case name, not by value.
type EnumMapper struct {
	enums enumLookup
}

func (m EnumMapper) IsMatch(ctx *ResolutionContext) bool {
	_, srcOK := m.enums.Enum(ctx.SourceType())
	_, dstOK := m.enums.Enum(ctx.DestinationType())

	return srcOK && dstOK
}

func (m EnumMapper) Map(ctx *ResolutionContext, runner Runner) (reflect.Value, error) {
	if ctx.IsSourceNil() {
		if existing := ctx.DestinationValue(); existing.IsValid() {
			return existing, nil
		}

		return runner.CreateObject(ctx)
	}

	src, _ := m.enums.Enum(ctx.SourceType())
	dst, _ := m.enums.Enum(ctx.DestinationType())

	value := unwrapInterface(ctx.SourceValue())

	name, ok := src.Name(value)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %v has no case name in %s", ErrUnknownEnumValue, value.Interface(), typeStr(src.Type()))
	}

	return dst.Parse(name)
}
