package mapper

import (
	"encoding"
	"fmt"
	"reflect"

	"object-mapper/primitive"
)

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// TypeConverterMapper is the scalar fallback: registered converter functions,
// enumeration names from text, TextMarshaler and TextUnmarshaler, then the
// primitive conversions allowed by the configured categories.
type TypeConverterMapper struct {
	config ConfigurationProvider
}

func (m TypeConverterMapper) IsMatch(ctx *ResolutionContext) bool {
	src, dst := ctx.SourceType(), ctx.DestinationType()

	if _, ok := m.config.Converter(TypePair{Source: src, Destination: dst}); ok {
		return true
	}

	if _, ok := m.config.Enum(dst); ok && src.Kind() == reflect.String {
		return true
	}

	if _, ok := m.config.Enum(src); ok && dst.Kind() == reflect.String {
		return true
	}

	if src.Kind() == reflect.String && reflect.PointerTo(dst).Implements(textUnmarshalerType) {
		return true
	}

	if dst.Kind() == reflect.String && src.Implements(textMarshalerType) {
		return true
	}

	_, ok := primitive.Lookup(src, dst, m.config.Conversions())

	return ok
}

func (m TypeConverterMapper) Map(ctx *ResolutionContext, _ Runner) (reflect.Value, error) {
	src, dst := ctx.SourceType(), ctx.DestinationType()

	if ctx.IsSourceNil() {
		return reflect.Zero(dst), nil
	}

	value := unwrapInterface(ctx.SourceValue())

	if converter, ok := m.config.Converter(TypePair{Source: src, Destination: dst}); ok {
		return converter.Convert(value)
	}

	if enum, ok := m.config.Enum(dst); ok && src.Kind() == reflect.String {
		return enum.Parse(value.String())
	}

	if enum, ok := m.config.Enum(src); ok && dst.Kind() == reflect.String {
		name, ok := enum.Format(value)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: %v has no case name in %s", ErrUnknownEnumValue, value.Interface(), typeStr(src))
		}

		return reflect.ValueOf(name).Convert(dst), nil
	}

	if src.Kind() == reflect.String && reflect.PointerTo(dst).Implements(textUnmarshalerType) {
		res := reflect.New(dst)
		if err := res.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(value.String())); err != nil {
			return reflect.Value{}, fmt.Errorf("unmarshal %s: %w", typeStr(dst), err)
		}

		return res.Elem(), nil
	}

	if dst.Kind() == reflect.String && src.Implements(textMarshalerType) {
		text, err := value.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return reflect.Value{}, fmt.Errorf("marshal %s: %w", typeStr(src), err)
		}

		return reflect.ValueOf(string(text)).Convert(dst), nil
	}

	return primitive.Convert(value, dst, m.config.Conversions())
}
