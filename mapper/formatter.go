package mapper

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ValueFormatter renders the source value of ctx for a string destination.
type ValueFormatter interface {
	FormatValue(ctx *ResolutionContext) (string, error)
}

type FormatterFunc func(ctx *ResolutionContext) (string, error)

func (f FormatterFunc) FormatValue(ctx *ResolutionContext) (string, error) {
	return f(ctx)
}

// formatterType identifies a formatter for SkipFormatter, looking through deferred ones.
func formatterType(f ValueFormatter) reflect.Type {
	if typed, ok := f.(interface{ FormatterType() reflect.Type }); ok {
		return typed.FormatterType()
	}

	return reflect.TypeOf(f)
}

// LocalizedNumber renders numbers with the grouping and decimal marks of Locale.
type LocalizedNumber struct {
	Locale language.Tag
	// MaxFractionDigits limits decimals when positive.
	MaxFractionDigits int
}

func (f LocalizedNumber) FormatValue(ctx *ResolutionContext) (string, error) {
	v := derefInstance(ctx.SourceValue())
	if isNil(v) {
		return "", nil
	}

	if !v.CanInt() && !v.CanUint() && !v.CanFloat() {
		return fmt.Sprint(v.Interface()), nil
	}

	var opts []number.Option
	if f.MaxFractionDigits > 0 {
		opts = append(opts, number.MaxFractionDigits(f.MaxFractionDigits))
	}

	return message.NewPrinter(f.Locale).Sprint(number.Decimal(v.Interface(), opts...)), nil
}

// formatters collects what applies to ctx: profile wide formatters, then those
// for the source type, then the member's own, minus the skipped types.
func formatters(profile *Profile, ctx *ResolutionContext) []ValueFormatter {
	var res []ValueFormatter

	if profile != nil {
		res = append(res, profile.Formatters()...)
		res = append(res, profile.FormattersFor(ctx.SourceType())...)
	}

	pm := ctx.PropertyMap()
	if pm == nil {
		return res
	}

	res = append(res, pm.Formatters()...)

	skipped := pm.FormattersToSkip()
	if len(skipped) == 0 {
		return res
	}

	return slices.DeleteFunc(res, func(f ValueFormatter) bool {
		return slices.Contains(skipped, formatterType(f))
	})
}

// renderValue is the default textual form of a value.
func renderValue(v reflect.Value, enums enumLookup, printer *message.Printer) string {
	v = unwrapInterface(v)
	if isNil(v) {
		return ""
	}

	if enum, ok := enums.Enum(v.Type()); ok {
		if name, ok := enum.Format(v); ok {
			return name
		}
	}

	switch value := v.Interface().(type) {
	case string:
		return value
	case []byte:
		return string(value)
	case fmt.Stringer:
		return value.String()
	case encoding.TextMarshaler:
		if text, err := value.MarshalText(); err == nil {
			return string(text)
		}
	}

	switch v.Kind() {
	case reflect.Ptr:
		return renderValue(v.Elem(), enums, printer)
	case reflect.String:
		return v.String()
	}

	if printer != nil {
		return printer.Sprintf("%v", v.Interface())
	}

	return fmt.Sprint(v.Interface())
}
