package primitive

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotAllowed   = errors.New("conversion is not allowed by the configured categories")
	ErrInvalidValue = errors.New("value is not valid for the destination type")
)

// Converter turns src into a value of exactly type dst.
type Converter func(src reflect.Value, dst reflect.Type) (reflect.Value, error)

var converters map[ConversionPair]Converter

func init() {
	converters = map[ConversionPair]Converter{}

	// CategorySafeNumber
	// CategoryUnsafeNumber
	for fromKind := KindEnum(0); int(fromKind) < KindTotal; fromKind++ {
		if !fromKind.IsNumber() {
			continue
		}

		for toKind := KindEnum(0); int(toKind) < KindTotal; toKind++ {
			if !toKind.IsNumber() {
				continue
			}

			converters[ConversionPair{fromKind, toKind}] = convertDirect
		}
	}

	// CategoryTextNumber
	for numberKind := KindEnum(0); int(numberKind) < KindTotal; numberKind++ {
		if !numberKind.IsNumber() {
			continue
		}

		converters[ConversionPair{numberKind, KindString}] = formatNumber
		converters[ConversionPair{KindString, numberKind}] = parseNumber
	}

	// CategoryNumericBool
	for fromKind := KindEnum(0); int(fromKind) < KindTotal; fromKind++ {
		if !fromKind.IsInteger() {
			continue
		}

		converters[ConversionPair{fromKind, KindBool}] = numberToBool
		converters[ConversionPair{KindBool, fromKind}] = boolToNumber
	}

	// CategoryTextualBool
	converters[ConversionPair{KindString, KindBool}] = textToBool
	converters[ConversionPair{KindBool, KindString}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
		return valueOf(dst, strconv.FormatBool(src.Bool())), nil
	}

	// CategoryDatetime
	converters[ConversionPair{KindString, KindTime}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
		t, err := time.Parse(time.RFC3339Nano, src.String())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("parse datetime: %w", err)
		}

		return reflect.ValueOf(t), nil
	}
	converters[ConversionPair{KindTime, KindString}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
		return valueOf(dst, src.Interface().(time.Time).Format(time.RFC3339Nano)), nil
	}

	// CategoryTimestamp
	// CategoryNanoseconds
	for numberKind := KindEnum(0); int(numberKind) < KindTotal; numberKind++ {
		if !numberKind.IsInteger() || numberKind == KindUint64 {
			continue
		}

		converters[ConversionPair{numberKind, KindTime}] = func(src reflect.Value, _ reflect.Type) (reflect.Value, error) {
			return reflect.ValueOf(time.Unix(asInt64(src), 0).UTC()), nil
		}
		converters[ConversionPair{numberKind, KindDuration}] = func(src reflect.Value, _ reflect.Type) (reflect.Value, error) {
			return reflect.ValueOf(time.Duration(asInt64(src))), nil
		}

		if numberKind.IsSigned() {
			converters[ConversionPair{KindTime, numberKind}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
				return reflect.ValueOf(src.Interface().(time.Time).Unix()).Convert(dst), nil
			}
			converters[ConversionPair{KindDuration, numberKind}] = convertDirect
		}
	}

	// CategoryDuration
	converters[ConversionPair{KindString, KindDuration}] = func(src reflect.Value, _ reflect.Type) (reflect.Value, error) {
		d, err := time.ParseDuration(src.String())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("parse duration: %w", err)
		}

		return reflect.ValueOf(d), nil
	}
	converters[ConversionPair{KindDuration, KindString}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
		return valueOf(dst, time.Duration(src.Int()).String()), nil
	}

	// CategorySeconds
	for _, floatKind := range []KindEnum{KindFloat32, KindFloat64} {
		converters[ConversionPair{floatKind, KindDuration}] = func(src reflect.Value, _ reflect.Type) (reflect.Value, error) {
			return reflect.ValueOf(time.Duration(src.Float() * float64(time.Second))), nil
		}
		converters[ConversionPair{KindDuration, floatKind}] = func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
			return reflect.ValueOf(time.Duration(src.Int()).Seconds()).Convert(dst), nil
		}
	}
}

// Lookup finds a converter between two scalar types within the allowed categories.
func Lookup(src, dst reflect.Type, allowed CategoryEnum) (Converter, bool) {
	srcKind := FromReflectType(src)
	dstKind := FromReflectType(dst)

	if srcKind == 0 || dstKind == 0 {
		return nil, false
	}

	pair := ConversionPair{srcKind, dstKind}
	if _, ok := allowedSet(allowed)[pair]; !ok {
		return nil, false
	}

	if srcKind == KindPrimitiveEnum || dstKind == KindPrimitiveEnum {
		return convertEnum, true
	}

	fn, ok := converters[pair]

	return fn, ok
}

// Convert converts src to dst or reports why it cannot.
func Convert(src reflect.Value, dst reflect.Type, allowed CategoryEnum) (reflect.Value, error) {
	fn, ok := Lookup(src.Type(), dst, allowed)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrNotAllowed, src.Type(), dst)
	}

	return fn(src, dst)
}

func allowedSet(allowed CategoryEnum) map[ConversionPair]struct{} {
	res := map[ConversionPair]struct{}{}

	for category := CategoryEnum(1); category&CategoryAll > 0; category <<= 1 {
		if allowed&category == 0 {
			continue
		}

		maps.Copy(res, conversionPairs[category])
	}

	return res
}

var (
	stringerType = reflect.TypeFor[fmt.Stringer]()
	validType    = reflect.TypeFor[interface{ IsValid() bool }]()
)

// convertEnum handles named integer and string types. The source renders through
// String() when it has one, the destination is checked through IsValid() when it has one.
func convertEnum(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	var res reflect.Value

	srcIsText := src.Kind() == reflect.String
	dstIsText := dst.Kind() == reflect.String

	switch {
	case dstIsText && src.Type().Implements(stringerType):
		res = valueOf(dst, src.Interface().(fmt.Stringer).String())
	case srcIsText == dstIsText:
		res = src.Convert(dst)
	case dstIsText:
		res = valueOf(dst, strconv.FormatInt(asInt64(src), 10))
	default:
		n, err := strconv.ParseInt(strings.TrimSpace(src.String()), 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %q for %s", ErrInvalidValue, src.String(), dst)
		}

		res = reflect.ValueOf(n).Convert(dst)
	}

	if dst.Implements(validType) && !res.Interface().(interface{ IsValid() bool }).IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: %v for %s", ErrInvalidValue, src.Interface(), dst)
	}

	return res, nil
}

func convertDirect(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	return src.Convert(dst), nil
}

func formatNumber(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	var text string

	switch kind := FromReflectType(src.Type()); {
	case kind.IsSigned():
		text = strconv.FormatInt(src.Int(), 10)
	case kind.IsUnsigned():
		text = strconv.FormatUint(src.Uint(), 10)
	default:
		text = strconv.FormatFloat(src.Float(), 'f', -1, kind.Bits())
	}

	return valueOf(dst, text), nil
}

func parseNumber(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	kind := FromReflectType(dst)
	res := reflect.New(dst).Elem()
	text := strings.TrimSpace(src.String())

	switch {
	case kind.IsSigned():
		n, err := strconv.ParseInt(text, 10, kind.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("parse %s: %w", dst, err)
		}

		res.SetInt(n)
	case kind.IsUnsigned():
		n, err := strconv.ParseUint(text, 10, kind.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("parse %s: %w", dst, err)
		}

		res.SetUint(n)
	default:
		n, err := strconv.ParseFloat(text, kind.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("parse %s: %w", dst, err)
		}

		res.SetFloat(n)
	}

	return res, nil
}

// 0, 1 - valid, other numbers is error
func numberToBool(src reflect.Value, _ reflect.Type) (reflect.Value, error) {
	n := asInt64(src)
	if n != 0 && n != 1 {
		return reflect.Value{}, fmt.Errorf("%w: only numbers 0 and 1 are allowed for bool, got: %d", ErrInvalidValue, n)
	}

	return reflect.ValueOf(n == 1), nil
}

func boolToNumber(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	res := reflect.New(dst).Elem()
	if !src.Bool() {
		return res, nil
	}

	return reflect.ValueOf(1).Convert(dst), nil
}

func textToBool(src reflect.Value, _ reflect.Type) (reflect.Value, error) {
	switch strings.ToLower(strings.TrimSpace(src.String())) {
	default:
		return reflect.Value{}, fmt.Errorf("%w: only strings true/false, yes/no, on/off are allowed for bool, got: %s",
			ErrInvalidValue, src.String())
	case "true", "yes", "on":
		return reflect.ValueOf(true), nil
	case "false", "no", "off":
		return reflect.ValueOf(false), nil
	}
}

func asInt64(v reflect.Value) int64 {
	if v.CanInt() {
		return v.Int()
	}

	return int64(v.Uint())
}

func valueOf(dst reflect.Type, text string) reflect.Value {
	return reflect.ValueOf(text).Convert(dst)
}
