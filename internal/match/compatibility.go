package match

import (
	"reflect"
)

// TypeCompatibility represents the level of compatibility between two types.
type TypeCompatibility int

const (
	// TypeIncompatible means the types cannot be converted.
	TypeIncompatible TypeCompatibility = iota
	// TypeNeedsTransform means conversion requires a type map, a converter or element-wise mapping.
	TypeNeedsTransform
	// TypeConvertible means types are convertible using Go's type conversion.
	TypeConvertible
	// TypeAssignable means the source type can be directly assigned to the target.
	TypeAssignable
	// TypeIdentical means the types are exactly the same.
	TypeIdentical
)

const (
	VerdictIdentical      = "identical"
	VerdictAssignable     = "assignable"
	VerdictConvertible    = "convertible"
	VerdictNeedsTransform = "needs_transform"
	VerdictIncompatible   = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeAssignable:
		return VerdictAssignable
	case TypeConvertible:
		return VerdictConvertible
	case TypeNeedsTransform:
		return VerdictNeedsTransform
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return "unknown"
	}
}

// TypeCompatibilityResult contains detailed information about type compatibility.
type TypeCompatibilityResult struct {
	Compatibility TypeCompatibility
	Reason        string
}

// ScoreTypeCompatibility determines the compatibility between a source and target type.
func ScoreTypeCompatibility(source, target reflect.Type) TypeCompatibilityResult {
	switch {
	case source == nil || target == nil:
		return TypeCompatibilityResult{TypeIncompatible, "type information unavailable"}
	case source == target:
		return TypeCompatibilityResult{TypeIdentical, "types are identical"}
	case source.AssignableTo(target):
		return TypeCompatibilityResult{TypeAssignable, "source is assignable to target"}
	case convertible(source, target):
		return TypeCompatibilityResult{TypeConvertible, "source is convertible to target"}
	case needsTransform(source, target):
		return TypeCompatibilityResult{TypeNeedsTransform, "types require a transform"}
	default:
		return TypeCompatibilityResult{TypeIncompatible, "types are not compatible"}
	}
}

// ScorePointerCompatibility checks compatibility considering pointer wrapping/unwrapping.
func ScorePointerCompatibility(source, target reflect.Type) TypeCompatibilityResult {
	result := ScoreTypeCompatibility(source, target)
	if result.Compatibility >= TypeConvertible || source == nil || target == nil {
		return result
	}

	if source.Kind() == reflect.Pointer &&
		ScoreTypeCompatibility(source.Elem(), target).Compatibility >= TypeConvertible {
		return TypeCompatibilityResult{TypeNeedsTransform, "requires pointer dereference"}
	}

	if target.Kind() == reflect.Pointer &&
		ScoreTypeCompatibility(source, target.Elem()).Compatibility >= TypeConvertible {
		return TypeCompatibilityResult{TypeNeedsTransform, "requires taking address"}
	}

	return result
}

// convertible is reflect.ConvertibleTo without the integer to string rune conversion.
func convertible(source, target reflect.Type) bool {
	if target.Kind() == reflect.String && isInteger(source.Kind()) {
		return false
	}

	return source.ConvertibleTo(target)
}

// needsTransform checks for shapes that can still be mapped member or element wise.
func needsTransform(source, target reflect.Type) bool {
	switch {
	case source.Kind() == reflect.Pointer && target.Kind() != reflect.Pointer:
		return ScoreTypeCompatibility(source.Elem(), target).Compatibility >= TypeNeedsTransform
	case source.Kind() != reflect.Pointer && target.Kind() == reflect.Pointer:
		return ScoreTypeCompatibility(source, target.Elem()).Compatibility >= TypeNeedsTransform
	case isSequence(source.Kind()) && isSequence(target.Kind()):
		return ScoreTypeCompatibility(source.Elem(), target.Elem()).Compatibility >= TypeNeedsTransform
	case source.Kind() == reflect.Map && target.Kind() == reflect.Map:
		return ScoreTypeCompatibility(source.Key(), target.Key()).Compatibility >= TypeNeedsTransform &&
			ScoreTypeCompatibility(source.Elem(), target.Elem()).Compatibility >= TypeNeedsTransform
	case source.Kind() == reflect.Struct && target.Kind() == reflect.Struct:
		return true
	}

	return false
}

// IsNumericKind reports integer and floating point kinds.
func IsNumericKind(k reflect.Kind) bool {
	return isInteger(k) || k == reflect.Float32 || k == reflect.Float64
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

func isSequence(k reflect.Kind) bool {
	return k == reflect.Slice || k == reflect.Array
}
