package mapper

import (
	"errors"
	"fmt"
	"strings"

	"object-mapper/internal/diagnostic"
)

var (
	ErrUnsupportedMapping   = errors.New("missing type map configuration or unsupported mapping")
	ErrResolverTypeMismatch = errors.New("resolver received a source of unexpected type")
	ErrAbstractDestination  = errors.New("interface destination has no registered implementation")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrUnknownMember        = errors.New("unknown destination member")
	ErrUnknownSourcePath    = errors.New("source path does not resolve")
	ErrUnknownEnumValue     = errors.New("value is not a case of the enumeration")
	ErrArrayOverflow        = errors.New("source has more elements than the destination array")
	ErrConversionRejected   = errors.New("converter rejected the value")
	ErrPanic                = errors.New("panic during mapping")
	ErrNotAResolver         = errors.New("factory did not produce a ValueResolver")
	ErrNotAFormatter        = errors.New("factory did not produce a ValueFormatter")
	ErrNotAConverter        = errors.New("factory did not produce a type converter")
	ErrInvalidConfiguration = errors.New("mapper configuration is invalid")
)

// MappingError is returned by every failing Map call. Each recursion step
// wraps the failure once, so the innermost MappingError names the member
// where it happened.
type MappingError struct {
	Pair       TypePair
	MemberPath string
	Err        error
}

func (e *MappingError) Error() string {
	var sb strings.Builder

	sb.WriteString("map ")
	sb.WriteString(e.Pair.String())

	if e.MemberPath != "" {
		sb.WriteString(" at ")
		sb.WriteString(e.MemberPath)
	}

	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// Innermost returns the deepest MappingError in the chain, the one closest to the failure.
func (e *MappingError) Innermost() *MappingError {
	res := e

	for {
		var next *MappingError
		if !errors.As(res.Err, &next) {
			return res
		}

		res = next
	}
}

// ConfigurationError is raised while declaring mappings, e.g. by ForMember
// with a name the destination does not have.
type ConfigurationError struct {
	Pair        TypePair
	Member      string
	Suggestions []string
	Err         error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("configure %s", e.Pair)
	if e.Member != "" {
		msg += " member " + e.Member
	}

	msg += ": " + e.Err.Error()

	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}

	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ValidationError is returned by AssertConfigurationIsValid.
type ValidationError struct {
	Diagnostics diagnostic.Diagnostics
}

func (e *ValidationError) Error() string {
	return ErrInvalidConfiguration.Error() + ": " + e.Diagnostics.Error().Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}
