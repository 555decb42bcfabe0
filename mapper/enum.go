package mapper

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// EnumType describes a named integer or string type registered as an
// enumeration. Values map between enumerations by case name.
type EnumType struct {
	typ    reflect.Type
	flags  bool
	names  []string
	values []reflect.Value
	byName map[string]int
}

type enumLookup interface {
	Enum(t reflect.Type) (*EnumType, bool)
}

func newEnumType(t reflect.Type, flags bool, names []string, values []reflect.Value) (*EnumType, error) {
	switch {
	case t.Kind() == reflect.String && !flags:
	case isSignedKind(t.Kind()) || isUnsignedKind(t.Kind()):
	default:
		return nil, fmt.Errorf("%w: %s is not an integer or string type", ErrInvalidConfiguration, typeStr(t))
	}

	enum := &EnumType{typ: t, flags: flags, byName: make(map[string]int, len(names))}

	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%w: empty case name in %s", ErrInvalidConfiguration, typeStr(t))
		}

		if _, dup := enum.byName[name]; dup {
			return nil, fmt.Errorf("%w: duplicate case %s in %s", ErrInvalidConfiguration, name, typeStr(t))
		}

		enum.byName[name] = i
		enum.names = append(enum.names, name)
		enum.values = append(enum.values, values[i])
	}

	return enum, nil
}

func (e *EnumType) Type() reflect.Type { return e.typ }
func (e *EnumType) IsFlags() bool      { return e.flags }
func (e *EnumType) Names() []string    { return slices.Clone(e.names) }

// Name returns the case name of v, for flag sets the composite "A, B" form.
func (e *EnumType) Name(v reflect.Value) (string, bool) {
	for i, value := range e.values {
		if value.Equal(v) {
			return e.names[i], true
		}
	}

	if !e.flags {
		return "", false
	}

	bits := bitsOf(v)
	if bits == 0 {
		return "", false
	}

	type flag struct {
		name string
		bits uint64
	}

	var cases []flag

	for i, value := range e.values {
		if b := bitsOf(value); b != 0 {
			cases = append(cases, flag{e.names[i], b})
		}
	}

	// widest combinations first, rendered in ascending order
	slices.SortStableFunc(cases, func(a, b flag) int {
		return cmp.Compare(b.bits, a.bits)
	})

	var (
		parts     []flag
		remaining = bits
	)

	for _, c := range cases {
		if remaining&c.bits == c.bits {
			parts = append(parts, c)
			remaining &^= c.bits
		}
	}

	if remaining != 0 {
		return "", false
	}

	slices.SortStableFunc(parts, func(a, b flag) int {
		return cmp.Compare(a.bits, b.bits)
	})

	names := make([]string, len(parts))
	for i, c := range parts {
		names[i] = c.name
	}

	return strings.Join(names, ", "), true
}

// Format is Name, falling back to the number for values without a case.
func (e *EnumType) Format(v reflect.Value) (string, bool) {
	if name, ok := e.Name(v); ok {
		return name, true
	}

	if !e.flags {
		return "", false
	}

	return strconv.FormatUint(bitsOf(v), 10), true
}

// Parse returns the value of the case called name. Flag sets also accept
// composite names and plain numbers.
func (e *EnumType) Parse(name string) (reflect.Value, error) {
	name = strings.TrimSpace(name)

	if i, ok := e.byName[name]; ok {
		return e.values[i], nil
	}

	if !e.flags {
		return reflect.Value{}, fmt.Errorf("%w: %q is not a case of %s", ErrUnknownEnumValue, name, typeStr(e.typ))
	}

	var bits uint64

	for part := range strings.SplitSeq(name, ",") {
		part = strings.TrimSpace(part)

		if i, ok := e.byName[part]; ok {
			bits |= bitsOf(e.values[i])

			continue
		}

		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %q is not a case of %s", ErrUnknownEnumValue, part, typeStr(e.typ))
		}

		bits |= n
	}

	res := reflect.New(e.typ).Elem()
	if res.CanInt() {
		res.SetInt(int64(bits))
	} else {
		res.SetUint(bits)
	}

	return res, nil
}

func bitsOf(v reflect.Value) uint64 {
	if v.CanInt() {
		return uint64(v.Int())
	}

	if v.CanUint() {
		return v.Uint()
	}

	return 0
}

func isSignedKind(k reflect.Kind) bool {
	switch k {
	default:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
}

func isUnsignedKind(k reflect.Kind) bool {
	switch k {
	default:
		return false
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
}

// caseNames collects the String() names of values.
func caseNames[E fmt.Stringer](values []E) ([]string, []reflect.Value) {
	names := make([]string, len(values))
	refs := make([]reflect.Value, len(values))

	for i, value := range values {
		names[i] = value.String()
		refs[i] = reflect.ValueOf(value)
	}

	return names, refs
}

// RegisterEnum registers E as an enumeration whose case names come from String().
func RegisterEnum[E interface {
	comparable
	fmt.Stringer
}](c *Configuration, values ...E) error {
	names, refs := caseNames(values)

	return c.registerEnum(reflect.TypeFor[E](), false, names, refs)
}

// RegisterFlags registers E as a bit flag set. Each value should hold a single
// bit or be a named combination.
func RegisterFlags[E interface {
	comparable
	fmt.Stringer
}](c *Configuration, values ...E) error {
	names, refs := caseNames(values)

	return c.registerEnum(reflect.TypeFor[E](), true, names, refs)
}

// RegisterEnumNames registers E with explicit case names, for types without String().
func RegisterEnumNames[E comparable](c *Configuration, names map[E]string) error {
	values := make([]E, 0, len(names))
	for value := range names {
		values = append(values, value)
	}

	slices.SortFunc(values, func(a, b E) int {
		return compareValues(reflect.ValueOf(a), reflect.ValueOf(b))
	})

	caseList := make([]string, len(values))
	refs := make([]reflect.Value, len(values))

	for i, value := range values {
		caseList[i] = names[value]
		refs[i] = reflect.ValueOf(value)
	}

	return c.registerEnum(reflect.TypeFor[E](), false, caseList, refs)
}

func compareValues(a, b reflect.Value) int {
	switch {
	case a.CanInt():
		return cmp.Compare(a.Int(), b.Int())
	case a.CanUint():
		return cmp.Compare(a.Uint(), b.Uint())
	default:
		return strings.Compare(a.String(), b.String())
	}
}
