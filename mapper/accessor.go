package mapper

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var ErrReadOnlyMember = errors.New("member cannot be written")

// MemberAccessor reads and writes one member of an instance. The engine only
// depends on this capability, never on how the member is reached.
type MemberAccessor interface {
	Name() string
	Type() reflect.Type
	GetValue(instance reflect.Value) (reflect.Value, error)
	SetValue(instance reflect.Value, value reflect.Value) error
	CanWrite() bool
}

// fieldAccessor reaches a struct field, promoted fields of embedded structs included.
type fieldAccessor struct {
	field reflect.StructField
}

func (a fieldAccessor) Name() string       { return a.field.Name }
func (a fieldAccessor) Type() reflect.Type { return a.field.Type }
func (a fieldAccessor) CanWrite() bool     { return true }

// GetValue yields an invalid Value when the instance or an embedded pointer on the way is nil.
func (a fieldAccessor) GetValue(instance reflect.Value) (reflect.Value, error) {
	instance = derefInstance(instance)
	if !instance.IsValid() {
		return reflect.Value{}, nil
	}

	v, err := instance.FieldByIndexErr(a.field.Index)
	if err != nil {
		// nil embedded pointer
		return reflect.Value{}, nil
	}

	return v, nil
}

func (a fieldAccessor) SetValue(instance reflect.Value, value reflect.Value) error {
	instance = derefInstance(instance)
	if !instance.IsValid() || !instance.CanSet() {
		return fmt.Errorf("%w: %s on a non addressable instance", ErrReadOnlyMember, a.field.Name)
	}

	target := instance
	for i, idx := range a.field.Index {
		if i > 0 && target.Kind() == reflect.Ptr {
			if target.IsNil() {
				target.Set(reflect.New(target.Type().Elem()))
			}

			target = target.Elem()
		}

		target = target.Field(idx)
	}

	v, err := conform(value, a.field.Type)
	if err != nil {
		return err
	}

	target.Set(v)

	return nil
}

// methodAccessor reaches a getter (X or GetX) and an optional setter (SetX),
// both on structs and on interfaces.
type methodAccessor struct {
	name   string
	typ    reflect.Type
	getter string
	setter string
}

func (a methodAccessor) Name() string       { return a.name }
func (a methodAccessor) Type() reflect.Type { return a.typ }
func (a methodAccessor) CanWrite() bool     { return a.setter != "" }

func (a methodAccessor) GetValue(instance reflect.Value) (reflect.Value, error) {
	if a.getter == "" {
		return reflect.Value{}, fmt.Errorf("member %s has no getter", a.name)
	}

	method := findMethod(instance, a.getter)
	if !method.IsValid() {
		return reflect.Value{}, nil
	}

	return method.Call(nil)[0], nil
}

func (a methodAccessor) SetValue(instance reflect.Value, value reflect.Value) error {
	if a.setter == "" {
		return fmt.Errorf("%w: %s", ErrReadOnlyMember, a.name)
	}

	method := findMethod(instance, a.setter)
	if !method.IsValid() {
		return fmt.Errorf("%w: %s on a nil instance", ErrReadOnlyMember, a.name)
	}

	v, err := conform(value, a.typ)
	if err != nil {
		return err
	}

	out := method.Call([]reflect.Value{v})
	if len(out) == 1 && !out[0].IsNil() {
		return out[0].Interface().(error)
	}

	return nil
}

func derefInstance(instance reflect.Value) reflect.Value {
	instance = unwrapInterface(instance)
	for instance.IsValid() && instance.Kind() == reflect.Ptr {
		if instance.IsNil() {
			return reflect.Value{}
		}

		instance = instance.Elem()
	}

	return instance
}

// findMethod looks for name on instance, then on its address, so pointer receivers are found too.
func findMethod(instance reflect.Value, name string) reflect.Value {
	instance = unwrapInterface(instance)
	if isNil(instance) {
		return reflect.Value{}
	}

	if m := instance.MethodByName(name); m.IsValid() {
		return m
	}

	if instance.Kind() != reflect.Ptr {
		return addressable(instance).Addr().MethodByName(name)
	}

	return reflect.Value{}
}

// Members lists the members of t in declaration order: exported fields first,
// then getter/setter method pairs that do not shadow a field.
func Members(t reflect.Type) []MemberAccessor {
	_, base := ptrDepthAndBase(t)

	var res []MemberAccessor

	seen := map[string]struct{}{}

	if base.Kind() == reflect.Struct {
		for _, field := range reflect.VisibleFields(base) {
			if !field.IsExported() || (field.Anonymous && derefKind(field.Type) == reflect.Struct) {
				continue
			}

			if _, ok := seen[field.Name]; ok {
				continue
			}

			seen[field.Name] = struct{}{}
			res = append(res, fieldAccessor{field: field})
		}
	}

	methods := base
	if base.Kind() != reflect.Interface {
		methods = reflect.PointerTo(base)
	}

	for _, m := range methodMembers(methods) {
		if _, ok := seen[m.name]; ok {
			continue
		}

		seen[m.name] = struct{}{}
		res = append(res, m)
	}

	return res
}

// FindMember looks a member up by exact name, then case-insensitively.
func FindMember(t reflect.Type, name string) (MemberAccessor, bool) {
	members := Members(t)

	for _, m := range members {
		if m.Name() == name {
			return m, true
		}
	}

	for _, m := range members {
		if strings.EqualFold(m.Name(), name) {
			return m, true
		}
	}

	return nil, false
}

func methodMembers(t reflect.Type) []methodAccessor {
	// interface method types have no receiver argument
	recv := 1
	if t.Kind() == reflect.Interface {
		recv = 0
	}

	getters := map[string]methodAccessor{}
	setters := map[string]reflect.Type{}

	var order []string

	for i := range t.NumMethod() {
		m := t.Method(i)
		if !m.IsExported() {
			continue
		}

		switch {
		case m.Type.NumIn() == recv && m.Type.NumOut() == 1 && !isError(m.Type.Out(0)):
			name := strings.TrimPrefix(m.Name, "Get")
			if name == "" || name == "String" {
				continue
			}

			if _, ok := getters[name]; !ok {
				order = append(order, name)
			}

			getters[name] = methodAccessor{name: name, typ: m.Type.Out(0), getter: m.Name}
		case strings.HasPrefix(m.Name, "Set") && len(m.Name) > 3 && m.Type.NumIn() == recv+1 &&
			(m.Type.NumOut() == 0 || (m.Type.NumOut() == 1 && isError(m.Type.Out(0)))):
			setters[m.Name[3:]] = m.Type.In(recv)
		}
	}

	var res []methodAccessor

	for _, name := range order {
		getter := getters[name]
		if typ, ok := setters[name]; ok && typ == getter.typ {
			getter.setter = "Set" + name
		}

		res = append(res, getter)
	}

	return res
}

func derefKind(t reflect.Type) reflect.Kind {
	_, base := ptrDepthAndBase(t)

	return base.Kind()
}
