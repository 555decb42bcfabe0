package mapper_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"object-mapper/mapper"
)

type Color int

const (
	Red Color = iota
	Green
	Blue
)

func (c Color) String() string {
	return [...]string{"Red", "Green", "Blue"}[c]
}

type Paint int

const (
	PaintGreen Paint = 3
	PaintRed   Paint = 5
)

type Permission uint8

const (
	PermRead Permission = 1 << iota
	PermWrite
	PermExec
)

func (p Permission) String() string {
	switch p {
	case PermRead:
		return "Read"
	case PermWrite:
		return "Write"
	case PermExec:
		return "Exec"
	default:
		return "Permission(?)"
	}
}

type Access int

const (
	AccessExec Access = 1 << iota
	AccessRead
	AccessWrite
)

func (a Access) String() string {
	switch a {
	case AccessExec:
		return "Exec"
	case AccessRead:
		return "Read"
	case AccessWrite:
		return "Write"
	default:
		return "Access(?)"
	}
}

func enumConfiguration(t *testing.T) *mapper.Configuration {
	t.Helper()

	config := mapper.NewConfiguration(quietOptions()...)
	require.NoError(t, mapper.RegisterEnum(config, Red, Green, Blue))
	require.NoError(t, mapper.RegisterEnumNames(config, map[Paint]string{PaintGreen: "Green", PaintRed: "Red"}))
	require.NoError(t, mapper.RegisterFlags(config, PermRead, PermWrite, PermExec))
	require.NoError(t, mapper.RegisterFlags(config, AccessExec, AccessRead, AccessWrite))

	return config
}

func TestEnumMapsByName(t *testing.T) {
	engine := newEngine(t, enumConfiguration(t))

	paint, err := mapper.Map[Paint](engine, Red)
	require.NoError(t, err)
	assert.Equal(t, PaintRed, paint)

	color, err := mapper.Map[Color](engine, PaintGreen)
	require.NoError(t, err)
	assert.Equal(t, Green, color)

	_, err = mapper.Map[Paint](engine, Blue)
	require.ErrorIs(t, err, mapper.ErrUnknownEnumValue)

	_, err = mapper.Map[Color](engine, Paint(4))
	require.ErrorIs(t, err, mapper.ErrUnknownEnumValue)
}

func TestEnumText(t *testing.T) {
	engine := newEngine(t, enumConfiguration(t))

	text, err := mapper.Map[string](engine, Blue)
	require.NoError(t, err)
	assert.Equal(t, "Blue", text)

	paint, err := mapper.Map[Paint](engine, "Green")
	require.NoError(t, err)
	assert.Equal(t, PaintGreen, paint)

	_, err = mapper.Map[Paint](engine, "Purple")
	require.ErrorIs(t, err, mapper.ErrUnknownEnumValue)
}

func TestFlagsMapByCaseName(t *testing.T) {
	engine := newEngine(t, enumConfiguration(t))

	access, err := mapper.Map[Access](engine, PermRead|PermWrite)
	require.NoError(t, err)
	assert.Equal(t, AccessRead|AccessWrite, access)

	access, err = mapper.Map[Access](engine, PermExec)
	require.NoError(t, err)
	assert.Equal(t, AccessExec, access)

	text, err := mapper.Map[string](engine, PermWrite|PermRead)
	require.NoError(t, err)
	assert.Equal(t, "Read, Write", text)

	perm, err := mapper.Map[Permission](engine, "Exec, Read")
	require.NoError(t, err)
	assert.Equal(t, PermExec|PermRead, perm)
}

func TestFlagsWinOverPlainEnum(t *testing.T) {
	config := enumConfiguration(t)
	engine := newEngine(t, config)

	_, err := mapper.Map[Access](engine, PermRead)
	require.NoError(t, err)

	cached, ok := engine.CachedMapper(mapper.PairOf[Permission, Access]())
	require.True(t, ok)
	assert.IsType(t, mapper.FlagsEnumMapper{}, cached)
}

func TestEnumType(t *testing.T) {
	config := enumConfiguration(t)

	enum, ok := config.Enum(typeOf[Access]())
	require.True(t, ok)
	assert.True(t, enum.IsFlags())
	assert.Equal(t, []string{"Exec", "Read", "Write"}, enum.Names())

	v, err := enum.Parse("Write, 1")
	require.NoError(t, err)
	assert.Equal(t, AccessWrite|AccessExec, v.Interface())

	name, ok := enum.Format(v)
	require.True(t, ok)
	assert.Equal(t, "Exec, Write", name)

	require.Error(t, mapper.RegisterEnumNames(config, map[Paint]string{1: "", 2: "x"}))
}

type Mode uint8

const (
	ModeRead Mode = 1 << iota
	ModeWrite
	ModeExec

	ModeReadWrite = ModeRead | ModeWrite
)

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "Read"
	case ModeWrite:
		return "Write"
	case ModeExec:
		return "Exec"
	case ModeReadWrite:
		return "ReadWrite"
	default:
		return "Mode(?)"
	}
}

type Grant int

const (
	GrantReadWrite Grant = 1 << iota
	GrantExec
)

func (g Grant) String() string {
	switch g {
	case GrantReadWrite:
		return "ReadWrite"
	case GrantExec:
		return "Exec"
	default:
		return "Grant(?)"
	}
}

func TestFlagsPreferCombinedCases(t *testing.T) {
	config := mapper.NewConfiguration(quietOptions()...)
	require.NoError(t, mapper.RegisterFlags(config, ModeRead, ModeWrite, ModeExec, ModeReadWrite))
	require.NoError(t, mapper.RegisterFlags(config, GrantReadWrite, GrantExec))

	enum, ok := config.Enum(typeOf[Mode]())
	require.True(t, ok)

	name, ok := enum.Name(reflect.ValueOf(ModeReadWrite | ModeExec))
	require.True(t, ok)
	assert.Equal(t, "ReadWrite, Exec", name)

	name, ok = enum.Name(reflect.ValueOf(ModeWrite | ModeExec))
	require.True(t, ok)
	assert.Equal(t, "Write, Exec", name)

	engine := newEngine(t, config)

	grant, err := mapper.Map[Grant](engine, ModeReadWrite|ModeExec)
	require.NoError(t, err)
	assert.Equal(t, GrantReadWrite|GrantExec, grant)
}

func TestRegisterEnumRejectsNonIntegerTypes(t *testing.T) {
	config := mapper.NewConfiguration(quietOptions()...)

	require.NoError(t, mapper.RegisterEnumNames(config, map[int8]string{-1: "Down", 1: "Up"}))
	require.ErrorIs(t, mapper.RegisterEnumNames(config, map[float64]string{1.5: "Half"}), mapper.ErrInvalidConfiguration)
}
