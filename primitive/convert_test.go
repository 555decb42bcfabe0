package primitive_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"object-mapper/primitive"
)

type level int

func (l level) IsValid() bool { return l >= 0 && l <= 3 }

type state string

func TestConvert(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		dst     reflect.Type
		allowed primitive.CategoryEnum
		want    any
	}{
		{"widen int32", int32(7), reflect.TypeFor[int64](), primitive.CategorySafeNumber, int64(7)},
		{"number to text", 42, reflect.TypeFor[string](), primitive.CategoryTextNumber, "42"},
		{"text to float", "1.25", reflect.TypeFor[float64](), primitive.CategoryTextNumber, 1.25},
		{"textual bool", "on", reflect.TypeFor[bool](), primitive.CategoryTextualBool, true},
		{"numeric bool", 1, reflect.TypeFor[bool](), primitive.CategoryNumericBool, true},
		{"duration text", "2h45m", reflect.TypeFor[time.Duration](), primitive.CategoryDuration, 2*time.Hour + 45*time.Minute},
		{"seconds", 1.5, reflect.TypeFor[time.Duration](), primitive.CategorySeconds, 1500 * time.Millisecond},
		{"timestamp", int64(0), reflect.TypeFor[time.Time](), primitive.CategoryTimestamp, time.Unix(0, 0).UTC()},
		{"enum from number text", "2", reflect.TypeFor[level](), primitive.CategoryEnumString, level(2)},
		{"string enum", "open", reflect.TypeFor[state](), primitive.CategoryEnumString, state("open")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := primitive.Convert(reflect.ValueOf(tt.src), tt.dst, tt.allowed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Interface())
		})
	}
}

func TestConvertRejects(t *testing.T) {
	t.Run("category not allowed", func(t *testing.T) {
		_, err := primitive.Convert(reflect.ValueOf(int64(1)), reflect.TypeFor[int32](), primitive.CategorySafeNumber)
		require.ErrorIs(t, err, primitive.ErrNotAllowed)
	})

	t.Run("narrowing allowed as unsafe", func(t *testing.T) {
		got, err := primitive.Convert(reflect.ValueOf(int64(1)), reflect.TypeFor[int32](), primitive.CategoryUnsafeNumber)
		require.NoError(t, err)
		assert.Equal(t, int32(1), got.Interface())
	})

	t.Run("invalid bool number", func(t *testing.T) {
		_, err := primitive.Convert(reflect.ValueOf(2), reflect.TypeFor[bool](), primitive.CategoryNumericBool)
		require.ErrorIs(t, err, primitive.ErrInvalidValue)
	})

	t.Run("enum outside IsValid", func(t *testing.T) {
		_, err := primitive.Convert(reflect.ValueOf("9"), reflect.TypeFor[level](), primitive.CategoryEnumString)
		require.ErrorIs(t, err, primitive.ErrInvalidValue)
	})

	t.Run("structs are not scalars", func(t *testing.T) {
		_, ok := primitive.Lookup(reflect.TypeFor[struct{}](), reflect.TypeFor[string](), primitive.CategoryAll)
		assert.False(t, ok)
	})
}

func TestParseCategories(t *testing.T) {
	got, err := primitive.ParseCategories("safe_number", " Text_Number ")
	require.NoError(t, err)
	assert.Equal(t, primitive.CategorySafeNumber|primitive.CategoryTextNumber, got)
	assert.True(t, primitive.CategoryDefault.Has(primitive.CategorySafeArray))
	assert.False(t, primitive.CategoryDefault.Has(primitive.CategoryUnsafeArray))

	var c primitive.CategoryEnum
	require.NoError(t, c.UnmarshalText([]byte("all")))
	assert.Equal(t, primitive.CategoryAll, c)
	assert.IsType(t, primitive.CategoryNone, primitive.CategoryAll)

	_, err = primitive.ParseCategories("bogus")
	require.ErrorIs(t, err, primitive.ErrUnknownCategory)
}
