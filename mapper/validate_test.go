package mapper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"object-mapper/internal/diagnostic"
	"object-mapper/mapper"
)

type Profile struct {
	ID       int64
	Name     string
	Settings Settings
}

type Settings struct {
	Theme string
}

type ProfileView struct {
	ID       int64
	FullName string
	Settings SettingsView
}

type SettingsView struct {
	Theme    string
	Language string
}

func TestValidateReportsUnmappedMembers(t *testing.T) {
	config := mapper.NewConfiguration(quietOptions()...)
	tm := mapper.CreateMap[Profile, ProfileView](config).TypeMap()

	assert.Equal(t, []string{"FullName"}, tm.UnmappedPropertyNames())

	err := config.AssertConfigurationIsValid()
	require.ErrorIs(t, err, mapper.ErrInvalidConfiguration)

	var validationErr *mapper.ValidationError
	require.ErrorAs(t, err, &validationErr)

	diags := validationErr.Diagnostics
	require.True(t, diags.HasCode(diagnostic.CodeUnmappedMember))
	require.True(t, diags.HasCode(diagnostic.CodeMissingTypeMap))

	var unmapped diagnostic.Diagnostic
	for _, d := range diags.All() {
		if d.Code == diagnostic.CodeUnmappedMember {
			unmapped = d
		}
	}

	assert.Equal(t, "FullName", unmapped.FieldPath)
	assert.Contains(t, unmapped.String(), "did you mean Name?")
}

func TestValidateFollowsNestedTypeMaps(t *testing.T) {
	config := mapper.NewConfiguration(quietOptions()...)
	mapper.CreateMap[Settings, SettingsView](config)
	mapper.CreateMap[Profile, ProfileView](config).ForMember("FullName", func(m *mapper.MemberExpression[Profile]) {
		m.MapFrom(func(p Profile) any { return p.Name })
	})

	diags := config.Validate()
	require.Equal(t, 1, diags.Count())
	assert.Equal(t, "Language", diags.All()[0].FieldPath)

	mapper.CreateMap[Settings, SettingsView](config).ForMember("Language", func(m *mapper.MemberExpression[Settings]) {
		m.Ignore()
	})

	require.NoError(t, config.AssertConfigurationIsValid())
}

func TestValidateIncludedPairs(t *testing.T) {
	config := mapper.NewConfiguration(quietOptions()...)
	tm := mapper.CreateMap[Animal, AnimalDTO](config).Include(typeOf[Dog](), typeOf[*DogDTO]()).TypeMap()

	diags := config.Validate(tm)
	require.True(t, diags.HasCode(diagnostic.CodeMissingTypeMap))

	mapper.CreateMap[Dog, *DogDTO](config)
	assert.NoError(t, config.AssertConfigurationIsValid(tm))
}

func TestDynamicMap(t *testing.T) {
	engine := newEngine(t, mapper.NewConfiguration(quietOptions()...))

	view, err := mapper.DynamicMap[SettingsView](engine, Settings{Theme: "dark"})
	require.ErrorIs(t, err, mapper.ErrInvalidConfiguration)
	assert.Empty(t, view)

	theme, err := mapper.DynamicMap[Settings](engine, SettingsView{Theme: "dark", Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, Settings{Theme: "dark"}, theme)
}
