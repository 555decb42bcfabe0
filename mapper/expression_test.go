package mapper_test

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"object-mapper/mapper"
	"object-mapper/options"
)

type Person struct {
	First  string
	Last   string
	Email  string
	Age    int
	Friend *Person
}

type PersonDTO struct {
	FullName  string
	Email     string
	Age       int
	Nickname  string
	CreatedBy string
}

func newEngine(t *testing.T, config *mapper.Configuration, opts ...options.Option) *mapper.Engine {
	t.Helper()

	return mapper.NewEngine(config, quietOptions(opts...)...)
}

func configurationPanic(t *testing.T, fn func()) *mapper.ConfigurationError {
	t.Helper()

	var res *mapper.ConfigurationError

	require.Panics(t, func() {
		defer func() {
			if p := recover(); p != nil {
				res, _ = p.(*mapper.ConfigurationError)
				panic(p)
			}
		}()

		fn()
	})
	require.NotNil(t, res)

	return res
}

func personMap(config *mapper.Configuration) *mapper.MappingExpression[Person, PersonDTO] {
	return mapper.CreateMap[Person, PersonDTO](config).
		ForMember("FullName", func(m *mapper.MemberExpression[Person]) {
			m.MapFrom(func(p Person) any { return p.First + " " + p.Last })
		}).
		ForMember("Nickname", func(m *mapper.MemberExpression[Person]) {
			m.MapFrom(func(p Person) any { return p.Friend.First })
			m.FormatNullValueAs("n/a")
		}).
		ForMember("CreatedBy", func(m *mapper.MemberExpression[Person]) { m.Ignore() })
}

func TestMapFrom(t *testing.T) {
	config := mapper.NewConfiguration(quietOptions()...)
	personMap(config)
	engine := newEngine(t, config)

	dto, err := mapper.Map[PersonDTO](engine, Person{First: "Grace", Last: "Hopper", Age: 85})
	require.NoError(t, err)

	assert.Equal(t, "Grace Hopper", dto.FullName)
	assert.Equal(t, 85, dto.Age)
	// a nil dereference inside MapFrom resolves to nil, then to the substitute
	assert.Equal(t, "n/a", dto.Nickname)

	dto, err = mapper.Map[PersonDTO](engine, Person{First: "Grace", Friend: &Person{First: "Ada"}})
	require.NoError(t, err)
	assert.Equal(t, "Ada", dto.Nickname)

	require.NoError(t, config.AssertConfigurationIsValid())
}

func TestMappingOrder(t *testing.T) {
	config := mapper.NewConfiguration(quietOptions()...)

	var order []string

	record := func(name string, value func(Person) any) func(*mapper.MemberExpression[Person]) {
		return func(m *mapper.MemberExpression[Person]) {
			m.MapFrom(func(p Person) any {
				order = append(order, name)

				return value(p)
			})
		}
	}

	personMap(config).
		ForMember("Email", record("Email", func(p Person) any { return p.Email })).
		ForMember("Age", record("Age", func(p Person) any { return p.Age })).
		ForMember("Age", func(m *mapper.MemberExpression[Person]) { m.SetMappingOrder(-1) })

	_, err := mapper.Map[PersonDTO](newEngine(t, config), Person{Email: "g@example.com", Age: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Age", "Email"}, order)
}

func TestUseDestinationValue(t *testing.T) {
	config := mapper.NewConfiguration(quietOptions()...)
	personMap(config).
		ForMember("Email", func(m *mapper.MemberExpression[Person]) { m.UseDestinationValue() }).
		ForMember("Age", func(m *mapper.MemberExpression[Person]) { m.UseDestinationValue() })

	dst := &PersonDTO{Email: "kept@example.com"}

	_, err := mapper.MapInto(newEngine(t, config), Person{Email: "new@example.com", Age: 30}, dst)
	require.NoError(t, err)

	assert.Equal(t, "kept@example.com", dst.Email)
	// zero destination values are overwritten
	assert.Equal(t, 30, dst.Age)
}

func TestUseDestinationValueStillResolves(t *testing.T) {
	config := mapper.NewConfiguration(quietOptions()...)

	var calls int

	personMap(config).
		ForMember("Email", func(m *mapper.MemberExpression[Person]) {
			m.MapFrom(func(p Person) any {
				calls++
				return p.Email
			})
			m.UseDestinationValue()
		})

	dst := &PersonDTO{Email: "kept@example.com"}

	_, err := mapper.MapInto(newEngine(t, config), Person{Email: "new@example.com"}, dst)
	require.NoError(t, err)

	assert.Equal(t, "kept@example.com", dst.Email)
	assert.Equal(t, 1, calls)
}

func TestUnmatchedMembersKeepZeroValue(t *testing.T) {
	type Src struct{ Name string }

	type Dst struct {
		Name  string
		Note  string
		Count int
	}

	config := mapper.NewConfiguration(quietOptions()...)
	mapper.CreateMap[Src, Dst](config)

	dst, err := mapper.Map[Dst](newEngine(t, config), Src{Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, Dst{Name: "Ada"}, dst)

	into := &Dst{Note: "draft", Count: 3}

	_, err = mapper.MapInto(newEngine(t, config), Src{Name: "Ada"}, into)
	require.NoError(t, err)
	assert.Equal(t, Dst{Name: "Ada", Note: "draft", Count: 3}, *into)
}

func TestNullSubstitute(t *testing.T) {
	type Src struct{ Count *int }

	type Dst struct{ Count int }

	config := mapper.NewConfiguration(quietOptions()...)
	mapper.CreateMap[Src, Dst](config).ForMember("Count", func(m *mapper.MemberExpression[Src]) {
		m.NullSubstitute(-1)
	})

	dst, err := mapper.Map[Dst](newEngine(t, config), Src{})
	require.NoError(t, err)
	assert.Equal(t, -1, dst.Count)
}

func TestConvertUsing(t *testing.T) {
	config := mapper.NewConfiguration(quietOptions()...)
	mapper.CreateMap[Person, PersonDTO](config).ConvertUsing(func(p Person) PersonDTO {
		return PersonDTO{FullName: strings.ToUpper(p.First)}
	})

	dto, err := mapper.Map[PersonDTO](newEngine(t, config), Person{First: "ada"})
	require.NoError(t, err)
	assert.Equal(t, PersonDTO{FullName: "ADA"}, dto)

	// a custom converter makes member validation moot
	require.NoError(t, config.AssertConfigurationIsValid())
}

func TestConvertUsingContextError(t *testing.T) {
	errRefused := errors.New("refused")

	config := mapper.NewConfiguration(quietOptions()...)
	mapper.CreateMap[Person, PersonDTO](config).ConvertUsingContext(
		func(ctx *mapper.ResolutionContext, p Person) (PersonDTO, error) {
			if p.Age < 0 {
				return PersonDTO{}, fmt.Errorf("%w at %s", errRefused, ctx.Pair())
			}

			return PersonDTO{Age: p.Age}, nil
		})

	_, err := mapper.Map[PersonDTO](newEngine(t, config), Person{Age: -1})
	require.ErrorIs(t, err, errRefused)
}

type upperConverter struct{}

func (upperConverter) Convert(p Person) (PersonDTO, error) {
	return PersonDTO{FullName: strings.ToUpper(p.First + " " + p.Last)}, nil
}

func TestConvertUsingType(t *testing.T) {
	built := 0
	factory := func(t reflect.Type) (any, error) {
		built++

		return reflect.New(t).Elem().Interface(), nil
	}

	config := mapper.NewConfiguration(quietOptions(options.WithFactory(factory))...)
	mapper.CreateMap[Person, PersonDTO](config).ConvertUsingType(reflect.TypeFor[upperConverter]())
	engine := newEngine(t, config)

	for range 3 {
		dto, err := mapper.Map[PersonDTO](engine, Person{First: "alan", Last: "turing"})
		require.NoError(t, err)
		assert.Equal(t, "ALAN TURING", dto.FullName)
	}

	assert.Equal(t, 1, built)
}

func TestConvertUsingTypeNotAConverter(t *testing.T) {
	config := mapper.NewConfiguration(quietOptions()...)
	mapper.CreateMap[Person, PersonDTO](config).ConvertUsingType(reflect.TypeFor[Address]())

	_, err := mapper.Map[PersonDTO](newEngine(t, config), Person{})
	require.ErrorIs(t, err, mapper.ErrNotAConverter)
}

func TestConstructUsingAndActions(t *testing.T) {
	config := mapper.NewConfiguration(quietOptions()...)

	var calls []string

	personMap(config).
		ConstructUsing(func(p Person) PersonDTO {
			calls = append(calls, "construct")

			return PersonDTO{CreatedBy: "ctor:" + p.First}
		}).
		BeforeMap(func(p Person, d *PersonDTO) {
			calls = append(calls, "before")
			d.Email = "overwritten later"
		}).
		AfterMap(func(p Person, d *PersonDTO) {
			calls = append(calls, "after")
			d.FullName = strings.TrimSpace(d.FullName)
		})

	dto, err := mapper.Map[PersonDTO](newEngine(t, config), Person{First: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	assert.Equal(t, []string{"construct", "before", "after"}, calls)
	assert.Equal(t, "ctor:Ada", dto.CreatedBy)
	assert.Equal(t, "ada@example.com", dto.Email)
	assert.Equal(t, "Ada", dto.FullName)
}

type initialsResolver struct{}

func (initialsResolver) Resolve(source mapper.ResolutionResult) (mapper.ResolutionResult, error) {
	var initials string
	for part := range strings.FieldsSeq(source.Value.String()) {
		initials += part[:1]
	}

	return source.New(reflect.ValueOf(initials), reflect.TypeFor[string]()), nil
}

func TestResolveUsing(t *testing.T) {
	config := mapper.NewConfiguration(quietOptions()...)
	personMap(config).ForMember("Nickname", func(m *mapper.MemberExpression[Person]) {
		m.ResolveUsing(initialsResolver{}).FromMemberFunc(func(p Person) any { return p.First + " " + p.Last })
	})

	dto, err := mapper.Map[PersonDTO](newEngine(t, config), Person{First: "Grace", Last: "Hopper"})
	require.NoError(t, err)
	assert.Equal(t, "GH", dto.Nickname)
}

func TestResolveUsingTypeFromMember(t *testing.T) {
	config := mapper.NewConfiguration(quietOptions()...)
	personMap(config).ForMember("Nickname", func(m *mapper.MemberExpression[Person]) {
		m.ResolveUsingType(reflect.TypeFor[initialsResolver]()).FromMember("first")
	})

	dto, err := mapper.Map[PersonDTO](newEngine(t, config), Person{First: "Grace Brewster"})
	require.NoError(t, err)
	assert.Equal(t, "GB", dto.Nickname)
}

func TestResolveUsingConstructedBy(t *testing.T) {
	config := mapper.NewConfiguration(quietOptions()...)
	constructed := 0

	personMap(config).ForMember("Nickname", func(m *mapper.MemberExpression[Person]) {
		m.ResolveUsing(nil).FromMember("Last").ConstructedBy(func() mapper.ValueResolver {
			constructed++

			return initialsResolver{}
		})
	})

	engine := newEngine(t, config)

	for range 2 {
		dto, err := mapper.Map[PersonDTO](engine, Person{Last: "von Neumann"})
		require.NoError(t, err)
		assert.Equal(t, "vN", dto.Nickname)
	}

	assert.Equal(t, 1, constructed)
}

func TestUnknownMemberPanics(t *testing.T) {
	config := mapper.NewConfiguration(quietOptions()...)

	cfgErr := configurationPanic(t, func() {
		mapper.CreateMap[Person, PersonDTO](config).ForMember("Emial", func(*mapper.MemberExpression[Person]) {})
	})

	assert.ErrorIs(t, cfgErr, mapper.ErrUnknownMember)
	assert.Equal(t, "Emial", cfgErr.Member)
	assert.Contains(t, cfgErr.Suggestions, "Email")
	assert.Contains(t, cfgErr.Error(), "did you mean")

	cfgErr = configurationPanic(t, func() {
		mapper.CreateMap[Person, PersonDTO](config).ForMember("Nickname", func(m *mapper.MemberExpression[Person]) {
			m.ResolveUsing(initialsResolver{}).FromMember("Frist")
		})
	})

	assert.ErrorIs(t, cfgErr, mapper.ErrUnknownMember)
	assert.Contains(t, cfgErr.Suggestions, "First")
}

func TestDelegateResolver(t *testing.T) {
	resolver := mapper.NewDelegateResolver(func(p Person) any { return p.Friend.Email })

	t.Run("type mismatch", func(t *testing.T) {
		_, err := resolver.Resolve(mapper.ResolutionResult{Value: reflect.ValueOf(42)})
		require.ErrorIs(t, err, mapper.ErrResolverTypeMismatch)
	})

	t.Run("nil dereference", func(t *testing.T) {
		res, err := resolver.Resolve(mapper.ResolutionResult{Value: reflect.ValueOf(Person{})})
		require.NoError(t, err)
		assert.True(t, res.IsNil())
	})

	t.Run("other panics escape", func(t *testing.T) {
		boom := mapper.NewDelegateResolver(func(Person) any { panic("boom") })
		assert.PanicsWithValue(t, "boom", func() {
			_, _ = boom.Resolve(mapper.ResolutionResult{Value: reflect.ValueOf(Person{})})
		})
	})
}

func TestNullPolicyPerProfile(t *testing.T) {
	type Inner struct{ Value string }

	type InnerDTO struct{ Value string }

	type Outer struct {
		Inner *Inner
		Tags  []string
	}

	type OuterDTO struct {
		Inner *InnerDTO
		Tags  []string
	}

	config := mapper.NewConfiguration(quietOptions()...)
	mapper.CreateMap[Inner, InnerDTO](config)
	mapper.CreateMap[Outer, OuterDTO](config)
	engine := newEngine(t, config)

	strict, err := mapper.Map[OuterDTO](engine, Outer{})
	require.NoError(t, err)
	assert.Nil(t, strict.Inner)
	assert.Nil(t, strict.Tags)

	mapper.CreateMap[Outer, OuterDTO](config).WithProfile("lenient")
	config.Profile("lenient").SetMapNullSourceValuesAsNull(false)

	lenient, err := mapper.Map[OuterDTO](engine, Outer{})
	require.NoError(t, err)
	require.NotNil(t, lenient.Inner)
	assert.Equal(t, InnerDTO{}, *lenient.Inner)
	assert.NotNil(t, lenient.Tags)
	assert.Empty(t, lenient.Tags)
}

func TestIncludeRejectsUnrelatedPair(t *testing.T) {
	config := mapper.NewConfiguration(quietOptions()...)

	cfgErr := configurationPanic(t, func() {
		mapper.CreateMap[Person, PersonDTO](config).Include(reflect.TypeFor[Address](), reflect.TypeFor[PersonDTO]())
	})

	assert.ErrorIs(t, cfgErr, mapper.ErrInvalidConfiguration)
}
