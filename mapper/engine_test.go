package mapper_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"object-mapper/mapper"
	"object-mapper/options"
)

type EngineSuite struct {
	suite.Suite

	config *mapper.Configuration
	engine *mapper.Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.config = orderConfiguration()
	s.engine = mapper.NewEngine(s.config, quietOptions()...)
}

func (s *EngineSuite) TestMapOrderGraph() {
	dto, err := mapper.Map[OrderDTO](s.engine, sampleOrder())
	s.Require().NoError(err)

	s.Equal(uuid.MustParse("6f1c1f4e-8d8e-4f5b-9a55-0b9f3c2f7a10"), dto.ID)
	s.Equal("Ada", dto.CustomerName)
	s.Equal("London", dto.CustomerAddressCity)
	s.Equal(StatusDTOShipped, dto.Status)
	s.Equal("leave at the door", dto.Note)
	s.Equal([]LineDTO{
		{Product: "keyboard", Quantity: 1, Price: "49.5"},
		{Product: "cable", Quantity: 3, Price: "4"},
	}, dto.Lines)
}

func (s *EngineSuite) TestMapIsRepeatableAndLeavesSourceAlone() {
	order := sampleOrder()
	before := spew.Sdump(order)

	first, err := mapper.Map[OrderDTO](s.engine, order)
	s.Require().NoError(err)

	second, err := mapper.Map[OrderDTO](s.engine, order)
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Equal(before, spew.Sdump(order))
}

func (s *EngineSuite) TestNilNestedSourceWithNullPolicy() {
	order := sampleOrder()
	order.Customer = nil
	order.Note = nil
	order.Lines = nil

	dto, err := mapper.Map[OrderDTO](s.engine, order)
	s.Require().NoError(err)

	s.Empty(dto.CustomerName)
	s.Empty(dto.CustomerAddressCity)
	s.Empty(dto.Note)
	s.Nil(dto.Lines)
}

func (s *EngineSuite) TestNilSourceIsNilDestination() {
	dto, err := mapper.Map[*OrderDTO](s.engine, (*Order)(nil))
	s.Require().NoError(err)
	s.Nil(dto)
}

func (s *EngineSuite) TestUntypedMap() {
	res, err := s.engine.Map(sampleOrder(), nil, reflect.TypeFor[OrderDTO]())
	s.Require().NoError(err)
	s.Require().IsType(OrderDTO{}, res)
	s.Equal("Ada", res.(OrderDTO).CustomerName)

	_, err = s.engine.Map(sampleOrder(), nil, nil)
	s.ErrorIs(err, mapper.ErrUnsupportedMapping)
}

func (s *EngineSuite) TestUnsupportedPairBecomesSupportedAfterCreateMap() {
	_, err := mapper.Map[LineDTO](s.engine, Customer{Name: "Ada"})
	s.Require().Error(err)
	s.True(mapper.IsUnsupported(err))

	var mappingErr *mapper.MappingError
	s.Require().ErrorAs(err, &mappingErr)
	s.Equal(mapper.PairOf[Customer, LineDTO](), mappingErr.Pair)

	cached, ok := s.engine.CachedMapper(mapper.PairOf[Customer, LineDTO]())
	s.True(ok)
	s.Nil(cached)

	mapper.CreateMap[Customer, LineDTO](s.config).
		ForMember("Product", func(m *mapper.MemberExpression[Customer]) {
			m.MapFrom(func(c Customer) any { return c.Name })
		}).
		ForAllMembers(func(m *mapper.MemberExpression[Customer]) {
			if !m.PropertyMap().IsMapped() {
				m.Ignore()
			}
		})

	_, ok = s.engine.CachedMapper(mapper.PairOf[Customer, LineDTO]())
	s.False(ok)

	line, err := mapper.Map[LineDTO](s.engine, Customer{Name: "Ada"})
	s.Require().NoError(err)
	s.Equal(LineDTO{Product: "Ada"}, line)
}

func (s *EngineSuite) TestErrorNamesInnermostMember() {
	order := sampleOrder()
	order.ID = "not-a-uuid"

	_, err := mapper.Map[OrderDTO](s.engine, order)
	s.Require().Error(err)

	var mappingErr *mapper.MappingError
	s.Require().ErrorAs(err, &mappingErr)
	s.Equal("ID", mappingErr.Innermost().MemberPath)
	s.Equal(mapper.PairOf[string, uuid.UUID](), mappingErr.Innermost().Pair)
}

func (s *EngineSuite) TestElementPath() {
	mapper.CreateMap[Line, LineDTO](s.config).ForMember("Quantity", func(m *mapper.MemberExpression[Line]) {
		m.MapFrom(func(l Line) any {
			if l.Quantity > 2 {
				panic("too many")
			}

			return l.Quantity
		})
	})

	_, err := mapper.Map[OrderDTO](s.engine, sampleOrder())
	s.Require().ErrorIs(err, mapper.ErrPanic)

	var mappingErr *mapper.MappingError
	s.Require().ErrorAs(err, &mappingErr)
	s.Equal("Lines[1]", mappingErr.Innermost().MemberPath)
}

func (s *EngineSuite) TestMapIntoPointerUpdatesInPlace() {
	dst := &OrderDTO{CustomerName: "someone else", Note: "kept?"}

	res, err := mapper.MapInto(s.engine, sampleOrder(), dst)
	s.Require().NoError(err)

	s.Same(dst, res)
	s.Equal("Ada", dst.CustomerName)
	s.Equal("leave at the door", dst.Note)
}

func (s *EngineSuite) TestMapIntoValueReturnsCopy() {
	dst := OrderDTO{CustomerName: "someone else"}

	res, err := mapper.MapInto(s.engine, sampleOrder(), dst)
	s.Require().NoError(err)

	s.Equal("someone else", dst.CustomerName)
	s.Equal("Ada", res.CustomerName)
}

func (s *EngineSuite) TestConcurrentMapping() {
	want, err := mapper.Map[OrderDTO](s.engine, sampleOrder())
	s.Require().NoError(err)

	var g errgroup.Group

	for range 32 {
		g.Go(func() error {
			for range 50 {
				got, err := mapper.Map[OrderDTO](s.engine, sampleOrder())
				if err != nil {
					return err
				}

				if !reflect.DeepEqual(want, got) {
					return errors.New("concurrent result differs")
				}
			}

			return nil
		})
	}

	s.Require().NoError(g.Wait())
}

func (s *EngineSuite) TestConcurrentFirstUse() {
	engine := mapper.NewEngine(orderConfiguration(), quietOptions()...)

	var g errgroup.Group

	for range 16 {
		g.Go(func() error {
			_, err := mapper.Map[OrderDTO](engine, sampleOrder())

			return err
		})
	}

	s.Require().NoError(g.Wait())

	cached, ok := engine.CachedMapper(mapper.PairOf[Order, OrderDTO]())
	s.True(ok)
	s.IsType(mapper.TypeMapMapper{}, cached)
}

func (s *EngineSuite) TestMetrics() {
	reg := prometheus.NewRegistry()
	config := orderConfiguration()
	engine := mapper.NewEngine(config, quietOptions(options.WithMetrics(reg))...)
	metrics := engine.Metrics()

	_, err := mapper.Map[OrderDTO](engine, sampleOrder())
	s.Require().NoError(err)

	misses := testutil.ToFloat64(metrics.CacheMisses)
	s.Positive(misses)

	_, err = mapper.Map[OrderDTO](engine, sampleOrder())
	s.Require().NoError(err)

	s.InDelta(misses, testutil.ToFloat64(metrics.CacheMisses), 0)
	s.Positive(testutil.ToFloat64(metrics.CacheHits))

	mapper.CreateMap[Customer, Customer](config)
	s.InDelta(1, testutil.ToFloat64(metrics.CacheInvalidations.WithLabelValues("pair")), 0)

	config.Profile(mapper.DefaultProfileName).SetMapNullSourceValuesAsNull(false)
	s.InDelta(1, testutil.ToFloat64(metrics.CacheInvalidations.WithLabelValues("all")), 0)

	_, err = mapper.Map[LineDTO](engine, 42)
	s.Require().Error(err)
	s.InDelta(1, testutil.ToFloat64(metrics.MappingFailures), 0)

	count, err := testutil.GatherAndCount(reg, "object_mapper_strategy_cache_hits_total")
	s.Require().NoError(err)
	s.Equal(1, count)
}
