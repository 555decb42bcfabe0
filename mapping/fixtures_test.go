package mapping

import (
	"fmt"
	"log/slog"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"object-mapper/mapper"
	"object-mapper/options"
	"object-mapper/store"
	"object-mapper/warehouse"
)

// centsFormatter renders int64 cents as a decimal amount.
var centsFormatter = mapper.FormatterFunc(func(ctx *mapper.ResolutionContext) (string, error) {
	v := ctx.SourceValue()
	if v.Kind() != reflect.Int64 {
		return "", fmt.Errorf("cents: unexpected %s", v.Type())
	}

	cents := v.Int()

	return fmt.Sprintf("%d.%02d", cents/100, cents%100), nil
})

// referenceResolver turns an order id into its public reference.
var referenceResolver = mapper.ResolverFunc(func(src mapper.ResolutionResult) (mapper.ResolutionResult, error) {
	v := reflect.ValueOf(fmt.Sprintf("ORD-%d", src.Value.Int()))

	return src.New(v, v.Type()), nil
})

func newRegistry(t *testing.T) *Registry {
	t.Helper()

	reg := NewRegistry()
	require.NoError(t, reg.RegisterTypes(
		reflect.TypeFor[store.Order](),
		reflect.TypeFor[store.OrderItem](),
		reflect.TypeFor[*store.Product](),
		reflect.TypeFor[store.Customer](),
		reflect.TypeFor[warehouse.Shipment](),
		reflect.TypeFor[warehouse.Line](),
		reflect.TypeFor[warehouse.StockReport](),
	))

	reg.RegisterFormatter("cents", centsFormatter)
	reg.RegisterResolver("reference", referenceResolver)

	return reg
}

func newConfiguration() *mapper.Configuration {
	return mapper.NewConfiguration(options.WithLogger(slog.New(slog.DiscardHandler)))
}

func mustParse(t *testing.T, yaml string) *MappingFile {
	t.Helper()

	mf, err := Parse([]byte(yaml))
	require.NoError(t, err)

	return mf
}
