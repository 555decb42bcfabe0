package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"OrderID", "orderid"},
		{"order_id", "orderid"},
		{"order-id", "orderid"},
		{"XMLParser", "xmlparser"},
		{"Price_Cents", "pricecents"},
		{"", ""},
		{"order_item-ID", "orderitemid"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdent(tt.input))
		})
	}
}

func TestNormalizeIdentWithSuffixStrip(t *testing.T) {
	assert.Equal(t, "order", NormalizeIdentWithSuffixStrip("OrderID"))
	assert.Equal(t, "created", NormalizeIdentWithSuffixStrip("created_at"))
	assert.Equal(t, "id", NormalizeIdentWithSuffixStrip("ID"))
}

func TestPascalCase(t *testing.T) {
	var convention PascalCase

	assert.Equal(t, []string{"get", "HTTP", "Response"}, convention.Split("getHTTPResponse"))
	assert.Equal(t, []string{"Customer", "Address", "City"}, convention.Split("CustomerAddressCity"))
	assert.Equal(t, "CustomerName", convention.Join([]string{"customer", "Name"}))
	assert.Empty(t, convention.Split(""))
}

func TestLowerUnderscore(t *testing.T) {
	var convention LowerUnderscore

	assert.Equal(t, []string{"customer", "name"}, convention.Split("customer__name"))
	assert.Equal(t, "customer_name", convention.Join([]string{"Customer", "Name"}))
}

func TestPrefixes(t *testing.T) {
	words := PascalCase{}.Split("CustomerAddressCity")

	assert.Equal(t, [][2]string{
		{"CustomerAddress", "City"},
		{"Customer", "AddressCity"},
	}, Prefixes(words, PascalCase{}))

	assert.Empty(t, Prefixes([]string{"Name"}, PascalCase{}))
}

func TestTokenizeIdent(t *testing.T) {
	assert.Equal(t, []string{"order", "id"}, TokenizeIdent("OrderID"))
	assert.Equal(t, []string{"total", "cents"}, TokenizeIdent("total_cents"))
}
