package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shipmentYAML = `
version: "1"
profiles:
  - name: reports
    map_null_source_values_as_null: false
    locale: de-DE
mappings:
  - source: store.Order
    target: warehouse.Shipment
    121:
      ID: OrderNumber
      Items: Lines
    fields:
      - target: Destination
        source: Customer.Address.Country
      - target: Total
        source: TotalCents
        formatters: cents
      - target: Notes
        null_substitute: none
      - target: Priority
        use_destination_value: true
      - target: Reference
        source: ID
        resolver: reference
        order: 10
    ignore:
      - PackedBy
  - source: store.OrderItem
    target: warehouse.Line
    121:
      Name: Description
  - source: store.Product
    target: warehouse.StockReport
    profile: reports
    fields:
      - target: Price
        source: PriceCents
        formatters: [cents]
`

func TestParse(t *testing.T) {
	mf, err := Parse([]byte(shipmentYAML))
	require.NoError(t, err)
	require.NotNil(t, mf)

	assert.Equal(t, "1", mf.Version)

	require.Len(t, mf.Profiles, 1)
	assert.Equal(t, "reports", mf.Profiles[0].Name)
	require.NotNil(t, mf.Profiles[0].MapNullSourceValuesAsNull)
	assert.False(t, *mf.Profiles[0].MapNullSourceValuesAsNull)
	assert.Equal(t, "de-DE", mf.Profiles[0].Locale)

	require.Len(t, mf.TypeMappings, 3)

	tm := mf.TypeMappings[0]
	assert.Equal(t, "store.Order", tm.Source)
	assert.Equal(t, "warehouse.Shipment", tm.Target)
	assert.Equal(t, "store.Order -> warehouse.Shipment", tm.Pair())

	// 121 shorthand
	assert.Len(t, tm.OneToOne, 2)
	assert.Equal(t, "OrderNumber", tm.OneToOne["ID"])
	assert.Equal(t, "Lines", tm.OneToOne["Items"])

	require.Len(t, tm.Fields, 5)
	assert.Equal(t, "Destination", tm.Fields[0].Target.First())
	assert.Equal(t, "Customer.Address.Country", tm.Fields[0].Source)
	assert.Equal(t, StringOrArray{"cents"}, tm.Fields[1].Formatters)
	assert.Equal(t, "none", tm.Fields[2].NullSubstitute)
	assert.True(t, tm.Fields[3].UseDestinationValue)
	assert.Equal(t, "reference", tm.Fields[4].Resolver)
	assert.Equal(t, 10, tm.Fields[4].Order)

	assert.Equal(t, []string{"PackedBy"}, tm.Ignore)
	assert.Equal(t, "reports", mf.TypeMappings[2].Profile)
	assert.Equal(t, StringOrArray{"cents"}, mf.TypeMappings[2].Fields[0].Formatters)
}

func TestParseMinimal(t *testing.T) {
	yaml := `
mappings:
  - source: A
    target: B
`

	mf, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, mf.Version) // Default version
	require.Len(t, mf.TypeMappings, 1)
	assert.Equal(t, "A", mf.TypeMappings[0].Source)
	assert.Equal(t, "B", mf.TypeMappings[0].Target)
}

func TestParseEmpty(t *testing.T) {
	mf, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, mf.Version)
	assert.Empty(t, mf.TypeMappings)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	yaml := `
mappings:
  - source: A
    target: B
    fields:
      - target: Name
        null_subsitute: x
`

	_, err := Parse([]byte(yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "null_subsitute")
}

func TestParseStringOrArray(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		expected StringOrArray
	}{
		{
			name: "single string",
			yaml: `
mappings:
  - source: A
    target: B
    fields:
      - target: Name
        source: Name
`,
			expected: StringOrArray{"Name"},
		},
		{
			name: "array",
			yaml: `
mappings:
  - source: A
    target: B
    fields:
      - target: [First, Second]
        source: Value
`,
			expected: StringOrArray{"First", "Second"},
		},
		{
			name: "empty",
			yaml: `
mappings:
  - source: A
    target: B
    fields:
      - target: ""
`,
			expected: StringOrArray{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mf, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mf.TypeMappings[0].Fields[0].Target)
		})
	}
}

func TestParseStringOrArrayRejectsMaps(t *testing.T) {
	yaml := `
mappings:
  - source: A
    target: B
    fields:
      - target: {Name: x}
`

	_, err := Parse([]byte(yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected string or array, got mapping")
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
		wantErr  bool
	}{
		{input: "Name", expected: []string{"Name"}},
		{input: "Customer.Address.City", expected: []string{"Customer", "Address", "City"}},
		{input: "_private", expected: []string{"_private"}},
		{input: "", wantErr: true},
		{input: ".", wantErr: true},
		{input: "Field.", wantErr: true},
		{input: ".Field", wantErr: true},
		{input: "Items[]", wantErr: true},
		{input: "123Invalid", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParsePath(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestNormalizeMappingFile(t *testing.T) {
	mf, err := Parse([]byte(shipmentYAML))
	require.NoError(t, err)

	NormalizeMappingFile(mf)

	tm := mf.TypeMappings[0]
	assert.Nil(t, tm.OneToOne)
	require.Len(t, tm.Fields, 7)

	// 121 entries come first, in source path order
	assert.Equal(t, "ID", tm.Fields[0].Source)
	assert.Equal(t, "OrderNumber", tm.Fields[0].Target.First())
	assert.Equal(t, "Items", tm.Fields[1].Source)
	assert.Equal(t, "Lines", tm.Fields[1].Target.First())
	assert.Equal(t, "Destination", tm.Fields[2].Target.First())

	// idempotent
	NormalizeMappingFile(mf)
	assert.Len(t, mf.TypeMappings[0].Fields, 7)
}

func TestWriteFileRoundTrip(t *testing.T) {
	mf, err := Parse([]byte(shipmentYAML))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, WriteFile(mf, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "formatters: cents\n")

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, mf, loaded)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read mapping file")
}
