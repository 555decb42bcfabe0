package mapping

import (
	"slices"

	"object-mapper/internal/common"
)

// MappingFile is the root of a YAML mapping file.
type MappingFile struct {
	// Version of the mapping schema.
	Version string `yaml:"version,omitempty"`

	Profiles []ProfileDef `yaml:"profiles,omitempty"`

	TypeMappings []TypeMapping `yaml:"mappings"`
}

// ProfileDef configures a named profile. Unset switches keep their current value.
type ProfileDef struct {
	Name string `yaml:"name"`

	MapNullSourceValuesAsNull *bool `yaml:"map_null_source_values_as_null,omitempty"`

	// Locale is a BCP 47 tag used by the default formatting of the profile.
	Locale string `yaml:"locale,omitempty"`
}

// TypeMapping declares the type map of one source/target pair.
type TypeMapping struct {
	// Source type name (e.g. "store.Order" or a full import path).
	Source string `yaml:"source"`

	// Target type name (e.g. "warehouse.Shipment").
	Target string `yaml:"target"`

	// Profile the type map belongs to. Empty means the default profile.
	Profile string `yaml:"profile,omitempty"`

	// OneToOne maps source paths (keys) to target members (values).
	// Example: { "ID": "OrderNumber", "Customer.Email": "Contact" }
	OneToOne map[string]string `yaml:"121,omitempty"`

	Fields []FieldMapping `yaml:"fields,omitempty"`

	// Ignore lists target members that are never written.
	Ignore []string `yaml:"ignore,omitempty"`

	// Include lists derived pairs used when the runtime source is the derived source.
	Include []IncludeDef `yaml:"include,omitempty"`
}

// FieldMapping configures one or more target members the same way.
type FieldMapping struct {
	Target StringOrArray `yaml:"target"`

	// Source is a dotted path of source members. With a resolver it is what
	// the resolver receives.
	Source string `yaml:"source,omitempty"`

	Ignore bool `yaml:"ignore,omitempty"`

	// Order sorts members before mapping, lower first.
	Order int `yaml:"order,omitempty"`

	// NullSubstitute is mapped instead of a nil source value.
	NullSubstitute any `yaml:"null_substitute,omitempty"`

	UseDestinationValue bool `yaml:"use_destination_value,omitempty"`

	// Formatters are registry names, applied in order.
	Formatters StringOrArray `yaml:"formatters,omitempty"`

	// Resolver is a registry name.
	Resolver string `yaml:"resolver,omitempty"`
}

// IncludeDef names a derived pair.
type IncludeDef struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// StringOrArray is a string list that can be written as a single string in YAML.
type StringOrArray []string

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	if v, ok := common.First(s); ok {
		return v
	}

	return ""
}

func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

func (s StringOrArray) IsSingle() bool {
	return common.IsSingle(s)
}

func (s StringOrArray) IsMultiple() bool {
	return common.IsMultiple(s)
}

func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}

// Pair renders the pair the way diagnostics show it.
func (tm *TypeMapping) Pair() string {
	return tm.Source + " -> " + tm.Target
}
