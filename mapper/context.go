package mapper

import (
	"fmt"
	"reflect"
	"strings"
)

// ResolutionContext describes one step of a mapping call. A context is never
// changed after creation; nested members and elements get child contexts.
type ResolutionContext struct {
	sourceValue      reflect.Value
	destinationValue reflect.Value
	sourceType       reflect.Type
	destinationType  reflect.Type
	typeMap          *TypeMap
	propertyMap      *PropertyMap
	parent           *ResolutionContext
	segment          string
}

// NewResolutionContext creates the root context of a mapping call.
// destination is the instance being updated, or an invalid Value.
func NewResolutionContext(
	typeMap *TypeMap, source, destination reflect.Value, sourceType, destinationType reflect.Type,
) *ResolutionContext {
	return &ResolutionContext{
		sourceValue:      source,
		destinationValue: destination,
		sourceType:       sourceType,
		destinationType:  destinationType,
		typeMap:          typeMap,
	}
}

func (c *ResolutionContext) SourceValue() reflect.Value      { return c.sourceValue }
func (c *ResolutionContext) DestinationValue() reflect.Value { return c.destinationValue }
func (c *ResolutionContext) SourceType() reflect.Type        { return c.sourceType }
func (c *ResolutionContext) DestinationType() reflect.Type   { return c.destinationType }
func (c *ResolutionContext) TypeMap() *TypeMap               { return c.typeMap }
func (c *ResolutionContext) PropertyMap() *PropertyMap       { return c.propertyMap }
func (c *ResolutionContext) Parent() *ResolutionContext      { return c.parent }

// Pair is the declared pair of the context, the strategy cache key.
func (c *ResolutionContext) Pair() TypePair {
	return TypePair{Source: c.sourceType, Destination: c.destinationType}
}

// IsSourceNil reports whether there is nothing to map from.
func (c *ResolutionContext) IsSourceNil() bool {
	return isNil(c.sourceValue)
}

func (c *ResolutionContext) child(segment string) *ResolutionContext {
	return &ResolutionContext{parent: c, segment: segment}
}

// CreateTypeContext derives a context for mapping source into destination
// under typeMap without naming a member, e.g. an unwrapped pointer.
func (c *ResolutionContext) CreateTypeContext(
	typeMap *TypeMap, source, destination reflect.Value, sourceType, destinationType reflect.Type,
) *ResolutionContext {
	res := c.child("")
	res.typeMap = typeMap
	res.sourceValue = source
	res.destinationValue = destination
	res.sourceType = sourceType
	res.destinationType = destinationType
	res.propertyMap = c.propertyMap

	return res
}

// CreateMemberContext derives the context of one destination member.
func (c *ResolutionContext) CreateMemberContext(
	memberTypeMap *TypeMap, value reflect.Value, sourceType reflect.Type, propertyMap *PropertyMap,
) *ResolutionContext {
	res := c.child("." + propertyMap.Name())
	res.typeMap = memberTypeMap
	res.sourceValue = value
	res.sourceType = sourceType
	res.destinationType = propertyMap.DestinationMember().Type()
	res.propertyMap = propertyMap

	return res
}

// CreateElementContext derives the context of a sequence element.
func (c *ResolutionContext) CreateElementContext(
	elementTypeMap *TypeMap, element reflect.Value, sourceElementType, destinationElementType reflect.Type, index int,
) *ResolutionContext {
	res := c.child(fmt.Sprintf("[%d]", index))
	res.typeMap = elementTypeMap
	res.sourceValue = element
	res.sourceType = sourceElementType
	res.destinationType = destinationElementType

	return res
}

// CreateEntryContext derives the context of a dictionary key or value.
func (c *ResolutionContext) CreateEntryContext(
	entryTypeMap *TypeMap, value reflect.Value, sourceType, destinationType reflect.Type, key any,
) *ResolutionContext {
	res := c.child(fmt.Sprintf("[%v]", key))
	res.typeMap = entryTypeMap
	res.sourceValue = value
	res.sourceType = sourceType
	res.destinationType = destinationType

	return res
}

// CreateValueContext keeps the linkage of c but swaps the source value,
// used when formatters hand their output to the next formatter.
func (c *ResolutionContext) CreateValueContext(value reflect.Value) *ResolutionContext {
	res := *c
	res.sourceValue = value

	if value.IsValid() {
		res.sourceType = value.Type()
	}

	return &res
}

// ContextTypeMap is the type map of the closest context that has one.
func (c *ResolutionContext) ContextTypeMap() *TypeMap {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if ctx.typeMap != nil {
			return ctx.typeMap
		}
	}

	return nil
}

// MemberPath renders the way from the root, e.g. Lines[2].Product.Name.
func (c *ResolutionContext) MemberPath() string {
	var segments []string
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if ctx.segment != "" {
			segments = append(segments, ctx.segment)
		}
	}

	var sb strings.Builder
	for i := len(segments) - 1; i >= 0; i-- {
		sb.WriteString(segments[i])
	}

	return strings.TrimPrefix(sb.String(), ".")
}

func (c *ResolutionContext) String() string {
	if path := c.MemberPath(); path != "" {
		return c.Pair().String() + " at " + path
	}

	return c.Pair().String()
}
