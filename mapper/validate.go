package mapper

import (
	"fmt"
	"reflect"

	"object-mapper/internal/diagnostic"
	"object-mapper/internal/match"
)

const maxSuggestions = 3

// AssertConfigurationIsValid checks the given type maps, or all of them, and
// the type maps their members lead to. Every writable destination member
// must have a source or be ignored, and every nested pair must be mappable.
// Run it once after configuring, not per mapping call.
func (c *Configuration) AssertConfigurationIsValid(typeMaps ...*TypeMap) error {
	diags := c.Validate(typeMaps...)
	if diags.HasErrors() {
		return &ValidationError{Diagnostics: diags}
	}

	return nil
}

// Validate is AssertConfigurationIsValid returning the diagnostics themselves.
func (c *Configuration) Validate(typeMaps ...*TypeMap) diagnostic.Diagnostics {
	if len(typeMaps) == 0 {
		typeMaps = c.TypeMaps()
	}

	var (
		diags  diagnostic.Diagnostics
		dealer Dealer
	)

	for _, tm := range typeMaps {
		dealer.Needs(tm.Pair())
	}

	for pair, ok := dealer.NextNeeds(); ok; pair, ok = dealer.NextNeeds() {
		if tm := c.FindTypeMapFor(reflect.Value{}, pair.Source, pair.Destination); tm != nil {
			c.validateTypeMap(tm, &diags, &dealer)
		}
	}

	return diags
}

func (c *Configuration) validateTypeMap(tm *TypeMap, diags *diagnostic.Diagnostics, dealer *Dealer) {
	pairStr := tm.Pair().String()

	for _, included := range tm.IncludedPairs() {
		if c.FindTypeMapFor(reflect.Value{}, included.Source, included.Destination) == nil {
			diags.AddError(diagnostic.CodeMissingTypeMap,
				fmt.Sprintf("included pair %s has no type map", included), pairStr, "")

			continue
		}

		dealer.Needs(included)
	}

	if tm.CustomMapper() != nil {
		return
	}

	var sources []match.Member
	for _, member := range Members(tm.SourceType()) {
		sources = append(sources, match.Member{Name: member.Name(), Type: member.Type()})
	}

	for _, pm := range tm.GetPropertyMaps() {
		switch {
		case pm.IsIgnored():
			continue
		case !pm.IsMapped():
			target := match.Member{Name: pm.Name(), Type: pm.DestinationMember().Type()}
			suggestions := match.RankCandidates(target, sources).
				AboveThreshold(match.SuggestionThreshold).
				Names(maxSuggestions)

			diags.AddErrorWithSuggestions(diagnostic.CodeUnmappedMember,
				"destination member has no source member, resolver or Ignore", pairStr, pm.Name(), suggestions)
		case pm.HasCustomValueResolver():
			// the resolved type is only known at mapping time
			continue
		default:
			last, ok := pm.sourceResolvers[len(pm.sourceResolvers)-1].(memberResolver)
			if ok {
				c.validateMemberPair(last.accessor.Type(), pm.DestinationMember().Type(), pairStr, pm.Name(), diags, dealer)
			}
		}
	}
}

// validateMemberPair peels pointers and containers until it reaches a pair
// with a type map, which is queued, or one a strategy must handle.
func (c *Configuration) validateMemberPair(
	src, dst reflect.Type, pairStr, member string, diags *diagnostic.Diagnostics, dealer *Dealer,
) {
	for {
		if tm := c.FindTypeMapFor(reflect.Value{}, src, dst); tm != nil {
			dealer.Needs(tm.Pair())

			return
		}

		if src == anyType || src.AssignableTo(dst) {
			return
		}

		switch {
		case src.Kind() == reflect.Ptr:
			src = src.Elem()
		case dst.Kind() == reflect.Ptr:
			dst = dst.Elem()
		case isSequence(src) && (dst.Kind() == reflect.Slice || dst.Kind() == reflect.Array):
			src, dst = elemOf(src), dst.Elem()
		case src.Kind() == reflect.Map && dst.Kind() == reflect.Map:
			src, dst = src.Elem(), dst.Elem()
		default:
			if !c.canMap(src, dst) {
				diags.AddError(diagnostic.CodeMissingTypeMap,
					fmt.Sprintf("no type map or strategy for %s", TypePair{Source: src, Destination: dst}), pairStr, member)
			}

			return
		}
	}
}

// canMap probes the strategy chain for a pair without a type map.
func (c *Configuration) canMap(src, dst reflect.Type) bool {
	ctx := NewResolutionContext(nil, reflect.Value{}, reflect.Value{}, src, dst)

	for _, mapper := range c.Mappers() {
		if mapper.IsMatch(ctx) {
			return true
		}
	}

	return false
}
