package mapper

import "reflect"

// TypePair keys both the strategy cache and the type map registry.
// Two pairs are equal only when both reflect.Type identities match.
type TypePair struct {
	Source      reflect.Type
	Destination reflect.Type
}

func NewTypePair(source, destination reflect.Type) TypePair {
	return TypePair{Source: source, Destination: destination}
}

// PairOf returns the pair for the static types S and D.
func PairOf[S, D any]() TypePair {
	return TypePair{Source: reflect.TypeFor[S](), Destination: reflect.TypeFor[D]()}
}

func (p TypePair) String() string {
	return typeStr(p.Source) + " -> " + typeStr(p.Destination)
}
