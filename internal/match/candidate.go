package match

import (
	"reflect"
	"sort"
)

// Member is a named, typed member of a struct or accessor set.
type Member struct {
	Name string
	Type reflect.Type
}

// Candidate represents a potential mapping from a source member to a target member.
type Candidate struct {
	Source Member
	Target Member

	NameScore     float64 // Normalized Levenshtein similarity (0-1)
	TypeCompat    TypeCompatibilityResult
	CombinedScore float64 // higher is better
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates finds and ranks potential source member matches for a target member.
// Returns candidates sorted by combined score (descending).
func RankCandidates(target Member, sources []Member) CandidateList {
	candidates := make(CandidateList, 0, len(sources))

	for _, source := range sources {
		nameScore := max(
			NormalizedLevenshteinScore(source.Name, target.Name),
			NormalizedLevenshteinScoreWithSuffixStrip(source.Name, target.Name),
		)
		typeCompat := ScorePointerCompatibility(source.Type, target.Type)

		candidates = append(candidates, Candidate{
			Source:        source,
			Target:        target,
			NameScore:     nameScore,
			TypeCompat:    typeCompat,
			CombinedScore: calculateCombinedScore(nameScore, typeCompat.Compatibility),
		})
	}

	sort.Sort(candidates)

	return candidates
}

// calculateCombinedScore weighs name similarity at 60% and type compatibility at 40%.
func calculateCombinedScore(nameScore float64, typeCompat TypeCompatibility) float64 {
	const (
		nameWeight = 0.6
		typeWeight = 0.4
	)

	var typeScore float64
	switch typeCompat {
	case TypeIdentical:
		typeScore = 1.0
	case TypeAssignable:
		typeScore = 0.9
	case TypeConvertible:
		typeScore = 0.7
	case TypeNeedsTransform:
		typeScore = 0.4
	case TypeIncompatible:
		typeScore = 0.0
	}

	return nameScore*nameWeight + typeScore*typeWeight
}

func (c CandidateList) Len() int      { return len(c) }
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less sorts by combined score descending, then by source member name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].CombinedScore != c[j].CombinedScore {
		return c[i].CombinedScore > c[j].CombinedScore
	}

	return c[i].Source.Name < c[j].Source.Name
}

// AboveThreshold returns candidates with combined score above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.CombinedScore >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// Names lists the source member names of the first n candidates.
func (c CandidateList) Names(n int) []string {
	names := make([]string, 0, min(n, len(c)))
	for i := 0; i < len(c) && i < n; i++ {
		names = append(names, c[i].Source.Name)
	}

	return names
}

// SuggestionThreshold is the combined score a candidate needs to be offered as "did you mean".
const SuggestionThreshold = 0.5
