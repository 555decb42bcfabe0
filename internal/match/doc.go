// Package match provides name normalization, naming conventions, Levenshtein
// distance, reflect based type compatibility scoring and candidate ranking
// for member matching.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - PascalCase, LowerUnderscore: naming conventions used for flattening
//   - Levenshtein, Suggest: edit distance and "did you mean" lists
//   - ScoreTypeCompatibility: scores type compatibility using reflect
//   - RankCandidates: ranks potential member mappings
package match
