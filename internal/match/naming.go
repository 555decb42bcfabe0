package match

import (
	"strings"
	"unicode"
)

// NamingConvention splits member names into words and joins words back.
type NamingConvention interface {
	Split(name string) []string
	Join(words []string) string
}

// PascalCase splits "CustomerHTTPAddress" into Customer, HTTP, Address.
type PascalCase struct{}

func (PascalCase) Split(name string) []string {
	return tokenizeCamelCase(name)
}

func (PascalCase) Join(words []string) string {
	var b strings.Builder

	for _, w := range words {
		if w == "" {
			continue
		}

		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}

	return b.String()
}

// LowerUnderscore splits "customer_address" into customer, address.
type LowerUnderscore struct{}

func (LowerUnderscore) Split(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool { return r == '_' })
}

func (LowerUnderscore) Join(words []string) string {
	lowered := make([]string, 0, len(words))
	for _, w := range words {
		lowered = append(lowered, strings.ToLower(w))
	}

	return strings.Join(lowered, "_")
}

// NormalizeIdent normalizes an identifier for fuzzy matching:
// CamelCase is tokenized, case folded to lower and separators (_, -, spaces) dropped.
func NormalizeIdent(s string) string {
	return stripSeparators(strings.ToLower(strings.Join(tokenizeCamelCase(s), "")))
}

// NormalizeIdentWithSuffixStrip normalizes and strips one common suffix:
// timestamp, ids, utc, id, at. Short suffixes like "ts" are too aggressive.
func NormalizeIdentWithSuffixStrip(s string) string {
	normalized := NormalizeIdent(s)

	for _, suffix := range []string{"timestamp", "ids", "utc", "id", "at"} {
		if strings.HasSuffix(normalized, suffix) && len(normalized) > len(suffix) {
			return strings.TrimSuffix(normalized, suffix)
		}
	}

	return normalized
}

// TokenizeIdent splits an identifier into lowercase tokens.
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// Prefixes lists the ways words can be split into a leading member name and
// the remaining words, longest leading name first. It drives flattening:
// "CustomerAddressCity" is tried as Customer.AddressCity, then
// CustomerAddress.City.
func Prefixes(words []string, convention NamingConvention) [][2]string {
	var res [][2]string

	for i := len(words) - 1; i > 0; i-- {
		res = append(res, [2]string{
			convention.Join(words[:i]),
			convention.Join(words[i:]),
		})
	}

	return res
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
//   - "OrderID" -> ["Order", "ID"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "getHTTPResponse" -> ["get", "HTTP", "Response"]
func tokenizeCamelCase(s string) []string {
	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsToken splits on lower->Upper transitions and before the last capital of an acronym.
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]

	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if isSeparator(r) {
			return -1
		}

		return r
	}, s)
}
