// Package diagnostic provides structured errors, warnings and infos
// produced while validating mapper configurations and mapping files.
//
// Key capabilities:
//   - Unmapped destination member reports with "did you mean" suggestions
//   - Missing type map reports for nested member pairs
//   - Unknown types, profiles, formatters and resolvers in mapping files
package diagnostic
