// Package validation performs structural checks on JSON-LD entities before upload.
//
// This is not a SHACL engine. Each entity type has a small rule set:
//
//   - required fields (missing -> error)
//   - recommended fields (missing -> warning, or error in strict mode)
//   - value constraints (predicate per field, failing -> error)
//
// Unknown types validate with a warning so new classes can flow through
// without a rule set. Products additionally validate their nested offer and
// brand, and must be addressed by a Digital Link identifier.
//
// # Batch Reports
//
// ValidateBatch collects per-entity results; Report renders them as a stable
// text layout suitable for CLI output and golden tests.
package validation
