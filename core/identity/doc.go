// Package identity derives deterministic identifiers for knowledge-graph entities.
//
// Identifiers must be stable across runs: re-syncing the same input has to
// address the same remote entity, otherwise every run would create duplicates.
//
// # Trade Codes
//
// Product identifiers are built from GTIN codes. NormalizeTradeCode accepts
// 8, 12, 13 and 14 digit codes (separators are ignored), left-pads them to 14
// digits and verifies the GS1 mod-10 check digit.
//
// # Digital Link
//
// BuildProductID composes a GS1 Digital Link style URI under the dataset base:
//
//	https://data.example.com/01/{gtin14}[/21/{serial}][/10/{lot}]
//
// # Slugs
//
// Non-product entities (organizations, people, brands, pages) are addressed by
// a slug of their natural key:
//
//	identity.BuildEntityID(base, "organization", "Acme Corp")
//	// => {base}/organization/acme-corp
//
// Slugify is lossy and idempotent. An empty key yields an empty slug, callers
// must reject it before building an identifier.
package identity
