// Package verify checks that entities written to the knowledge graph were
// actually persisted.
//
// The graph answers 200 to writes under any path but only persists some of
// them, so a successful sync does not prove an entity exists. Verification
// runs, in order:
//
//   - Pattern: the IRI path is one the graph persists
//   - HTML: {iri}.html answers 200 without the missing-triples marker
//   - JSON: {iri}.json answers 200 with a non-empty document
//   - GraphQL: the entity is in the index (optional, lags writes)
//
// # HTTP Endpoints
//
//   - GET /verify?iri=...&graphql=false
package verify
