// Package reuse resolves shared sub-entities to graph entities that already
// exist, so a brand or organization referenced by many products is stored
// once.
//
// Resolution walks four tiers and stops at the first hit:
//
//  1. the in-memory cache, keyed by the raw name
//  2. an existence check on the identifier the builder would generate
//  3. a name query against the graph
//  4. creation of a new entity
//
// Preload fills the cache with every known organization, person and brand
// before a run. A transport failure in tiers 2 or 3 is returned rather than
// treated as a miss.
package reuse
