// Package schema defines the typed schema.org records written to the knowledge graph.
//
// Each supported class has its own struct embedding Base, which carries the
// JSON-LD keywords (@context, @type, @id). Records are produced by the builder
// package and serialized with encoding/json, so the struct tags are the
// wire format.
//
// # Supported Types
//
//   - Product (with nested Offer, Brand and AggregateRating)
//   - Organization, Person, Brand
//   - WebPage, Article, BlogPosting (all represented by WebPage)
//
// ToDocument converts any Entity into its generic JSON-LD object, the form the
// validation package operates on.
package schema
