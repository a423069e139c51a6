// Package builder turns loosely structured input records into typed schema entities.
//
// Input records are plain maps decoded from JSON, CSV rows or database rows.
// The builder is the boundary where they are checked: a record without its
// natural key (gtin, name or url) is rejected here and never reaches the
// sync pipeline as a free-form map.
//
// # Identifiers
//
// Products are addressed by their Digital Link identifier, every other type
// by a slug of its natural key (see package identity).
//
// # Brands
//
// Without a resolver, brands are built inline with a generated identifier.
// With WithBrandResolver, brand references are handed to the resolver (the
// reuse manager) so existing graph brands are referenced instead of
// duplicated.
//
// # Scraped Records
//
// FromScraped accepts records whose fields use common alternative names
// (title, ean, product_price, stock_status, ...). The first present synonym
// for each canonical field wins.
package builder
