// Package catalog exposes the product sync over HTTP.
//
// Routes:
//
//	POST   /catalog/sync                 build, validate and push records
//	POST   /catalog/validate             validate JSON-LD documents
//	GET    /catalog/ids/product/:code    mint a product identifier
//	DELETE /catalog/entities?id=         delete an entity
//
// Every sync request gets its own run ID and orchestrator, so reuse caches
// never outlive a request. With report set and a report store configured,
// the run summary is uploaded as {prefix}{run-id}.json and .txt.
package catalog
