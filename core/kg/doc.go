// Package kg is the transport layer for the remote knowledge-graph API.
//
// It wraps the REST endpoints (dataset upsert, batch upsert, entity patch and
// delete, sitemap import) and the GraphQL endpoint used for reads. All calls
// are synchronous request/response with no retry; failures are reported as
// *APIError values wrapping one of the sentinel errors:
//
//   - ErrRemoteUnavailable: transport failure or 5xx
//   - ErrRemoteRejected: 4xx or a GraphQL "errors" member
//   - ErrNotFound: GetEntity found no entity
//
// # Authentication
//
// Every request carries "Authorization: Key <api key>". NewClient refuses to
// build a client without a key.
//
// # Testing
//
// The mocks subpackage provides a testify mock of Client for consumers.
package kg
