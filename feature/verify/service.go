package verify

import (
	"context"
	"net/http"

	"kg-sync/core/kg"
	"kg-sync/feature/verify/checks"

	"go.uber.org/zap"
)

// Report is the combined verification of one entity.
type Report struct {
	IRI             string           `json:"iri"`
	ValidPattern    bool             `json:"valid_pattern"`
	Dereferenceable bool             `json:"dereferenceable"`
	Indexed         bool             `json:"graphql_indexed"`
	Checks          []checks.Result  `json:"checks"`
	Entity          *kg.RemoteEntity `json:"entity,omitempty"`
}

// Service verifies that written entities were actually persisted.
type Service struct {
	client kg.Client
	http   *http.Client
	logger *zap.Logger
}

// NewService creates a verify service. httpClient is used for the
// dereference checks; nil means http.DefaultClient.
func NewService(client kg.Client, httpClient *http.Client, logger *zap.Logger) *Service {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Service{
		client: client,
		http:   httpClient,
		logger: logger,
	}
}

// Verify runs the pattern and dereference checks, then the GraphQL check
// when withGraph is set and the entity dereferences.
func (s *Service) Verify(ctx context.Context, iri string, withGraph bool) Report {
	r := Report{IRI: iri}

	pattern := checks.Pattern(iri)
	r.ValidPattern = pattern.Passed
	r.Checks = append(r.Checks, pattern)
	if !pattern.Passed {
		s.logger.Warn("IRI may not be persisted", zap.String("iri", iri), zap.String("reason", pattern.Message))
	}

	html := checks.HTML(ctx, s.http, iri)
	r.Checks = append(r.Checks, html)
	if html.Passed {
		doc := checks.JSON(ctx, s.http, iri)
		r.Checks = append(r.Checks, doc)
		r.Dereferenceable = doc.Passed
	}
	if !r.Dereferenceable {
		s.logger.Warn("Entity not persisted", zap.String("iri", iri))
		return r
	}

	if withGraph && s.client != nil {
		graph, entity := checks.Graph(ctx, s.client, iri)
		r.Checks = append(r.Checks, graph)
		r.Indexed = graph.Passed
		r.Entity = entity
	}
	return r
}
