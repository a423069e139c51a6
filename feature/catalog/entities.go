package catalog

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"kg-sync/core/identity"
	"kg-sync/core/kg"
	"kg-sync/core/reconcile"
	"kg-sync/core/schema"

	"go.uber.org/zap"
)

// ErrInvalidDocument is returned when a JSON-LD document cannot be written.
var ErrInvalidDocument = errors.New("invalid entity document")

// EntitiesRequest carries JSON-LD documents to create or upsert.
type EntitiesRequest struct {
	Documents []map[string]any `json:"documents"`
}

// WriteResult lists the identifiers written by a create or upsert call.
type WriteResult struct {
	Written []string `json:"written"`
}

// PatchResult is the outcome of a property patch.
type PatchResult struct {
	ID  string       `json:"id"`
	Ops []kg.PatchOp `json:"ops"`
}

// UpgradeRequest changes the type of an entity and sets extra properties.
type UpgradeRequest struct {
	IRI        string         `json:"iri"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// preserved lists the stored fields carried over by an upgrade.
var preserved = []string{"name", "description", "url", "image"}

// CreateEntities creates every document. It stops at the first failure and
// returns the identifiers created so far.
func (s *Service) CreateEntities(ctx context.Context, docs []map[string]any) (*WriteResult, error) {
	return s.write(ctx, docs, false)
}

// UpsertEntities creates or replaces every document by its @id.
func (s *Service) UpsertEntities(ctx context.Context, docs []map[string]any) (*WriteResult, error) {
	return s.write(ctx, docs, true)
}

func (s *Service) write(ctx context.Context, docs []map[string]any, upsert bool) (*WriteResult, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no documents", ErrInvalidDocument)
	}

	res := &WriteResult{Written: []string{}}
	for i, raw := range docs {
		doc := withContext(raw)
		if doc.EntityType() == "" {
			return res, fmt.Errorf("%w: document %d has no @type", ErrInvalidDocument, i)
		}

		var err error
		if upsert {
			if !identity.IsHTTPIRI(doc.EntityID()) {
				return res, fmt.Errorf("%w: document %d: %q", ErrInvalidID, i, doc.EntityID())
			}
			err = s.client.UpsertEntity(ctx, doc)
		} else {
			err = s.client.CreateEntity(ctx, doc)
		}
		if err != nil {
			return res, fmt.Errorf("failed to write document %d: %w", i, err)
		}
		res.Written = append(res.Written, doc.EntityID())
	}

	s.logger.Info("Wrote entities", zap.Bool("upsert", upsert), zap.Int("count", len(res.Written)))
	return res, nil
}

// PatchEntity replaces each property of doc on the entity named by its @id.
// A null property is removed. JSON-LD keywords are never patched.
func (s *Service) PatchEntity(ctx context.Context, doc map[string]any) (*PatchResult, error) {
	id, _ := doc["@id"].(string)
	if !identity.IsHTTPIRI(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	ops := PatchOps(doc)
	if len(ops) == 0 {
		return nil, fmt.Errorf("%w: no properties to patch", ErrInvalidDocument)
	}
	if err := s.client.PatchEntity(ctx, id, ops); err != nil {
		return nil, err
	}
	s.logger.Info("Patched entity", zap.String("id", id), zap.Int("changes", len(ops)))
	return &PatchResult{ID: id, Ops: ops}, nil
}

// PatchOps turns the properties of doc into patch operations, in key order.
func PatchOps(doc map[string]any) []kg.PatchOp {
	var ops []kg.PatchOp
	for _, k := range slices.Sorted(maps.Keys(doc)) {
		if strings.HasPrefix(k, "@") {
			continue
		}
		path := reconcile.PatchPathPrefix + k
		if doc[k] == nil {
			ops = append(ops, kg.PatchOp{Op: "remove", Path: path})
			continue
		}
		ops = append(ops, kg.PatchOp{Op: "replace", Path: path, Value: doc[k]})
	}
	return ops
}

// UpgradeEntity rewrites an entity with a new type and extra properties.
// Its stored name, description, url and image are kept unless req sets them.
// Without a new type the first stored type is kept.
func (s *Service) UpgradeEntity(ctx context.Context, req UpgradeRequest) (schema.Document, error) {
	if !identity.IsHTTPIRI(req.IRI) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, req.IRI)
	}

	existing, err := s.client.GetEntity(ctx, req.IRI)
	if err != nil {
		return nil, err
	}

	doc := schema.Document{"@context": schema.Context, "@id": req.IRI}
	switch {
	case req.Type != "":
		doc["@type"] = req.Type
	case len(existing.Types) > 0:
		doc["@type"] = localName(existing.Types[0])
	default:
		return nil, fmt.Errorf("%w: %s has no type and none was given", ErrInvalidDocument, req.IRI)
	}

	stored := map[string]string{
		"name":        existing.Name,
		"description": existing.Description,
		"url":         existing.URL,
		"image":       existing.Image,
	}
	for _, k := range preserved {
		if v := stored[k]; v != "" {
			doc[k] = v
		}
	}
	for k, v := range req.Properties {
		if strings.HasPrefix(k, "@") {
			continue
		}
		doc[k] = v
	}

	if err := s.client.UpsertEntity(ctx, doc); err != nil {
		return nil, err
	}
	s.logger.Info("Upgraded entity",
		zap.String("id", req.IRI),
		zap.String("type", string(doc.EntityType())),
		zap.Int("properties", len(req.Properties)),
	)
	return doc, nil
}

// withContext copies raw and adds the schema.org context when it has none.
func withContext(raw map[string]any) schema.Document {
	doc := make(schema.Document, len(raw)+1)
	maps.Copy(doc, raw)
	if _, ok := doc["@context"]; !ok {
		doc["@context"] = schema.Context
	}
	return doc
}

// localName strips a schema.org namespace from a type IRI.
func localName(typeIRI string) string {
	for _, ns := range []string{"http://schema.org/", "https://schema.org/"} {
		if rest, ok := strings.CutPrefix(typeIRI, ns); ok {
			return rest
		}
	}
	return typeIRI
}
