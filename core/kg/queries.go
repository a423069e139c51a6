package kg

import (
	"context"
	"encoding/json"
	"fmt"

	"kg-sync/core/schema"
)

// maxTradeCodes bounds the product snapshot query.
const maxTradeCodes = 10000

const entityQuery = `query($url: String!) {
  entity(url: $url) {
    iri
    types: refs(name: "rdf:type")
    name: string(name: "schema:name")
    description: string(name: "schema:description")
    url: string(name: "schema:url")
    sku: string(name: "schema:sku")
    image: string(name: "schema:image")
    price: string(name: "schema:price")
    availability: string(name: "schema:availability")
  }
}`

const findByNameQuery = `query($type: String!, $name: String!) {
  entities(
    query: {
      typeConstraint: { in: [$type] }
      nameConstraint: { in: [$name] }
    }
    rows: 1
  ) {
    iri
    name: string(name: "schema:name")
  }
}`

const listByTypeQuery = `query {
  entities(
    query: {
      typeConstraint: { in: [%q] }
    }
    rows: %d
  ) {
    iri
    name: string(name: "schema:name")
  }
}`

const tradeCodesQuery = `query {
  products(rows: %d) {
    gtin: string(name: "schema:gtin14")
  }
}`

// RemoteEntity is the stored state of an entity, limited to the fields the
// incremental sync compares.
type RemoteEntity struct {
	IRI          string   `json:"iri"`
	Types        []string `json:"types"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	URL          string   `json:"url"`
	SKU          string   `json:"sku"`
	Image        string   `json:"image"`
	Price        string   `json:"price"`
	Availability string   `json:"availability"`
}

func (c *httpClient) GetEntity(ctx context.Context, iri string) (*RemoteEntity, error) {
	data, err := c.Query(ctx, entityQuery, map[string]any{"url": iri})
	if err != nil {
		return nil, err
	}
	var resp struct {
		Entity *RemoteEntity `json:"entity"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode entity %s: %w", iri, err)
	}
	if resp.Entity == nil || resp.Entity.IRI == "" {
		return nil, fmt.Errorf("%s: %w", iri, ErrNotFound)
	}
	return resp.Entity, nil
}

func (c *httpClient) FindByName(ctx context.Context, t schema.Type, name string) (string, bool, error) {
	data, err := c.Query(ctx, findByNameQuery, map[string]any{"type": t.IRI(), "name": name})
	if err != nil {
		return "", false, err
	}
	var resp struct {
		Entities []EntityRef `json:"entities"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", false, fmt.Errorf("failed to decode %s lookup: %w", t, err)
	}
	if len(resp.Entities) == 0 || resp.Entities[0].IRI == "" {
		return "", false, nil
	}
	return resp.Entities[0].IRI, true, nil
}

func (c *httpClient) ListByType(ctx context.Context, t schema.Type, limit int) ([]EntityRef, error) {
	data, err := c.Query(ctx, fmt.Sprintf(listByTypeQuery, t.IRI(), limit), nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Entities []EntityRef `json:"entities"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode %s listing: %w", t, err)
	}
	return resp.Entities, nil
}

func (c *httpClient) ListTradeCodes(ctx context.Context) ([]string, error) {
	data, err := c.Query(ctx, fmt.Sprintf(tradeCodesQuery, maxTradeCodes), nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Products []struct {
			GTIN *string `json:"gtin"`
		} `json:"products"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode product listing: %w", err)
	}
	codes := make([]string, 0, len(resp.Products))
	for _, p := range resp.Products {
		if p.GTIN != nil && *p.GTIN != "" {
			codes = append(codes, *p.GTIN)
		}
	}
	return codes, nil
}
