package kg

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"kg-sync/core/schema"
)

// Client defines the operations used against the knowledge-graph API.
type Client interface {
	// CreateEntity creates a new entity.
	CreateEntity(ctx context.Context, e schema.Entity) error
	// UpsertEntity creates or replaces an entity keyed by its identifier.
	UpsertEntity(ctx context.Context, e schema.Entity) error
	// BatchUpsert creates or replaces several entities in one request.
	BatchUpsert(ctx context.Context, entities []schema.Entity) error
	// PatchEntity applies JSON Patch operations to an entity.
	PatchEntity(ctx context.Context, id string, ops []PatchOp) error
	// DeleteEntity removes an entity.
	DeleteEntity(ctx context.Context, id string) error
	// Query runs a GraphQL query and returns its data member.
	Query(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error)
	// GetEntity fetches the comparable fields of an entity. It returns
	// ErrNotFound when the entity does not exist.
	GetEntity(ctx context.Context, iri string) (*RemoteEntity, error)
	// FindByName looks up an entity of the given type by exact name.
	FindByName(ctx context.Context, t schema.Type, name string) (string, bool, error)
	// ListByType lists up to limit entities of a type.
	ListByType(ctx context.Context, t schema.Type, limit int) ([]EntityRef, error)
	// ListTradeCodes returns the gtin14 of every product in the graph.
	ListTradeCodes(ctx context.Context) ([]string, error)
	// ImportSitemap imports every page listed in a sitemap.
	ImportSitemap(ctx context.Context, sitemapURL string) ([]ImportResult, error)
}

// PatchOp is a single JSON Patch operation.
type PatchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// EntityRef is an identifier and name pair returned by listing queries.
type EntityRef struct {
	IRI  string `json:"iri"`
	Name string `json:"name"`
}

// ImportResult is one line of a sitemap import response.
type ImportResult struct {
	URL    string `json:"url"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// NewClient creates a client for the configured API.
func NewClient(cfg Config) (Client, error) {
	if strings.TrimSpace(cfg.Key) == "" {
		return nil, ErrMissingCredentials
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "https://api.wordlift.io"
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}

	return &httpClient{
		baseURL: base,
		key:     cfg.Key,
		http:    &http.Client{},
	}, nil
}

type httpClient struct {
	baseURL string
	key     string
	http    *http.Client
}

type request struct {
	op          string
	method      string
	path        string
	query       url.Values
	contentType string
	body        any
}

func (c *httpClient) do(ctx context.Context, r request) ([]byte, error) {
	var body io.Reader
	if r.body != nil {
		raw, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s request: %w", r.op, err)
		}
		body = bytes.NewReader(raw)
	}

	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", r.op, err)
	}
	req.Header.Set("Authorization", "Key "+c.key)
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		ct := r.contentType
		if ct == "" {
			ct = "application/json"
		}
		req.Header.Set("Content-Type", ct)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Op: r.op, Err: errors.Join(ErrRemoteUnavailable, err)}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Op: r.op, Err: errors.Join(ErrRemoteUnavailable, err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(r.op, resp.StatusCode, payload)
	}
	return payload, nil
}

func (c *httpClient) CreateEntity(ctx context.Context, e schema.Entity) error {
	_, err := c.do(ctx, request{
		op:          "create entity",
		method:      http.MethodPost,
		path:        "/entities",
		contentType: "application/ld+json",
		body:        e,
	})
	return err
}

func (c *httpClient) UpsertEntity(ctx context.Context, e schema.Entity) error {
	if e.EntityID() == "" {
		return fmt.Errorf("cannot upsert %s without @id", e.EntityType())
	}
	_, err := c.do(ctx, request{
		op:          "upsert entity",
		method:      http.MethodPost,
		path:        "/dataset",
		query:       url.Values{"uri": {e.EntityID()}, "private": {"false"}},
		contentType: "application/ld+json",
		body:        e,
	})
	return err
}

type batchItem struct {
	URI     string `json:"uri"`
	Model   string `json:"model"`
	Private bool   `json:"private"`
}

func (c *httpClient) BatchUpsert(ctx context.Context, entities []schema.Entity) error {
	if len(entities) == 0 {
		return nil
	}
	items := make([]batchItem, 0, len(entities))
	for _, e := range entities {
		if e.EntityID() == "" {
			return fmt.Errorf("cannot batch %s without @id", e.EntityType())
		}
		model, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", e.EntityID(), err)
		}
		items = append(items, batchItem{URI: e.EntityID(), Model: string(model)})
	}

	_, err := c.do(ctx, request{
		op:     "batch upsert",
		method: http.MethodPost,
		path:   "/dataset/batch",
		body:   items,
	})
	return err
}

func (c *httpClient) PatchEntity(ctx context.Context, id string, ops []PatchOp) error {
	_, err := c.do(ctx, request{
		op:          "patch entity",
		method:      http.MethodPatch,
		path:        "/entities",
		query:       url.Values{"id": {id}},
		contentType: "application/json-patch+json",
		body:        ops,
	})
	return err
}

func (c *httpClient) DeleteEntity(ctx context.Context, id string) error {
	_, err := c.do(ctx, request{
		op:     "delete entity",
		method: http.MethodDelete,
		path:   "/dataset",
		query:  url.Values{"uri": {id}},
	})
	return err
}

type graphqlResponse struct {
	Data   json.RawMessage   `json:"data"`
	Errors []json.RawMessage `json:"errors"`
}

func (c *httpClient) Query(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	body := map[string]any{"query": query}
	if len(variables) > 0 {
		body["variables"] = variables
	}
	payload, err := c.do(ctx, request{
		op:     "graphql",
		method: http.MethodPost,
		path:   "/graphql",
		body:   body,
	})
	if err != nil {
		return nil, err
	}

	var resp graphqlResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode graphql response: %w", err)
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, string(e))
		}
		return nil, &APIError{Op: "graphql", Body: strings.Join(msgs, "; "), Err: fmt.Errorf("%w: %s", ErrRemoteRejected, strings.Join(msgs, "; "))}
	}
	return resp.Data, nil
}

func (c *httpClient) ImportSitemap(ctx context.Context, sitemapURL string) ([]ImportResult, error) {
	payload, err := c.do(ctx, request{
		op:     "sitemap import",
		method: http.MethodPost,
		path:   "/sitemap-imports",
		body:   map[string]string{"sitemap_url": sitemapURL},
	})
	if err != nil {
		return nil, err
	}

	// The response is NDJSON, one object per imported page.
	var results []ImportResult
	scanner := bufio.NewScanner(bytes.NewReader(payload))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var r ImportResult
		if err := json.Unmarshal(line, &r); err != nil {
			continue
		}
		results = append(results, r)
	}
	if err := scanner.Err(); err != nil {
		return results, fmt.Errorf("failed to read sitemap import response: %w", err)
	}
	return results, nil
}
