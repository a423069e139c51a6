package mocks

import (
	"context"
	"encoding/json"

	"kg-sync/core/kg"
	"kg-sync/core/schema"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of kg.Client
type Client struct {
	mock.Mock
}

func (m *Client) CreateEntity(ctx context.Context, e schema.Entity) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *Client) UpsertEntity(ctx context.Context, e schema.Entity) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *Client) BatchUpsert(ctx context.Context, entities []schema.Entity) error {
	args := m.Called(ctx, entities)
	return args.Error(0)
}

func (m *Client) PatchEntity(ctx context.Context, id string, ops []kg.PatchOp) error {
	args := m.Called(ctx, id, ops)
	return args.Error(0)
}

func (m *Client) DeleteEntity(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Client) Query(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	args := m.Called(ctx, query, variables)
	if raw, ok := args.Get(0).(json.RawMessage); ok {
		return raw, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetEntity(ctx context.Context, iri string) (*kg.RemoteEntity, error) {
	args := m.Called(ctx, iri)
	if e, ok := args.Get(0).(*kg.RemoteEntity); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) FindByName(ctx context.Context, t schema.Type, name string) (string, bool, error) {
	args := m.Called(ctx, t, name)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *Client) ListByType(ctx context.Context, t schema.Type, limit int) ([]kg.EntityRef, error) {
	args := m.Called(ctx, t, limit)
	if refs, ok := args.Get(0).([]kg.EntityRef); ok {
		return refs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ListTradeCodes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if codes, ok := args.Get(0).([]string); ok {
		return codes, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ImportSitemap(ctx context.Context, sitemapURL string) ([]kg.ImportResult, error) {
	args := m.Called(ctx, sitemapURL)
	if results, ok := args.Get(0).([]kg.ImportResult); ok {
		return results, args.Error(1)
	}
	return nil, args.Error(1)
}
