package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"kg-sync/core/kg"
	"kg-sync/core/kg/mocks"
	"kg-sync/core/reconcile"
	"kg-sync/core/schema"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(client *mocks.Client) *Service {
	return NewService(client, base, reconcile.Options{}, nil, nil, zap.NewNop())
}

func hasID(id string) any {
	return mock.MatchedBy(func(d schema.Document) bool { return d.EntityID() == id })
}

func TestCreateEntities(t *testing.T) {
	ctx := context.Background()

	t.Run("AddsContext", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("CreateEntity", mock.Anything, mock.MatchedBy(func(d schema.Document) bool {
			return d["@context"] == schema.Context && d.EntityType() == "Place"
		})).Return(nil).Once()

		res, err := newTestService(client).CreateEntities(ctx, []map[string]any{
			{"@type": "Place", "@id": base + "/place/rome", "name": "Rome"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{base + "/place/rome"}, res.Written)
		client.AssertExpectations(t)
	})

	t.Run("StopsAtFirstFailure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("CreateEntity", mock.Anything, hasID(base+"/a")).Return(nil)
		client.On("CreateEntity", mock.Anything, hasID(base+"/b")).Return(&kg.APIError{Op: "create entity", StatusCode: 400, Err: kg.ErrRemoteRejected})

		res, err := newTestService(client).CreateEntities(ctx, []map[string]any{
			{"@type": "Thing", "@id": base + "/a"},
			{"@type": "Thing", "@id": base + "/b"},
			{"@type": "Thing", "@id": base + "/c"},
		})
		require.ErrorIs(t, err, kg.ErrRemoteRejected)
		assert.Equal(t, []string{base + "/a"}, res.Written)
		client.AssertNumberOfCalls(t, "CreateEntity", 2)
	})

	t.Run("MissingType", func(t *testing.T) {
		client := new(mocks.Client)
		_, err := newTestService(client).CreateEntities(ctx, []map[string]any{{"name": "x"}})
		require.ErrorIs(t, err, ErrInvalidDocument)
		client.AssertNotCalled(t, "CreateEntity", mock.Anything, mock.Anything)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := newTestService(new(mocks.Client)).CreateEntities(ctx, nil)
		require.ErrorIs(t, err, ErrInvalidDocument)
	})
}

func TestUpsertEntities(t *testing.T) {
	ctx := context.Background()

	t.Run("Upserts", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("UpsertEntity", mock.Anything, hasID(base+"/brand/acme")).Return(nil).Once()

		res, err := newTestService(client).UpsertEntities(ctx, []map[string]any{
			{"@context": "https://schema.org", "@type": "Brand", "@id": base + "/brand/acme", "name": "Acme"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{base + "/brand/acme"}, res.Written)
		client.AssertExpectations(t)
	})

	t.Run("RequiresIRI", func(t *testing.T) {
		client := new(mocks.Client)
		_, err := newTestService(client).UpsertEntities(ctx, []map[string]any{{"@type": "Brand", "name": "Acme"}})
		require.ErrorIs(t, err, ErrInvalidID)
		client.AssertNotCalled(t, "UpsertEntity", mock.Anything, mock.Anything)
	})
}

func TestPatchOps(t *testing.T) {
	ops := PatchOps(map[string]any{
		"@id":           base + "/a",
		"@type":         "Thing",
		"name":          "New",
		"alternateName": nil,
	})
	assert.Equal(t, []kg.PatchOp{
		{Op: "remove", Path: "/https://schema.org/alternateName"},
		{Op: "replace", Path: "/https://schema.org/name", Value: "New"},
	}, ops)
}

func TestPatchEntity(t *testing.T) {
	ctx := context.Background()
	id := base + "/01/" + codeX

	t.Run("Patches", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("PatchEntity", mock.Anything, id, []kg.PatchOp{
			{Op: "replace", Path: "/https://schema.org/sku", Value: "W-2"},
		}).Return(nil).Once()

		res, err := newTestService(client).PatchEntity(ctx, map[string]any{"@id": id, "sku": "W-2"})
		require.NoError(t, err)
		assert.Equal(t, id, res.ID)
		assert.Len(t, res.Ops, 1)
		client.AssertExpectations(t)
	})

	t.Run("NothingToPatch", func(t *testing.T) {
		client := new(mocks.Client)
		_, err := newTestService(client).PatchEntity(ctx, map[string]any{"@id": id, "@type": "Product"})
		require.ErrorIs(t, err, ErrInvalidDocument)
		client.AssertNotCalled(t, "PatchEntity", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InvalidID", func(t *testing.T) {
		_, err := newTestService(new(mocks.Client)).PatchEntity(ctx, map[string]any{"name": "x"})
		require.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestUpgradeEntity(t *testing.T) {
	ctx := context.Background()
	iri := base + "/place/colosseum"
	stored := &kg.RemoteEntity{
		IRI:         iri,
		Types:       []string{"http://schema.org/Thing"},
		Name:        "Colosseum",
		Description: "Amphitheatre",
		URL:         "https://example.com/colosseum",
		Image:       "https://example.com/colosseum.jpg",
		SKU:         "ignored",
	}

	t.Run("NewTypeKeepsFields", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetEntity", mock.Anything, iri).Return(stored, nil)
		client.On("UpsertEntity", mock.Anything, mock.Anything).Return(nil).Once()

		doc, err := newTestService(client).UpgradeEntity(ctx, UpgradeRequest{
			IRI:        iri,
			Type:       "TouristAttraction",
			Properties: map[string]any{"alternateName": "Flavian Amphitheatre", "name": "The Colosseum", "@id": "https://evil.example"},
		})
		require.NoError(t, err)
		assert.Equal(t, schema.Document{
			"@context":      schema.Context,
			"@id":           iri,
			"@type":         "TouristAttraction",
			"name":          "The Colosseum",
			"description":   "Amphitheatre",
			"url":           "https://example.com/colosseum",
			"image":         "https://example.com/colosseum.jpg",
			"alternateName": "Flavian Amphitheatre",
		}, doc)
		client.AssertCalled(t, "UpsertEntity", mock.Anything, doc)
	})

	t.Run("KeepsStoredType", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetEntity", mock.Anything, iri).Return(stored, nil)
		client.On("UpsertEntity", mock.Anything, mock.Anything).Return(nil)

		doc, err := newTestService(client).UpgradeEntity(ctx, UpgradeRequest{IRI: iri, Properties: map[string]any{"sameAs": "https://www.wikidata.org/wiki/Q10285"}})
		require.NoError(t, err)
		assert.Equal(t, schema.Type("Thing"), doc.EntityType())
	})

	t.Run("NotFound", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetEntity", mock.Anything, iri).Return(nil, kg.ErrNotFound)

		_, err := newTestService(client).UpgradeEntity(ctx, UpgradeRequest{IRI: iri, Type: "Place"})
		require.ErrorIs(t, err, kg.ErrNotFound)
		client.AssertNotCalled(t, "UpsertEntity", mock.Anything, mock.Anything)
	})

	t.Run("NoTypeAnywhere", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetEntity", mock.Anything, iri).Return(&kg.RemoteEntity{IRI: iri, Name: "x"}, nil)

		_, err := newTestService(client).UpgradeEntity(ctx, UpgradeRequest{IRI: iri})
		require.ErrorIs(t, err, ErrInvalidDocument)
	})
}

func TestHandleEntityWrites(t *testing.T) {
	id := base + "/brand/acme"
	brand := map[string]any{"@type": "Brand", "@id": id, "name": "Acme"}

	t.Run("Create", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("CreateEntity", mock.Anything, hasID(id)).Return(nil)
		app := setupTestApp(t, client, reconcile.Options{})

		resp := do(t, app, "POST", "/catalog/entities", EntitiesRequest{Documents: []map[string]any{brand}})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		var res WriteResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		assert.Equal(t, []string{id}, res.Written)
	})

	t.Run("UpsertRejected", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("UpsertEntity", mock.Anything, hasID(id)).Return(&kg.APIError{Op: "upsert entity", StatusCode: 422, Err: kg.ErrRemoteRejected})
		app := setupTestApp(t, client, reconcile.Options{})

		resp := do(t, app, "PUT", "/catalog/entities", EntitiesRequest{Documents: []map[string]any{brand}})
		assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	})

	t.Run("UpsertInvalidID", func(t *testing.T) {
		app := setupTestApp(t, new(mocks.Client), reconcile.Options{})
		resp := do(t, app, "PUT", "/catalog/entities", EntitiesRequest{Documents: []map[string]any{{"@type": "Brand"}}})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Patch", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("PatchEntity", mock.Anything, id, mock.Anything).Return(nil)
		app := setupTestApp(t, client, reconcile.Options{})

		resp := do(t, app, "PATCH", "/catalog/entities", map[string]any{"@id": id, "logo": "https://example.com/acme.png"})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var res PatchResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		assert.Equal(t, []kg.PatchOp{{Op: "replace", Path: "/https://schema.org/logo", Value: "https://example.com/acme.png"}}, res.Ops)
	})

	t.Run("UpgradeNotFound", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetEntity", mock.Anything, id).Return(nil, &kg.APIError{Op: "get entity", StatusCode: 404, Err: kg.ErrNotFound})
		app := setupTestApp(t, client, reconcile.Options{})

		resp := do(t, app, "POST", "/catalog/entities/upgrade", UpgradeRequest{IRI: id, Type: "Organization"})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("Upgrade", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetEntity", mock.Anything, id).Return(&kg.RemoteEntity{IRI: id, Types: []string{"http://schema.org/Brand"}, Name: "Acme"}, nil)
		client.On("UpsertEntity", mock.Anything, mock.Anything).Return(nil)
		app := setupTestApp(t, client, reconcile.Options{})

		resp := do(t, app, "POST", "/catalog/entities/upgrade", UpgradeRequest{IRI: id, Type: "Organization"})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var doc map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
		assert.Equal(t, "Organization", doc["@type"])
		assert.Equal(t, "Acme", doc["name"])
	})
}
