package verify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"kg-sync/core/kg"
	"kg-sync/core/kg/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// graphServer serves the .html and .json views of one persisted entity under
// /shop/brand/nike and an unpersisted one under /shop/brand/ghost.
func graphServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/shop/brand/nike.html":
			_, _ = w.Write([]byte("<h1>Nike</h1>"))
		case "/shop/brand/nike.json":
			_, _ = w.Write([]byte(`{"@id":"nike"}`))
		case "/shop/brand/ghost.html":
			_, _ = w.Write([]byte("No local triples"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client, string) {
	base := graphServer(t)
	client := new(mocks.Client)
	app := fiber.New()
	require.NoError(t, NewFeature(client, nil, zap.NewNop()).Load(app))
	return app, client, base
}

func get(t *testing.T, app *fiber.App, iri string, extra string) (*http.Response, Report) {
	t.Helper()
	target := "/verify?iri=" + url.QueryEscape(iri) + extra
	resp, err := app.Test(httptest.NewRequest("GET", target, nil), -1)
	require.NoError(t, err)
	var r Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&r))
	return resp, r
}

func TestHandleVerify(t *testing.T) {
	t.Run("Persisted", func(t *testing.T) {
		app, client, base := setupTestApp(t)
		iri := base + "/shop/brand/nike"
		client.On("GetEntity", mock.Anything, iri).Return(&kg.RemoteEntity{IRI: iri, Name: "Nike"}, nil)

		resp, r := get(t, app, iri, "")
		assert.Equal(t, 200, resp.StatusCode)
		assert.True(t, r.ValidPattern)
		assert.True(t, r.Dereferenceable)
		assert.True(t, r.Indexed)
		assert.Equal(t, "Nike", r.Entity.Name)
		assert.Len(t, r.Checks, 4)
	})

	t.Run("SkipGraph", func(t *testing.T) {
		app, client, base := setupTestApp(t)

		resp, r := get(t, app, base+"/shop/brand/nike", "&graphql=false")
		assert.Equal(t, 200, resp.StatusCode)
		assert.False(t, r.Indexed)
		client.AssertNotCalled(t, "GetEntity", mock.Anything, mock.Anything)
	})

	t.Run("NotPersisted", func(t *testing.T) {
		app, client, base := setupTestApp(t)

		resp, r := get(t, app, base+"/shop/brand/ghost", "")
		assert.Equal(t, 404, resp.StatusCode)
		assert.False(t, r.Dereferenceable)
		require.Len(t, r.Checks, 2)
		assert.Contains(t, r.Checks[1].Message, "no local triples")
		client.AssertNotCalled(t, "GetEntity", mock.Anything, mock.Anything)
	})

	t.Run("MissingIRI", func(t *testing.T) {
		app, _, _ := setupTestApp(t)
		resp, err := app.Test(httptest.NewRequest("GET", "/verify", nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, strings.Contains(body["error"], "iri"))
	})
}

func TestLoader(t *testing.T) {
	feature := NewFeature(new(mocks.Client), nil, zap.NewNop())

	assert.Equal(t, "verify", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NotNil(t, feature.Service())
	assert.NoError(t, feature.Load(fiber.New()))
}
