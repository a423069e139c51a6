package loader

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(app fiber.Router) error {
	if f.err != nil {
		return f.err
	}
	f.loaded = true
	app.Get("/"+f.name, func(c *fiber.Ctx) error { return c.SendString(f.name) })
	return nil
}

func TestManager(t *testing.T) {
	on := &fakeFeature{name: "catalog", enabled: true}
	off := &fakeFeature{name: "verify", enabled: false}

	m := NewManager()
	m.Register(on)
	m.Register(off)
	assert.Len(t, m.Features(), 2)

	app := fiber.New()
	require.NoError(t, m.LoadAll(app))
	assert.True(t, on.loaded)
	assert.False(t, off.loaded)

	resp, err := app.Test(httptest.NewRequest("GET", "/catalog", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/verify", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestManager_LoadError(t *testing.T) {
	m := NewManager()
	m.Register(&fakeFeature{name: "broken", enabled: true, err: errors.New("boom")})

	err := m.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "failed to load feature broken")
}
