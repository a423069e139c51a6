package reuse

import (
	"context"
	"errors"
	"fmt"

	"kg-sync/core/builder"
	"kg-sync/core/identity"
	"kg-sync/core/kg"
	"kg-sync/core/schema"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// PreloadLimit is the number of entities fetched per kind by Preload.
const PreloadLimit = 1000

// Manager resolves shared sub-entities (organizations, people, brands) to
// existing graph entities before creating new ones.
//
// A Manager belongs to one sync run. Resolution of a given key is collapsed
// within the Manager, but two Managers resolving the same new key
// concurrently can both create it.
type Manager struct {
	client  kg.Client
	builder *builder.Builder
	cache   *Cache
	log     *zap.Logger
	group   singleflight.Group

	readOnly bool
}

// Option configures a Manager.
type Option func(*Manager)

// ReadOnly stops the manager from creating entities. A key the graph does not
// have resolves to its generated identifier, which is cached but never sent.
func ReadOnly() Option {
	return func(m *Manager) {
		m.readOnly = true
	}
}

// New creates a manager minting identifiers under baseURI.
func New(client kg.Client, baseURI string, log *zap.Logger, opts ...Option) *Manager {
	m := &Manager{
		client:  client,
		builder: builder.New(baseURI),
		cache:   NewCache(),
		log:     log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Len returns the number of cached entries of kind.
func (m *Manager) Len(kind Kind) int { return m.cache.Len(kind) }

// Clear empties the cache.
func (m *Manager) Clear() { m.cache.Clear() }

// Preload fetches every organization, person and brand by name so later
// lookups are served from the cache.
func (m *Manager) Preload(ctx context.Context) error {
	kinds := []struct {
		kind Kind
		typ  schema.Type
	}{
		{KindOrganization, schema.TypeOrganization},
		{KindPerson, schema.TypePerson},
		{KindBrand, schema.TypeBrand},
	}

	for _, k := range kinds {
		refs, err := m.client.ListByType(ctx, k.typ, PreloadLimit)
		if err != nil {
			return fmt.Errorf("failed to preload %s entities: %w", k.kind, err)
		}
		for _, ref := range refs {
			if ref.Name != "" && ref.IRI != "" {
				m.cache.Put(k.kind, ref.Name, ref.IRI)
			}
		}
		m.log.Info("Preloaded entity cache", zap.String("kind", string(k.kind)), zap.Int("count", len(refs)))
	}
	return nil
}

// GetOrCreateOrganization returns the identifier of the organization named
// in data, creating it when the graph does not have it.
func (m *Manager) GetOrCreateOrganization(ctx context.Context, data map[string]any) (string, error) {
	org, err := m.builder.Organization(data, "")
	if err != nil {
		return "", err
	}
	if org.Name == "" {
		return "", builder.ErrMissingName
	}
	return m.resolve(ctx, KindOrganization, schema.TypeOrganization, org.Name, org.ID, func() schema.Entity {
		return org
	})
}

// GetOrCreatePerson returns the identifier of the person named in data,
// creating it when the graph does not have it.
func (m *Manager) GetOrCreatePerson(ctx context.Context, data map[string]any) (string, error) {
	person, err := m.builder.Person(data)
	if err != nil {
		return "", err
	}
	return m.resolve(ctx, KindPerson, schema.TypePerson, person.Name, person.ID, func() schema.Entity {
		return person
	})
}

// GetOrCreateBrand resolves a brand name or object to a brand reference.
// It satisfies builder.BrandResolver.
func (m *Manager) GetOrCreateBrand(ctx context.Context, data any) (*schema.Brand, error) {
	parsed, err := m.builder.Brand(data)
	if err != nil {
		return nil, err
	}
	name := parsed.Name
	if name == "" {
		return nil, builder.ErrMissingName
	}
	if identity.Slugify(name) == "" {
		return nil, fmt.Errorf("brand %q: %w", name, identity.ErrEmptySlug)
	}

	candidate := identity.BuildEntityID(m.builder.BaseURI(), string(KindBrand), name)
	iri, err := m.resolve(ctx, KindBrand, schema.TypeBrand, name, candidate, func() schema.Entity {
		return &schema.Brand{
			Base: schema.Base{Context: schema.Context, Type: schema.TypeBrand, ID: candidate},
			Name: name,
			Logo: parsed.Logo,
			URL:  parsed.URL,
		}
	})
	if err != nil {
		return nil, err
	}
	return &schema.Brand{Base: schema.Base{Type: schema.TypeBrand, ID: iri}, Name: name}, nil
}

// resolve runs the lookup tiers for one natural key: cache, existence of the
// generated identifier, name query, and finally creation.
func (m *Manager) resolve(ctx context.Context, kind Kind, typ schema.Type, name, candidate string, create func() schema.Entity) (string, error) {
	if iri, ok := m.cache.Get(kind, name); ok {
		m.log.Debug("Entity cache hit", zap.String("kind", string(kind)), zap.String("name", name))
		return iri, nil
	}

	v, err, _ := m.group.Do(string(kind)+"|"+name, func() (any, error) {
		if iri, ok := m.cache.Get(kind, name); ok {
			return iri, nil
		}

		_, err := m.client.GetEntity(ctx, candidate)
		switch {
		case err == nil:
			m.log.Info("Reusing existing entity", zap.String("kind", string(kind)), zap.String("id", candidate))
			m.cache.Put(kind, name, candidate)
			return candidate, nil
		case !errors.Is(err, kg.ErrNotFound):
			return "", fmt.Errorf("failed to check %s %q: %w", kind, name, err)
		}

		iri, found, err := m.client.FindByName(ctx, typ, name)
		if err != nil {
			return "", fmt.Errorf("failed to look up %s %q by name: %w", kind, name, err)
		}
		if found {
			m.log.Info("Found existing entity by name", zap.String("kind", string(kind)), zap.String("id", iri))
			m.cache.Put(kind, name, iri)
			return iri, nil
		}

		entity := create()
		if m.readOnly {
			m.log.Info("Would create entity", zap.String("kind", string(kind)), zap.String("id", entity.EntityID()))
			m.cache.Put(kind, name, entity.EntityID())
			return entity.EntityID(), nil
		}
		if err := m.client.UpsertEntity(ctx, entity); err != nil {
			return "", fmt.Errorf("failed to create %s %q: %w", kind, name, err)
		}
		m.log.Info("Created entity", zap.String("kind", string(kind)), zap.String("id", entity.EntityID()))
		m.cache.Put(kind, name, entity.EntityID())
		return entity.EntityID(), nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
