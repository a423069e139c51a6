package builder

import (
	"context"
	"errors"
	"testing"

	"kg-sync/core/identity"
	"kg-sync/core/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const base = "https://data.example.com/ds"

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) GetOrCreateBrand(ctx context.Context, data any) (*schema.Brand, error) {
	args := m.Called(ctx, data)
	if b, ok := args.Get(0).(*schema.Brand); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestProduct(t *testing.T) {
	b := New(base + "/")
	ctx := context.Background()

	t.Run("Full Record", func(t *testing.T) {
		p, err := b.Product(ctx, map[string]any{
			"gtin":         "4006381333931",
			"name":         "Pencil",
			"description":  "HB pencil",
			"sku":          "P-1",
			"brand":        "Stabilo",
			"image":        "https://example.com/p.jpg",
			"price":        2.5,
			"currency":     "EUR",
			"availability": "OutOfStock",
			"rating":       4.5,
			"review_count": 12,
			"color":        "yellow",
			"weight":       "",
		})
		require.NoError(t, err)

		assert.Equal(t, base+"/01/04006381333931", p.ID)
		assert.Equal(t, schema.Context, p.Context)
		assert.Equal(t, "04006381333931", p.GTIN14)
		assert.Equal(t, []string{"https://example.com/p.jpg"}, p.Image)
		require.NotNil(t, p.Brand)
		assert.Equal(t, base+"/brand/stabilo", p.Brand.ID)
		assert.Equal(t, "Stabilo", p.Brand.Name)
		require.NotNil(t, p.Offers)
		assert.Equal(t, "2.5", p.Offers.Price)
		assert.Equal(t, "EUR", p.Offers.PriceCurrency)
		assert.Equal(t, string(schema.OutOfStock), p.Offers.Availability)
		require.NotNil(t, p.AggregateRating)
		assert.Equal(t, "4.5", p.AggregateRating.RatingValue)
		assert.Equal(t, "12", p.AggregateRating.ReviewCount)
		assert.Equal(t, map[string]any{"color": "yellow"}, p.Attributes)
	})

	t.Run("Default Offer Values", func(t *testing.T) {
		p, err := b.Product(ctx, map[string]any{"gtin": "12345678901231", "price": "10"})
		require.NoError(t, err)
		assert.Equal(t, "USD", p.Offers.PriceCurrency)
		assert.Equal(t, string(schema.InStock), p.Offers.Availability)
	})

	t.Run("Explicit Offers", func(t *testing.T) {
		p, err := b.Product(ctx, map[string]any{
			"gtin":  "12345678901231",
			"price": "99",
			"offers": map[string]any{
				"price":         "10.00",
				"priceCurrency": "GBP",
				"availability":  "LimitedAvailability",
				"seller":        "Shop Ltd",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "10.00", p.Offers.Price)
		assert.Equal(t, "https://schema.org/LimitedAvailability", p.Offers.Availability)
		require.NotNil(t, p.Offers.Seller)
		assert.Equal(t, "Shop Ltd", p.Offers.Seller.Name)
		assert.Equal(t, schema.TypeOrganization, p.Offers.Seller.Type)
	})

	t.Run("Serial And Lot", func(t *testing.T) {
		p, err := b.Product(ctx, map[string]any{"gtin": "12345678901231", "serial": "S1", "lot": "L2"})
		require.NoError(t, err)
		assert.Equal(t, base+"/01/12345678901231/21/S1/10/L2", p.ID)
	})

	t.Run("Brand Object Passthrough", func(t *testing.T) {
		p, err := b.Product(ctx, map[string]any{
			"gtin":  "12345678901231",
			"brand": map[string]any{"name": "Acme", "logo": "https://acme.example/logo.png", "slogan": "Go"},
		})
		require.NoError(t, err)
		assert.Equal(t, base+"/brand/acme", p.Brand.ID)
		assert.Equal(t, schema.TypeBrand, p.Brand.Type)
		assert.Equal(t, "https://acme.example/logo.png", p.Brand.Logo)
		assert.Equal(t, map[string]any{"slogan": "Go"}, p.Brand.Attributes)
	})

	t.Run("Missing Gtin", func(t *testing.T) {
		_, err := b.Product(ctx, map[string]any{"name": "x"})
		assert.ErrorIs(t, err, ErrMissingGtin)
	})

	t.Run("Bad Checksum", func(t *testing.T) {
		_, err := b.Product(ctx, map[string]any{"gtin": "12345678901232"})
		assert.ErrorIs(t, err, identity.ErrInvalidChecksum)
	})
}

func TestProductWithResolver(t *testing.T) {
	resolver := new(mockResolver)
	b := New(base, WithBrandResolver(resolver))
	ctx := context.Background()

	nike := &schema.Brand{Base: schema.Base{Type: schema.TypeBrand, ID: "https://graph.example/brand/nike-inc"}, Name: "Nike"}
	resolver.On("GetOrCreateBrand", ctx, "Nike").Return(nike, nil).Once()

	p, err := b.Product(ctx, map[string]any{"gtin": "12345678901231", "brand": "Nike"})
	require.NoError(t, err)
	assert.Same(t, nike, p.Brand)

	resolver.On("GetOrCreateBrand", ctx, "Broken").Return(nil, errors.New("remote down")).Once()
	_, err = b.Product(ctx, map[string]any{"gtin": "12345678901231", "brand": "Broken"})
	assert.Error(t, err)

	resolver.AssertExpectations(t)
}

func TestOrganization(t *testing.T) {
	b := New(base)

	org, err := b.Organization(map[string]any{
		"name":      "Acme Corp",
		"url":       "https://acme.example",
		"telephone": "+1 555",
		"address":   map[string]any{"addressLocality": "Springfield"},
		"founder":   "ignored",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, base+"/organization/acme-corp", org.ID)
	assert.Equal(t, "Springfield", org.Address.AddressLocality)

	keyed, err := b.Organization(map[string]any{"name": "Acme Corp"}, "acme-holdings")
	require.NoError(t, err)
	assert.Equal(t, base+"/organization/acme-holdings", keyed.ID)

	_, err = b.Organization(map[string]any{}, "")
	assert.ErrorIs(t, err, ErrMissingName)

	_, err = b.Organization(map[string]any{"name": "!!!"}, "")
	assert.ErrorIs(t, err, identity.ErrEmptySlug)
}

func TestPerson(t *testing.T) {
	p, err := New(base).Person(map[string]any{"name": "Ada Lovelace", "jobTitle": "Analyst"})
	require.NoError(t, err)
	assert.Equal(t, base+"/person/ada-lovelace", p.ID)
	assert.Equal(t, "Analyst", p.JobTitle)

	_, err = New(base).Person(map[string]any{})
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestWebPage(t *testing.T) {
	b := New(base)

	tests := []struct {
		name   string
		data   map[string]any
		wantID string
	}{
		{"Slug Wins", map[string]any{"url": "https://ex.com/a", "slug": "Custom Slug", "name": "Name"}, base + "/webpage/custom-slug"},
		{"Name", map[string]any{"url": "https://ex.com/a", "name": "About Us"}, base + "/webpage/about-us"},
		{"Headline", map[string]any{"url": "https://ex.com/a", "headline": "Big News"}, base + "/webpage/big-news"},
		{"Path Segment", map[string]any{"url": "https://ex.com/blog/post-one.html"}, base + "/webpage/post-one"},
		{"Trailing Slash", map[string]any{"url": "https://ex.com/blog/post-two/"}, base + "/webpage/post-two"},
		{"Homepage", map[string]any{"url": "https://ex.com/"}, base + "/webpage/homepage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := b.WebPage(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, page.ID)
			assert.Equal(t, schema.TypeWebPage, page.Type)
		})
	}

	t.Run("Article With Author", func(t *testing.T) {
		page, err := b.WebPage(map[string]any{"url": "https://ex.com/x", "@type": "Article", "name": "X", "author": "Jane"})
		require.NoError(t, err)
		assert.Equal(t, schema.TypeArticle, page.Type)
		assert.Equal(t, "Jane", page.Author.Name)
		assert.Equal(t, schema.TypePerson, page.Author.Type)
	})

	t.Run("Missing URL", func(t *testing.T) {
		_, err := b.WebPage(map[string]any{"name": "x"})
		assert.ErrorIs(t, err, ErrMissingURL)
	})
}

func TestNormalizeAvailability(t *testing.T) {
	tests := map[string]schema.Availability{
		"InStock":                    schema.InStock,
		"in_stock":                   schema.InStock,
		"Out of stock":               schema.OutOfStock,
		"pre-order":                  schema.PreOrder,
		"Discontinued":               schema.Discontinued,
		"https://schema.org/SoldOut": "https://schema.org/SoldOut",
		"BackOrder":                  "https://schema.org/BackOrder",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, NormalizeAvailability(in))
		})
	}
}
