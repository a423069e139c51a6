package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDocument(t *testing.T) {
	p := &Product{
		Base:   Base{Context: Context, Type: TypeProduct, ID: "https://example.com/01/12345678901231"},
		GTIN14: "12345678901231",
		Name:   "Trail Shoe",
		Brand: &Brand{
			Base:       Base{Type: TypeBrand, ID: "https://example.com/brand/acme"},
			Name:       "Acme",
			Attributes: map[string]any{"slogan": "Go further"},
		},
		Offers:     &Offer{Base: Base{Type: TypeOffer}, Price: "19.99", PriceCurrency: "EUR"},
		Attributes: map[string]any{"color": "red", "name": "ignored"},
	}

	doc, err := ToDocument(p)
	require.NoError(t, err)

	assert.Equal(t, "https://schema.org", doc["@context"])
	assert.Equal(t, "Product", doc["@type"])
	assert.Equal(t, "red", doc["color"])
	assert.Equal(t, "Trail Shoe", doc["name"], "attributes never override typed fields")

	brand, ok := doc["brand"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Go further", brand["slogan"])
	assert.NotContains(t, brand, "@context")

	offer, ok := doc["offers"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "19.99", offer["price"])
	assert.NotContains(t, offer, "@id")
}

func TestProductAccessors(t *testing.T) {
	var p Product
	assert.Empty(t, p.Price())
	assert.Empty(t, p.Availability())
	assert.Empty(t, p.PrimaryImage())

	p.Offers = &Offer{Price: "5", Availability: "https://schema.org/InStock"}
	p.Image = []string{"a.jpg", "b.jpg"}
	assert.Equal(t, "5", p.Price())
	assert.Equal(t, "https://schema.org/InStock", p.Availability())
	assert.Equal(t, "a.jpg", p.PrimaryImage())
}

func TestType(t *testing.T) {
	tests := []struct {
		typ   Type
		known bool
		page  bool
	}{
		{TypeProduct, true, false},
		{TypeArticle, true, true},
		{TypeBlogPosting, true, true},
		{TypeAggregateRating, false, false},
		{Type("Event"), false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.known, tt.typ.Known())
			assert.Equal(t, tt.page, tt.typ.IsPage())
		})
	}
	assert.Equal(t, "http://schema.org/Brand", TypeBrand.IRI())
}

func TestMarshalWithoutAttributes(t *testing.T) {
	raw, err := json.Marshal(Person{Base: Base{Context: Context, Type: TypePerson, ID: "https://x/person/ada"}, Name: "Ada"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"@context":"https://schema.org","@type":"Person","@id":"https://x/person/ada","name":"Ada"}`, string(raw))
}

func TestDocument(t *testing.T) {
	tests := []struct {
		name     string
		doc      Document
		wantID   string
		wantType Type
	}{
		{"Single Type", Document{"@id": "https://example.com/a", "@type": "Place"}, "https://example.com/a", "Place"},
		{"Type List", Document{"@type": []any{"Product", "Thing"}}, "", TypeProduct},
		{"No Type", Document{"name": "x"}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantID, tt.doc.EntityID())
			assert.Equal(t, tt.wantType, tt.doc.EntityType())
		})
	}

	t.Run("Marshals As Given", func(t *testing.T) {
		raw, err := json.Marshal(Document{"@id": "https://example.com/a", "alternateName": "A"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"@id":"https://example.com/a","alternateName":"A"}`, string(raw))
	})
}
