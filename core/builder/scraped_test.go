package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	t.Run("First Synonym Wins", func(t *testing.T) {
		data, err := Canonicalize(map[string]any{
			"ean":          "4006381333931",
			"upc":          "036000291452",
			"title":        "Pencil",
			"product_name": "Ignored",
			"manufacturer": "Stabilo",
			"images":       []any{"a.jpg"},
			"stock_status": "in stock",
			"mpn":          "X1",
		})
		require.NoError(t, err)
		assert.Equal(t, "4006381333931", data["gtin"])
		assert.Equal(t, "Pencil", data["name"])
		assert.Equal(t, "Stabilo", data["brand"])
		assert.Equal(t, []any{"a.jpg"}, data["image"])
		assert.Equal(t, "in stock", data["availability"])
		assert.Equal(t, "X1", data["mpn"])
	})

	t.Run("Blank Synonyms Skipped", func(t *testing.T) {
		data, err := Canonicalize(map[string]any{"gtin": "", "gtin13": "4006381333931", "name": "", "title": "T"})
		require.NoError(t, err)
		assert.Equal(t, "4006381333931", data["gtin"])
		assert.Equal(t, "T", data["name"])
	})

	t.Run("Case Insensitive Names", func(t *testing.T) {
		data, err := Canonicalize(map[string]any{
			"EAN":           "4006381333931",
			"Product_Name":  "Pencil",
			"PRICECURRENCY": "EUR",
			"price":         "1.20",
			"Price":         "9.99",
		})
		require.NoError(t, err)
		assert.Equal(t, "4006381333931", data["gtin"])
		assert.Equal(t, "Pencil", data["name"])
		assert.Equal(t, "EUR", data["currency"])
		assert.Equal(t, "1.20", data["price"])
	})

	t.Run("No Trade Code", func(t *testing.T) {
		_, err := Canonicalize(map[string]any{"name": "x", "sku": "1"})
		assert.ErrorIs(t, err, ErrNoTradeCodeFound)
	})
}

func TestFromScraped(t *testing.T) {
	p, err := FromScraped(context.Background(), "https://example.com", map[string]any{
		"gtin14":           "12345678901231",
		"product_name":     "Widget",
		"product_price":    "9.99",
		"product_currency": "EUR",
		"stock_status":     "PreOrder",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/01/12345678901231", p.ID)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, "9.99", p.Offers.Price)
	assert.Equal(t, "EUR", p.Offers.PriceCurrency)
	assert.Equal(t, "https://schema.org/PreOrder", p.Offers.Availability)

	_, err = FromScraped(context.Background(), "https://example.com", map[string]any{"name": "x"})
	assert.ErrorIs(t, err, ErrNoTradeCodeFound)
}
