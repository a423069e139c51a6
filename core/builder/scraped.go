package builder

import (
	"context"
	"strings"

	"kg-sync/core/schema"
	"kg-sync/core/utils"
)

// tradeCodeSynonyms are tried in order; the first non-blank one wins.
var tradeCodeSynonyms = []string{"gtin", "gtin13", "gtin14", "gtin12", "gtin8", "ean", "upc"}

type synonym struct {
	target  string
	sources []string
}

var fieldSynonyms = []synonym{
	{"name", []string{"name", "title", "product_name"}},
	{"description", []string{"description", "product_description"}},
	{"sku", []string{"sku", "product_sku"}},
	{"brand", []string{"brand", "product_brand", "manufacturer"}},
	{"image", []string{"image", "product_image", "images"}},
	{"price", []string{"price", "product_price"}},
	{"currency", []string{"currency", "priceCurrency", "product_currency"}},
	{"availability", []string{"availability", "product_availability", "stock_status"}},
	{"rating", []string{"rating", "ratingValue", "product_rating"}},
	{"reviewCount", []string{"reviewCount", "review_count", "product_review_count"}},
}

// passthrough fields keep their name when mapping a scraped record.
var passthrough = append([]string{"serial", "lot"}, physicalAttributes...)

// Canonicalize maps a scraped record with heterogeneous field names onto the
// field names Product understands. Source names match case-insensitively, so
// GTIN or Product_Name columns are accepted; an exact-case key wins.
func Canonicalize(raw map[string]any) (map[string]any, error) {
	folded := fold(raw)
	lookup := func(key string) (any, bool) {
		if v, ok := raw[key]; ok {
			return v, true
		}
		v, ok := folded[strings.ToLower(key)]
		return v, ok
	}

	out := make(map[string]any)
	for _, src := range tradeCodeSynonyms {
		if v, ok := lookup(src); ok && !utils.IsBlank(v) {
			out["gtin"] = v
			break
		}
	}
	if _, ok := out["gtin"]; !ok {
		return nil, ErrNoTradeCodeFound
	}

	for _, s := range fieldSynonyms {
		for _, src := range s.sources {
			if v, ok := lookup(src); ok && !utils.IsBlank(v) {
				out[s.target] = v
				break
			}
		}
	}
	for _, f := range passthrough {
		if v, ok := lookup(f); ok && !utils.IsBlank(v) {
			out[f] = v
		}
	}
	return out, nil
}

// fold indexes raw by lowercased key. When two keys fold together the
// lowercase one is kept.
func fold(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		lk := strings.ToLower(k)
		if _, taken := out[lk]; taken && k != lk {
			continue
		}
		out[lk] = v
	}
	return out
}

// FromScraped canonicalizes raw and builds a product from it.
func (b *Builder) FromScraped(ctx context.Context, raw map[string]any) (*schema.Product, error) {
	data, err := Canonicalize(raw)
	if err != nil {
		return nil, err
	}
	return b.Product(ctx, data)
}

// FromScraped builds a product under baseURI without brand reuse.
func FromScraped(ctx context.Context, baseURI string, raw map[string]any) (*schema.Product, error) {
	return New(baseURI).FromScraped(ctx, raw)
}

// TradeCodeFields returns the record fields accepted as a trade code, in
// priority order.
func TradeCodeFields() []string {
	return append([]string(nil), tradeCodeSynonyms...)
}
