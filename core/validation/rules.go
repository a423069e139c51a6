package validation

import (
	"encoding/json"
	"strings"
	"unicode"

	"kg-sync/core/schema"
)

// predicate reports whether a present field value is acceptable.
type predicate func(v any) bool

type constraint struct {
	field string
	check predicate
}

// shape is the rule set for one entity type.
type shape struct {
	required    []string
	recommended []string
	constraints []constraint
}

func defaultShapes() map[schema.Type]shape {
	page := shape{
		required:    []string{"@id", "@type", "url", "name"},
		recommended: []string{"description", "datePublished"},
		constraints: []constraint{
			{"@type", oneOf(string(schema.TypeWebPage), string(schema.TypeArticle), string(schema.TypeBlogPosting))},
			{"url", httpString},
			{"name", nonEmptyString},
		},
	}

	return map[schema.Type]shape{
		schema.TypeProduct: {
			required:    []string{"@id", "@type", "name", "gtin14"},
			recommended: []string{"description", "brand", "offers", "image"},
			constraints: []constraint{
				{"@type", oneOf(string(schema.TypeProduct))},
				{"gtin14", digits(14)},
				{"name", nonEmptyString},
				{"offers", objectOfType(schema.TypeOffer)},
			},
		},
		schema.TypeOrganization: {
			required:    []string{"@id", "@type", "name"},
			recommended: []string{"url", "logo", "description"},
			constraints: []constraint{
				{"@type", oneOf(string(schema.TypeOrganization))},
				{"name", nonEmptyString},
				{"url", httpString},
			},
		},
		schema.TypePerson: {
			required:    []string{"@id", "@type", "name"},
			recommended: []string{"jobTitle", "email"},
			constraints: []constraint{
				{"@type", oneOf(string(schema.TypePerson))},
				{"name", nonEmptyString},
			},
		},
		schema.TypeWebPage:     page,
		schema.TypeArticle:     page,
		schema.TypeBlogPosting: page,
		schema.TypeOffer: {
			required:    []string{"@type", "price", "priceCurrency"},
			recommended: []string{"availability", "url"},
			constraints: []constraint{
				{"@type", oneOf(string(schema.TypeOffer))},
				{"price", scalar},
				{"priceCurrency", currencyCode},
				{"availability", containing("schema.org")},
			},
		},
		schema.TypeBrand: {
			required:    []string{"@id", "@type", "name"},
			recommended: []string{"logo", "url"},
			constraints: []constraint{
				{"@type", oneOf(string(schema.TypeBrand))},
				{"name", nonEmptyString},
			},
		},
	}
}

func nonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && s != ""
}

func httpString(v any) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, "http")
}

func scalar(v any) bool {
	switch v.(type) {
	case string, json.Number, float64, float32, int, int64, int32:
		return true
	default:
		return false
	}
}

func currencyCode(v any) bool {
	s, ok := v.(string)
	if !ok || len(s) != 3 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func digits(n int) predicate {
	return func(v any) bool {
		s, ok := v.(string)
		if !ok || len(s) != n {
			return false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	}
}

func oneOf(values ...string) predicate {
	return func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		for _, allowed := range values {
			if s == allowed {
				return true
			}
		}
		return false
	}
}

func containing(sub string) predicate {
	return func(v any) bool {
		s, ok := v.(string)
		return ok && strings.Contains(s, sub)
	}
}

func objectOfType(t schema.Type) predicate {
	return func(v any) bool {
		m, ok := v.(map[string]any)
		return ok && m["@type"] == string(t)
	}
}
