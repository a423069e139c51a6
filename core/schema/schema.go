package schema

import (
	"encoding/json"
	"fmt"
)

// Context is the JSON-LD context attached to top-level entities.
const Context = "https://schema.org"

// Type is the schema.org class of an entity.
type Type string

const (
	TypeProduct         Type = "Product"
	TypeOrganization    Type = "Organization"
	TypePerson          Type = "Person"
	TypeBrand           Type = "Brand"
	TypeWebPage         Type = "WebPage"
	TypeArticle         Type = "Article"
	TypeBlogPosting     Type = "BlogPosting"
	TypeOffer           Type = "Offer"
	TypeAggregateRating Type = "AggregateRating"
	TypePostalAddress   Type = "PostalAddress"
)

// Known reports whether t is one of the entity types the sync pipeline handles.
func (t Type) Known() bool {
	switch t {
	case TypeProduct, TypeOrganization, TypePerson, TypeBrand,
		TypeWebPage, TypeArticle, TypeBlogPosting, TypeOffer:
		return true
	default:
		return false
	}
}

// IsPage reports whether t is one of the web page variants.
func (t Type) IsPage() bool {
	return t == TypeWebPage || t == TypeArticle || t == TypeBlogPosting
}

// IRI returns the absolute class IRI used in graph type constraints.
func (t Type) IRI() string {
	return "http://schema.org/" + string(t)
}

// Entity is implemented by every typed record that can be written to the graph.
type Entity interface {
	EntityID() string
	EntityType() Type
}

// Base carries the JSON-LD keywords shared by all entities.
type Base struct {
	Context string `json:"@context,omitempty"`
	Type    Type   `json:"@type"`
	ID      string `json:"@id,omitempty"`
}

func (b Base) EntityID() string { return b.ID }

func (b Base) EntityType() Type { return b.Type }

// ToDocument renders an entity as a generic JSON-LD object.
func ToDocument(e Entity) (map[string]any, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", e.EntityType(), err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s document: %w", e.EntityType(), err)
	}
	return doc, nil
}

// mergeAttributes adds attrs to an encoded JSON object without overriding
// keys that are already present.
func mergeAttributes(encoded []byte, attrs map[string]any) ([]byte, error) {
	if len(attrs) == 0 {
		return encoded, nil
	}
	var doc map[string]any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, err
	}
	for k, v := range attrs {
		if _, ok := doc[k]; !ok {
			doc[k] = v
		}
	}
	return json.Marshal(doc)
}
