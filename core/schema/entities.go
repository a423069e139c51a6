package schema

import "encoding/json"

// Product is a trade item addressed by its Digital Link identifier.
type Product struct {
	Base
	GTIN14          string           `json:"gtin14"`
	Name            string           `json:"name,omitempty"`
	Description     string           `json:"description,omitempty"`
	SKU             string           `json:"sku,omitempty"`
	Brand           *Brand           `json:"brand,omitempty"`
	Image           []string         `json:"image,omitempty"`
	Offers          *Offer           `json:"offers,omitempty"`
	AggregateRating *AggregateRating `json:"aggregateRating,omitempty"`
	// Attributes holds physical attributes (mpn, color, weight, ...) copied
	// verbatim from the input record.
	Attributes map[string]any `json:"-"`
}

func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	raw, err := json.Marshal(plain(p))
	if err != nil {
		return nil, err
	}
	return mergeAttributes(raw, p.Attributes)
}

// Price returns the offer price, or "" when the product has no offer.
func (p *Product) Price() string {
	if p.Offers == nil {
		return ""
	}
	return p.Offers.Price
}

// Availability returns the offer availability IRI, or "".
func (p *Product) Availability() string {
	if p.Offers == nil {
		return ""
	}
	return p.Offers.Availability
}

// PrimaryImage returns the first image URL, or "".
func (p *Product) PrimaryImage() string {
	if len(p.Image) == 0 {
		return ""
	}
	return p.Image[0]
}

// Offer is nested inside a Product and never carries its own context.
type Offer struct {
	Base
	Price         string `json:"price,omitempty"`
	PriceCurrency string `json:"priceCurrency,omitempty"`
	Availability  string `json:"availability,omitempty"`
	URL           string `json:"url,omitempty"`
	Seller        *Ref   `json:"seller,omitempty"`
}

type AggregateRating struct {
	Type        Type   `json:"@type"`
	RatingValue string `json:"ratingValue,omitempty"`
	ReviewCount string `json:"reviewCount,omitempty"`
}

// Brand is either embedded in a product or written as a standalone entity.
type Brand struct {
	Base
	Name       string         `json:"name,omitempty"`
	Logo       string         `json:"logo,omitempty"`
	URL        string         `json:"url,omitempty"`
	Attributes map[string]any `json:"-"`
}

func (b Brand) MarshalJSON() ([]byte, error) {
	type plain Brand
	raw, err := json.Marshal(plain(b))
	if err != nil {
		return nil, err
	}
	return mergeAttributes(raw, b.Attributes)
}

type Organization struct {
	Base
	Name        string         `json:"name,omitempty"`
	URL         string         `json:"url,omitempty"`
	Logo        string         `json:"logo,omitempty"`
	Description string         `json:"description,omitempty"`
	Email       string         `json:"email,omitempty"`
	Telephone   string         `json:"telephone,omitempty"`
	Address     *PostalAddress `json:"address,omitempty"`
}

type PostalAddress struct {
	Type            Type   `json:"@type"`
	StreetAddress   string `json:"streetAddress,omitempty"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	AddressCountry  string `json:"addressCountry,omitempty"`
}

type Person struct {
	Base
	Name     string `json:"name,omitempty"`
	JobTitle string `json:"jobTitle,omitempty"`
	Email    string `json:"email,omitempty"`
	URL      string `json:"url,omitempty"`
}

// WebPage covers WebPage, Article and BlogPosting.
type WebPage struct {
	Base
	URL           string   `json:"url"`
	Name          string   `json:"name,omitempty"`
	Headline      string   `json:"headline,omitempty"`
	Description   string   `json:"description,omitempty"`
	DatePublished string   `json:"datePublished,omitempty"`
	DateModified  string   `json:"dateModified,omitempty"`
	Author        *Ref     `json:"author,omitempty"`
	Publisher     *Ref     `json:"publisher,omitempty"`
	Image         []string `json:"image,omitempty"`
	MainEntity    *Ref     `json:"mainEntity,omitempty"`
}

// Ref points at another entity by identifier, name or both.
type Ref struct {
	Type Type   `json:"@type,omitempty"`
	ID   string `json:"@id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Availability is an absolute schema.org ItemAvailability IRI.
type Availability string

const (
	InStock      Availability = "https://schema.org/InStock"
	OutOfStock   Availability = "https://schema.org/OutOfStock"
	PreOrder     Availability = "https://schema.org/PreOrder"
	Discontinued Availability = "https://schema.org/Discontinued"
)
