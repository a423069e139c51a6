package builder

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"kg-sync/core/identity"
	"kg-sync/core/schema"
	"kg-sync/core/utils"
)

var (
	ErrMissingGtin      = errors.New("product has no gtin")
	ErrMissingName      = errors.New("entity has no name")
	ErrMissingURL       = errors.New("web page has no url")
	ErrNoTradeCodeFound = errors.New("no trade code found in record")
)

const defaultCurrency = "USD"

// physicalAttributes are copied verbatim from the input onto the product.
var physicalAttributes = []string{"mpn", "model", "color", "size", "weight", "width", "height", "depth"}

// BrandResolver resolves a brand reference (a name or an object) to a brand
// that exists in the graph.
type BrandResolver interface {
	GetOrCreateBrand(ctx context.Context, data any) (*schema.Brand, error)
}

// Builder assembles typed entities from loosely structured records.
type Builder struct {
	baseURI string
	brands  BrandResolver
}

// Option configures a Builder.
type Option func(*Builder)

// WithBrandResolver delegates brand resolution to r instead of building
// brands inline.
func WithBrandResolver(r BrandResolver) Option {
	return func(b *Builder) {
		b.brands = r
	}
}

// New creates a builder that mints identifiers under baseURI.
func New(baseURI string, opts ...Option) *Builder {
	b := &Builder{baseURI: strings.TrimRight(baseURI, "/")}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BaseURI returns the dataset base identifiers are minted under.
func (b *Builder) BaseURI() string { return b.baseURI }

// Product builds a product addressed by its Digital Link identifier.
func (b *Builder) Product(ctx context.Context, data map[string]any) (*schema.Product, error) {
	if utils.IsBlank(data["gtin"]) {
		return nil, ErrMissingGtin
	}
	code := utils.ToString(data["gtin"])

	gtin, err := identity.NormalizeTradeCode(code)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize gtin: %w", err)
	}
	id, err := identity.BuildProductID(b.baseURI, gtin, utils.ToString(data["serial"]), utils.ToString(data["lot"]))
	if err != nil {
		return nil, fmt.Errorf("failed to build product id: %w", err)
	}

	p := &schema.Product{
		Base:        schema.Base{Context: schema.Context, Type: schema.TypeProduct, ID: id},
		GTIN14:      gtin,
		Name:        stringField(data, "name"),
		Description: stringField(data, "description"),
		SKU:         stringField(data, "sku"),
		Image:       utils.ToStringSlice(data["image"]),
	}

	if !utils.IsBlank(data["brand"]) {
		brand, err := b.resolveBrand(ctx, data["brand"])
		if err != nil {
			return nil, fmt.Errorf("failed to resolve brand: %w", err)
		}
		p.Brand = brand
	}

	if offer := firstObject(data["offers"]); offer != nil {
		p.Offers = buildOffer(offer)
	} else if !utils.IsBlank(data["price"]) {
		currency := stringField(data, "currency")
		if currency == "" {
			currency = stringField(data, "priceCurrency")
		}
		if currency == "" {
			currency = defaultCurrency
		}
		availability := stringField(data, "availability")
		if availability == "" {
			availability = string(schema.InStock)
		}
		p.Offers = buildOffer(map[string]any{
			"price":         data["price"],
			"priceCurrency": currency,
			"availability":  availability,
		})
	}

	if rating, ok := data["aggregateRating"].(map[string]any); ok {
		p.AggregateRating = &schema.AggregateRating{
			Type:        schema.TypeAggregateRating,
			RatingValue: stringField(rating, "ratingValue"),
			ReviewCount: stringField(rating, "reviewCount"),
		}
	} else if value := firstString(data, "rating", "ratingValue"); value != "" {
		p.AggregateRating = &schema.AggregateRating{
			Type:        schema.TypeAggregateRating,
			RatingValue: value,
			ReviewCount: firstString(data, "reviewCount", "review_count"),
		}
	}

	for _, f := range physicalAttributes {
		if v, ok := data[f]; ok && !utils.IsBlank(v) {
			if p.Attributes == nil {
				p.Attributes = make(map[string]any)
			}
			p.Attributes[f] = v
		}
	}

	return p, nil
}

func (b *Builder) resolveBrand(ctx context.Context, v any) (*schema.Brand, error) {
	if b.brands != nil {
		return b.brands.GetOrCreateBrand(ctx, v)
	}
	return b.Brand(v)
}

// Brand builds a brand inline from a name or an object. Objects keep their
// extra keys; a missing @id is generated from the name.
func (b *Builder) Brand(v any) (*schema.Brand, error) {
	m, ok := v.(map[string]any)
	if !ok {
		name := strings.TrimSpace(utils.ToString(v))
		if name == "" {
			return nil, ErrMissingName
		}
		m = map[string]any{"name": name}
	}

	brand := &schema.Brand{
		Base: schema.Base{Type: schema.TypeBrand, ID: stringField(m, "@id")},
		Name: stringField(m, "name"),
		Logo: stringField(m, "logo"),
		URL:  stringField(m, "url"),
	}
	if t := stringField(m, "@type"); t != "" {
		brand.Type = schema.Type(t)
	}
	if brand.ID == "" && brand.Name != "" {
		if identity.Slugify(brand.Name) == "" {
			return nil, fmt.Errorf("brand %q: %w", brand.Name, identity.ErrEmptySlug)
		}
		brand.ID = identity.BuildEntityID(b.baseURI, "brand", brand.Name)
	}
	for k, val := range m {
		switch k {
		case "@id", "@type", "@context", "name", "logo", "url":
			continue
		}
		if brand.Attributes == nil {
			brand.Attributes = make(map[string]any)
		}
		brand.Attributes[k] = val
	}
	return brand, nil
}

func buildOffer(data map[string]any) *schema.Offer {
	offer := &schema.Offer{
		Base:          schema.Base{Type: schema.TypeOffer},
		Price:         stringField(data, "price"),
		PriceCurrency: stringField(data, "priceCurrency"),
		URL:           stringField(data, "url"),
	}
	if a := stringField(data, "availability"); a != "" {
		offer.Availability = string(NormalizeAvailability(a))
	}
	if seller := parseRef(data["seller"], schema.TypeOrganization); seller != nil {
		offer.Seller = seller
	}
	return offer
}

// NormalizeAvailability maps a bare availability token to its schema.org IRI.
// Absolute IRIs pass through; unrecognized tokens get the schema.org prefix.
func NormalizeAvailability(token string) schema.Availability {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(token, "http") {
		return schema.Availability(token)
	}
	key := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(token))
	switch key {
	case "instock":
		return schema.InStock
	case "outofstock":
		return schema.OutOfStock
	case "preorder":
		return schema.PreOrder
	case "discontinued":
		return schema.Discontinued
	default:
		return schema.Availability("https://schema.org/" + token)
	}
}

// Organization builds an organization keyed by naturalKey, or by its name
// when naturalKey is empty.
func (b *Builder) Organization(data map[string]any, naturalKey string) (*schema.Organization, error) {
	if naturalKey == "" {
		naturalKey = stringField(data, "name")
	}
	if naturalKey == "" {
		return nil, ErrMissingName
	}
	if identity.Slugify(naturalKey) == "" {
		return nil, fmt.Errorf("organization %q: %w", naturalKey, identity.ErrEmptySlug)
	}

	return &schema.Organization{
		Base: schema.Base{
			Context: schema.Context,
			Type:    schema.TypeOrganization,
			ID:      identity.BuildEntityID(b.baseURI, string(schema.TypeOrganization), naturalKey),
		},
		Name:        stringField(data, "name"),
		URL:         stringField(data, "url"),
		Logo:        stringField(data, "logo"),
		Description: stringField(data, "description"),
		Email:       stringField(data, "email"),
		Telephone:   stringField(data, "telephone"),
		Address:     parseAddress(data["address"]),
	}, nil
}

// Person builds a person keyed by name.
func (b *Builder) Person(data map[string]any) (*schema.Person, error) {
	name := stringField(data, "name")
	if name == "" {
		return nil, ErrMissingName
	}
	if identity.Slugify(name) == "" {
		return nil, fmt.Errorf("person %q: %w", name, identity.ErrEmptySlug)
	}
	return &schema.Person{
		Base: schema.Base{
			Context: schema.Context,
			Type:    schema.TypePerson,
			ID:      identity.BuildEntityID(b.baseURI, string(schema.TypePerson), name),
		},
		Name:     name,
		JobTitle: stringField(data, "jobTitle"),
		Email:    stringField(data, "email"),
		URL:      stringField(data, "url"),
	}, nil
}

// WebPage builds a page keyed by a slug taken from, in order: slug, name,
// headline, the last URL path segment, or "homepage".
func (b *Builder) WebPage(data map[string]any) (*schema.WebPage, error) {
	pageURL := stringField(data, "url")
	if pageURL == "" {
		return nil, ErrMissingURL
	}

	typ := schema.TypeWebPage
	if t := schema.Type(stringField(data, "@type")); t.IsPage() {
		typ = t
	}

	key := firstString(data, "slug", "name", "headline")
	if key == "" {
		key = lastPathSegment(pageURL)
	}
	if identity.Slugify(key) == "" {
		key = "homepage"
	}

	return &schema.WebPage{
		Base: schema.Base{
			Context: schema.Context,
			Type:    typ,
			ID:      identity.BuildEntityID(b.baseURI, "webpage", key),
		},
		URL:           pageURL,
		Name:          stringField(data, "name"),
		Headline:      stringField(data, "headline"),
		Description:   stringField(data, "description"),
		DatePublished: stringField(data, "datePublished"),
		DateModified:  stringField(data, "dateModified"),
		Author:        parseRef(data["author"], schema.TypePerson),
		Publisher:     parseRef(data["publisher"], schema.TypeOrganization),
		Image:         utils.ToStringSlice(data["image"]),
		MainEntity:    parseRef(data["mainEntity"], ""),
	}, nil
}

func lastPathSegment(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return ""
	}
	segment := path[strings.LastIndex(path, "/")+1:]
	if i := strings.Index(segment, "."); i >= 0 {
		segment = segment[:i]
	}
	return segment
}

func parseRef(v any, defaultType schema.Type) *schema.Ref {
	switch val := v.(type) {
	case nil:
		return nil
	case map[string]any:
		ref := &schema.Ref{
			Type: schema.Type(stringField(val, "@type")),
			ID:   stringField(val, "@id"),
			Name: stringField(val, "name"),
		}
		if ref.Type == "" {
			ref.Type = defaultType
		}
		if ref.ID == "" && ref.Name == "" {
			return nil
		}
		return ref
	default:
		s := strings.TrimSpace(utils.ToString(val))
		if s == "" {
			return nil
		}
		if strings.HasPrefix(s, "http") {
			return &schema.Ref{ID: s}
		}
		return &schema.Ref{Type: defaultType, Name: s}
	}
}

func parseAddress(v any) *schema.PostalAddress {
	switch val := v.(type) {
	case map[string]any:
		return &schema.PostalAddress{
			Type:            schema.TypePostalAddress,
			StreetAddress:   stringField(val, "streetAddress"),
			AddressLocality: stringField(val, "addressLocality"),
			AddressRegion:   stringField(val, "addressRegion"),
			PostalCode:      stringField(val, "postalCode"),
			AddressCountry:  stringField(val, "addressCountry"),
		}
	default:
		s := strings.TrimSpace(utils.ToString(val))
		if s == "" {
			return nil
		}
		return &schema.PostalAddress{Type: schema.TypePostalAddress, StreetAddress: s}
	}
}

func stringField(data map[string]any, key string) string {
	return strings.TrimSpace(utils.ToString(data[key]))
}

func firstString(data map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringField(data, k); s != "" {
			return s
		}
	}
	return ""
}

// firstObject returns v when it is an object, or the first object of a list.
func firstObject(v any) map[string]any {
	switch val := v.(type) {
	case map[string]any:
		return val
	case []any:
		for _, item := range val {
			if m, ok := item.(map[string]any); ok {
				return m
			}
		}
	}
	return nil
}
