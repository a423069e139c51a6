package validation

import (
	"fmt"

	"kg-sync/core/identity"
	"kg-sync/core/schema"
)

// Kind classifies a validation issue.
type Kind string

const (
	KindMissingContext       Kind = "missing_context"
	KindMissingType          Kind = "missing_type"
	KindUnknownType          Kind = "unknown_type"
	KindMissingRequiredField Kind = "missing_required_field"
	KindMissingRecommended   Kind = "missing_recommended_field"
	KindConstraintViolation  Kind = "constraint_violation"
	KindInvalidIdentifier    Kind = "invalid_identifier"
)

// Issue is a single error or warning raised against an entity.
type Issue struct {
	Kind    Kind   `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string { return i.Message }

// Result is the outcome of validating one entity.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// HasError reports whether the result contains an error of the given kind
// for the given field. An empty field matches any field.
func (r Result) HasError(kind Kind, field string) bool {
	for _, e := range r.Errors {
		if e.Kind == kind && (field == "" || e.Field == field) {
			return true
		}
	}
	return false
}

// Validator checks JSON-LD documents against the per-type rule table.
type Validator struct {
	shapes map[schema.Type]shape
}

// New returns a validator loaded with the default rule table.
func New() *Validator {
	return &Validator{shapes: defaultShapes()}
}

// ValidateEntity renders e as JSON-LD and validates it.
func (v *Validator) ValidateEntity(e schema.Entity, strict bool) (Result, error) {
	doc, err := schema.ToDocument(e)
	if err != nil {
		return Result{}, err
	}
	return v.Validate(doc, strict), nil
}

// Validate checks a single document. In strict mode missing recommended
// fields are errors instead of warnings.
func (v *Validator) Validate(doc map[string]any, strict bool) Result {
	return v.validate(doc, strict, false)
}

// validate runs the rule set for doc. A nested offer or brand without its
// own @context inherits the enclosing entity's, which is checked (and
// reported) once at the top level.
func (v *Validator) validate(doc map[string]any, strict, nested bool) Result {
	var res Result

	ctx, hasCtx := doc["@context"]
	switch {
	case !hasCtx && nested:
	case !hasCtx:
		res.Errors = append(res.Errors, Issue{Kind: KindMissingContext, Field: "@context", Message: "Missing @context"})
	case !knownContext(ctx):
		res.Errors = append(res.Errors, Issue{
			Kind:    KindMissingContext,
			Field:   "@context",
			Message: fmt.Sprintf("Invalid @context: %v", ctx),
		})
	}

	rawType, ok := doc["@type"]
	if !ok || rawType == nil || rawType == "" {
		res.Errors = append(res.Errors, Issue{Kind: KindMissingType, Field: "@type", Message: "Missing @type"})
		return res
	}

	typeName, _ := rawType.(string)
	sh, ok := v.shapes[schema.Type(typeName)]
	if !ok {
		res.Warnings = append(res.Warnings, Issue{
			Kind:    KindUnknownType,
			Field:   "@type",
			Message: fmt.Sprintf("No shape defined for type: %v", rawType),
		})
		res.Valid = len(res.Errors) == 0
		return res
	}

	for _, f := range sh.required {
		if _, ok := doc[f]; !ok {
			res.Errors = append(res.Errors, Issue{
				Kind:    KindMissingRequiredField,
				Field:   f,
				Message: "Missing required field: " + f,
			})
		}
	}

	for _, f := range sh.recommended {
		if _, ok := doc[f]; ok {
			continue
		}
		if strict {
			res.Errors = append(res.Errors, Issue{
				Kind:    KindMissingRecommended,
				Field:   f,
				Message: "Missing recommended field (strict mode): " + f,
			})
		} else {
			res.Warnings = append(res.Warnings, Issue{
				Kind:    KindMissingRecommended,
				Field:   f,
				Message: "Missing recommended field: " + f,
			})
		}
	}

	for _, c := range sh.constraints {
		val, ok := doc[c.field]
		if !ok {
			continue
		}
		if !c.check(val) {
			res.Errors = append(res.Errors, Issue{
				Kind:    KindConstraintViolation,
				Field:   c.field,
				Message: fmt.Sprintf("Constraint failed for field '%s': %v", c.field, val),
			})
		}
	}

	if schema.Type(typeName) == schema.TypeProduct {
		if offer, ok := doc["offers"].(map[string]any); ok {
			res.merge("Offer", v.validate(offer, strict, true))
		}
		if brand, ok := doc["brand"].(map[string]any); ok {
			res.merge("Brand", v.validate(brand, strict, true))
		}
	}

	if rawID, ok := doc["@id"]; ok {
		id, _ := rawID.(string)
		if !identity.IsHTTPIRI(id) {
			res.Errors = append(res.Errors, Issue{
				Kind:    KindInvalidIdentifier,
				Field:   "@id",
				Message: fmt.Sprintf("@id must be a valid HTTP(S) IRI: %v", rawID),
			})
		}
		if schema.Type(typeName) == schema.TypeProduct && !identity.IsProductURI(id) {
			res.Errors = append(res.Errors, Issue{
				Kind:    KindInvalidIdentifier,
				Field:   "@id",
				Message: fmt.Sprintf("Product @id should follow GS1 Digital Link format: %v", rawID),
			})
		}
	}

	res.Valid = len(res.Errors) == 0
	return res
}

// merge folds a nested result into r, prefixing messages with the
// sub-entity name. Nested errors only count when the nested entity failed.
func (r *Result) merge(prefix string, nested Result) {
	if !nested.Valid {
		for _, e := range nested.Errors {
			e.Message = prefix + ": " + e.Message
			r.Errors = append(r.Errors, e)
		}
	}
	for _, w := range nested.Warnings {
		w.Message = prefix + ": " + w.Message
		r.Warnings = append(r.Warnings, w)
	}
}

func knownContext(v any) bool {
	s, ok := v.(string)
	return ok && (s == "https://schema.org" || s == "http://schema.org")
}
