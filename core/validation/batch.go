package validation

import (
	"fmt"
	"strings"

	"kg-sync/core/utils"
)

// EntityResult is the per-entity line of a batch validation.
type EntityResult struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Type  string `json:"type"`
	Result
}

// BatchResult aggregates the validation of a list of documents.
type BatchResult struct {
	Total    int            `json:"total"`
	Valid    int            `json:"valid"`
	Invalid  int            `json:"invalid"`
	Entities []EntityResult `json:"entities"`
}

// ValidateBatch validates docs in order.
func (v *Validator) ValidateBatch(docs []map[string]any, strict bool) BatchResult {
	res := BatchResult{Total: len(docs), Entities: make([]EntityResult, 0, len(docs))}
	for i, doc := range docs {
		r := v.Validate(doc, strict)
		if r.Valid {
			res.Valid++
		} else {
			res.Invalid++
		}
		res.Entities = append(res.Entities, EntityResult{
			Index:  i,
			ID:     stringOr(doc["@id"], "unknown"),
			Type:   stringOr(doc["@type"], "unknown"),
			Result: r,
		})
	}
	return res
}

// Failed returns the entity results that did not validate, in input order.
func (b BatchResult) Failed() []EntityResult {
	var out []EntityResult
	for _, e := range b.Entities {
		if !e.Valid {
			out = append(out, e)
		}
	}
	return out
}

const (
	heavyRule = "============================================================"
	lightRule = "------------------------------------------------------------"
)

// Report renders a batch result as text: counts, invalid entities and then
// entities with warnings, both in input order.
func Report(b BatchResult) string {
	lines := []string{
		heavyRule,
		"ENTITY VALIDATION REPORT",
		heavyRule,
		fmt.Sprintf("Total entities: %d", b.Total),
		fmt.Sprintf("Valid: %d", b.Valid),
		fmt.Sprintf("Invalid: %d", b.Invalid),
		"",
	}

	if failed := b.Failed(); len(failed) > 0 {
		lines = append(lines, "INVALID ENTITIES:", lightRule)
		for _, e := range failed {
			lines = append(lines, "", e.Type+" - "+e.ID)
			for _, issue := range e.Errors {
				lines = append(lines, "  ✗ "+issue.Message)
			}
		}
	}

	var warned []EntityResult
	for _, e := range b.Entities {
		if len(e.Warnings) > 0 {
			warned = append(warned, e)
		}
	}
	if len(warned) > 0 {
		lines = append(lines, "", "WARNINGS:", lightRule)
		for _, e := range warned {
			lines = append(lines, "", e.Type+" - "+e.ID)
			for _, issue := range e.Warnings {
				lines = append(lines, "  ⚠ "+issue.Message)
			}
		}
	}

	lines = append(lines, "", heavyRule)
	return strings.Join(lines, "\n")
}

func stringOr(v any, fallback string) string {
	if v == nil {
		return fallback
	}
	if s := utils.ToString(v); s != "" {
		return s
	}
	return fallback
}
