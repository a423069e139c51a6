package checks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// NoTriplesMarker is what the HTML view shows for an entity the graph did
// not persist.
const NoTriplesMarker = "No local triples"

const maxBody = 4 << 20

func get(ctx context.Context, c *http.Client, target string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, nil, err
	}
	resp, err := c.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	return resp.StatusCode, body, err
}

// HTML dereferences iri.html and looks for the missing-triples marker.
func HTML(ctx context.Context, c *http.Client, iri string) Result {
	const name = "html"

	status, body, err := get(ctx, c, iri+".html")
	if err != nil {
		return fail(name, fmt.Sprintf("HTML endpoint error: %v", err))
	}
	if status != http.StatusOK {
		return fail(name, fmt.Sprintf("HTML endpoint returned %d", status))
	}
	if strings.Contains(string(body), NoTriplesMarker) {
		return fail(name, "Entity not persisted (no local triples)")
	}
	return pass(name, "HTML endpoint serves the entity")
}

// JSON dereferences iri.json and requires a non-empty JSON document.
func JSON(ctx context.Context, c *http.Client, iri string) Result {
	const name = "json"

	status, body, err := get(ctx, c, iri+".json")
	if err != nil {
		return fail(name, fmt.Sprintf("JSON endpoint error: %v", err))
	}
	if status != http.StatusOK {
		return fail(name, fmt.Sprintf("JSON endpoint returned %d", status))
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return fail(name, fmt.Sprintf("Invalid JSON response: %v", err))
	}
	switch v := data.(type) {
	case nil:
		return fail(name, "JSON endpoint returned empty data")
	case map[string]any:
		if len(v) == 0 {
			return fail(name, "JSON endpoint returned empty data")
		}
	case []any:
		if len(v) == 0 {
			return fail(name, "JSON endpoint returned empty data")
		}
	}
	return pass(name, "JSON endpoint serves the entity")
}
