package checks

import (
	"context"
	"errors"
	"fmt"

	"kg-sync/core/kg"
)

// Graph looks iri up through the GraphQL index. The index lags writes by a
// few minutes, so a miss right after a sync is not conclusive.
func Graph(ctx context.Context, client kg.Client, iri string) (Result, *kg.RemoteEntity) {
	const name = "graphql"

	e, err := client.GetEntity(ctx, iri)
	if errors.Is(err, kg.ErrNotFound) {
		return fail(name, "Entity not found in GraphQL index"), nil
	}
	if err != nil {
		return fail(name, fmt.Sprintf("GraphQL query error: %v", err)), nil
	}
	return pass(name, "Entity indexed in GraphQL"), e
}
