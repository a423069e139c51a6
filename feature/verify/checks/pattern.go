package checks

import (
	"net/url"
	"strings"

	"kg-sync/core/identity"
)

// KnownPaths are the path segments the graph persists entities under.
var KnownPaths = []string{
	"/01/", "/organization/", "/place/", "/person/", "/destination/",
	"/article/", "/webpage/", "/brand/", "/event/", "/service/",
}

// Pattern checks that iri uses a path the graph will persist. The graph
// accepts writes to other paths but silently drops them.
func Pattern(iri string) Result {
	const name = "pattern"

	if !identity.IsHTTPIRI(iri) {
		return fail(name, "Invalid IRI format")
	}
	u, _ := url.Parse(iri)
	p := u.Path

	for _, known := range KnownPaths {
		if !strings.Contains(p, known) {
			continue
		}
		if known == "/01/" {
			if !identity.IsProductURI(p) {
				return fail(name, "Invalid GTIN-14 in product IRI")
			}
			return pass(name, "Valid product IRI (GS1 Digital Link)")
		}
		return pass(name, "Valid IRI pattern: "+known)
	}

	if strings.Contains(p, "/sejour/") || strings.Contains(p, "/country/") {
		return fail(name, "Invalid pattern: generated from a sitemap path")
	}
	if strings.Count(strings.Trim(p, "/"), "/") > 2 {
		return fail(name, "Invalid pattern: too many nested paths")
	}
	return fail(name, "IRI pattern not recognized, entity may not be persisted")
}
