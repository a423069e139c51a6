package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProperties(t *testing.T) {
	t.Run("Values", func(t *testing.T) {
		props, err := parseProperties([]string{
			"alternateName=Roma",
			"population=2873000",
			`sameAs=["https://www.wikidata.org/wiki/Q220"]`,
			"slogan=a=b",
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"alternateName": "Roma",
			"population":    float64(2873000),
			"sameAs":        []any{"https://www.wikidata.org/wiki/Q220"},
			"slogan":        "a=b",
		}, props)
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, pair := range []string{"novalue", "=x"} {
			_, err := parseProperties([]string{pair})
			assert.Error(t, err, pair)
		}
	})
}
