package kg

// Config holds configuration for the knowledge-graph API.
type Config struct {
	// BaseURL is the root of the REST and GraphQL endpoints.
	BaseURL string `mapstructure:"base_url" default:"https://api.wordlift.io"`
	// Key is the account API key sent as "Authorization: Key <key>".
	Key string `mapstructure:"key" default:""`
}
