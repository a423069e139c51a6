package server_test

import (
	"testing"

	"kg-sync/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_BodyLimit(t *testing.T) {
	tests := []struct {
		name string
		mb   int
		want int
	}{
		{"Configured", 16, 16 * 1024 * 1024},
		{"Fallback", 0, 4 * 1024 * 1024},
		{"Negative", -1, 4 * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{BodyLimitMB: tt.mb}
			assert.Equal(t, tt.want, c.BodyLimit())
		})
	}
}

func TestConfig_Addr(t *testing.T) {
	assert.Equal(t, ":9000", server.Config{Port: "9000"}.Addr())
}
