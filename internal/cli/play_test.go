package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebsocketURL(t *testing.T) {
	tests := []struct {
		name   string
		server string
		want   string
	}{
		{"http", "http://localhost:8080", "ws://localhost:8080/ws"},
		{"https", "https://dice.example.com", "wss://dice.example.com/ws"},
		{"already ws", "ws://localhost:8080", "ws://localhost:8080/ws"},
		{"already wss", "wss://dice.example.com", "wss://dice.example.com/ws"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := websocketURL(tt.server)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWebsocketURLRejectsUnsupportedScheme(t *testing.T) {
	_, err := websocketURL("ftp://example.com")
	assert.ErrorContains(t, err, "unsupported scheme")
}
