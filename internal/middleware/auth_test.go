package middleware

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		token  string
		want   bool
	}{
		{name: "match", header: "secret", token: "secret", want: true},
		{name: "mismatch", header: "guess", token: "secret", want: false},
		{name: "missing header", header: "", token: "secret", want: false},
		{name: "no token configured", header: "", token: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, validToken(tt.header, tt.token))
		})
	}
}
