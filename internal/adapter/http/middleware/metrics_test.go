package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "holder by id",
			path: "/api/v1/holders/01HQZX3J8K",
			want: "/api/v1/holders/:id",
		},
		{
			name: "invoice payments",
			path: "/api/v1/invoices/01HQZX3J8K/payments",
			want: "/api/v1/invoices/:id/payments",
		},
		{
			name: "holder statement",
			path: "/api/v1/holders/01HQZX3J8K/statement",
			want: "/api/v1/holders/:id/statement",
		},
		{
			name: "holder aging",
			path: "/api/v1/holders/01HQZX3J8K/aging",
			want: "/api/v1/holders/:id/aging",
		},
		{
			name: "note settle",
			path: "/api/v1/notes/01HQZX3J8K/settle",
			want: "/api/v1/notes/:id/settle",
		},
		{
			name: "collection unchanged",
			path: "/api/v1/holders",
			want: "/api/v1/holders",
		},
		{
			name: "health unchanged",
			path: "/health",
			want: "/health",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizePath(tt.path))
		})
	}
}
