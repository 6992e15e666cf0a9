package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashURL(t *testing.T) {
	a := HashURL("https://example.com/a.png")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashURL("https://example.com/a.png"))
	assert.NotEqual(t, a, HashURL("https://example.com/b.png"))
}

func TestStoragePathFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain", "https://storage.googleapis.com/bucket/photo.png", "photo.png"},
		{"encoded", "https://storage.googleapis.com/bucket/my%20photo%2B1.png", "my photo+1.png"},
		{"encoded slash", "https://firebasestorage.googleapis.com/v0/b/x/o/users%2Fabc.png?alt=media", "users/abc.png"},
		{"query dropped", "https://cdn.example.com/a/b.jpg?w=200", "b.jpg"},
		{"no path", "https://cdn.example.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StoragePathFromURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHostOf(t *testing.T) {
	assert.Equal(t, "picsum.photos", HostOf("https://Picsum.Photos/200/300"))
	assert.Equal(t, "", HostOf("::not a url"))
}
