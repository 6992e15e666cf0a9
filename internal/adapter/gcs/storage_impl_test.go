package gcs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fullstack0516/express-digital-asset-backend/pkg/utils"
)

func TestPublicURL(t *testing.T) {
	s := NewStorage(nil, "media", "")
	assert.Equal(t, "https://storage.googleapis.com/media/photo.png", s.PublicURL("photo.png"))

	s = NewStorage(nil, "media", " http://localhost:4443/ ")
	assert.Equal(t, "http://localhost:4443/media/photo.png", s.PublicURL("/photo.png"))
}

func TestPublicURLRoundTripsToStoragePath(t *testing.T) {
	s := NewStorage(nil, "media", "")
	for _, name := range []string{"a b.png", "häfen.jpg", "x%2Fy.gif"} {
		path, err := utils.StoragePathFromURL(s.PublicURL(name))
		assert.NoError(t, err)
		assert.Equal(t, name, path)
	}
}
