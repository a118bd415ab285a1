package storage

import (
	"encoding/base64"
	"testing"

	"foodgram-backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent png
var pixelPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func TestDecodeDataURI(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pixelPNG)

	img, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, "png", img.Extension)
	assert.Equal(t, pixelPNG, img.Data)
}

func TestDecodeDataURIRejectsMalformedInput(t *testing.T) {
	cases := map[string]string{
		"no comma":     "data:image/png;base64",
		"not an image": "data:text/plain;base64,aGVsbG8=",
		"bad base64":   "data:image/png;base64,@@@",
		"not png data": "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("hello world")),
		"empty":        "",
	}
	for name, uri := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeDataURI(uri)
			assert.ErrorIs(t, err, domain.ErrInvalidImage)
		})
	}
}

func TestObjectKeyHelpers(t *testing.T) {
	base := "https://bucket.s3.us-east-1.amazonaws.com"

	key := ObjectKey("recipes", "abc", "png")
	assert.Equal(t, "recipes/abc.png", key)

	link := PublicLink(base, key)
	assert.Equal(t, base+"/recipes/abc.png", link)
	assert.Equal(t, key, ObjectKeyFromLink(base, link))
	assert.Equal(t, "", ObjectKeyFromLink(base, "https://elsewhere/recipes/abc.png"))
}
