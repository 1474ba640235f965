// internal/adapters/out/gcs/common/gcs_repository_test.go
package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGCSPublicURL(t *testing.T) {
	assert.Equal(t,
		"https://storage.googleapis.com/b1/food_images/x.jpg",
		GCSPublicURL("b1", "food_images/x.jpg", "fallback", ""))

	// empty bucket falls back
	assert.Equal(t,
		"https://storage.googleapis.com/fallback/o.png",
		GCSPublicURL("", "o.png", "fallback", ""))

	// leading slash stripped, segments escaped individually
	assert.Equal(t,
		"https://storage.googleapis.com/b/food_images/a%20b.jpg",
		GCSPublicURL("b", "/food_images/a b.jpg", "", ""))

	// custom base URL, trailing slash tolerated
	assert.Equal(t,
		"https://cdn.example.com/b/o.jpg",
		GCSPublicURL("b", "o.jpg", "", "https://cdn.example.com/"))
}

func TestParseGCSURL(t *testing.T) {
	bucket, obj, ok := ParseGCSURL("https://storage.googleapis.com/b1/food_images/x.jpg")
	assert.True(t, ok)
	assert.Equal(t, "b1", bucket)
	assert.Equal(t, "food_images/x.jpg", obj)

	bucket, obj, ok = ParseGCSURL("https://storage.cloud.google.com/b2/a%20b.jpg")
	assert.True(t, ok)
	assert.Equal(t, "b2", bucket)
	assert.Equal(t, "a b.jpg", obj)

	_, _, ok = ParseGCSURL("https://example.com/b/o.jpg")
	assert.False(t, ok)

	_, _, ok = ParseGCSURL("https://storage.googleapis.com/bucket-only")
	assert.False(t, ok)

	_, _, ok = ParseGCSURL("://bad")
	assert.False(t, ok)
}
