// internal/adapters/out/gcs/foodimage_repository_gcs.go
package gcs

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	gcscommon "foodhall/internal/adapters/out/gcs/common"
)

// FoodImageFolder is the fixed logical folder for catalog images.
const FoodImageFolder = "food_images"

// FoodImageRepositoryGCS is the object-storage adapter for catalog images
// (the asset ingestion pipeline).
//
// Layout (single bucket):
// - bucket: <FOOD_IMAGE_BUCKET>
// - objectPath: food_images/<generated name>
//
// Public access:
//   - With IAM "allUsers: Storage Object Viewer" (uniform access) on the
//     bucket, uploaded objects are publicly readable without per-object ACLs.
//
// The image buffer is transient: it exists only for the duration of the
// upload, nothing is written to the local filesystem.
type FoodImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string
	// Optional: if empty, uses https://storage.googleapis.com
	PublicBaseURL string
}

func NewFoodImageRepositoryGCS(client *storage.Client, bucket string) *FoodImageRepositoryGCS {
	return &FoodImageRepositoryGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: "https://storage.googleapis.com",
	}
}

func (r *FoodImageRepositoryGCS) bucket() (*storage.BucketHandle, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("foodimage_repository_gcs: storage client is nil")
	}
	b := strings.TrimSpace(r.Bucket)
	if b == "" {
		return nil, errors.New("foodimage_repository_gcs: bucket is empty")
	}
	return r.Client.Bucket(b), nil
}

// Upload streams data to GCS and returns the durable public URL.
// The Writer must Close successfully before any URL is handed back; a failed
// upload returns an error and leaves nothing for the caller to persist.
func (r *FoodImageRepositoryGCS) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	bh, err := r.bucket()
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errors.New("foodimage_repository_gcs: image buffer is empty")
	}

	objPath := FoodImageFolder + "/" + newObjectName(contentType)

	w := bh.Object(objPath).NewWriter(ctx)
	if ct := strings.TrimSpace(contentType); ct != "" {
		w.ContentType = ct
	}
	// Safety: avoid writer hanging forever.
	w.ChunkSize = 0
	w.Metadata = map[string]string{
		"uploadedAt": time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return gcscommon.GCSPublicURL(r.Bucket, objPath, "", r.PublicBaseURL), nil
}

// newObjectName builds a collision-resistant object name with an extension
// derived from the content type.
func newObjectName(contentType string) string {
	var b [12]byte
	suffix := time.Now().UTC().Format("20060102T150405")
	if _, err := rand.Read(b[:]); err == nil {
		suffix = hex.EncodeToString(b[:])
	}

	ext := ""
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	case "image/webp":
		ext = ".webp"
	case "image/gif":
		ext = ".gif"
	}

	return suffix + ext
}
