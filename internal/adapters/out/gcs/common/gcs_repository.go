// internal/adapters/out/gcs/common/gcs_repository.go
package common

import (
	"fmt"
	"net/url"
	"strings"
)

// GCSPublicURL builds a public GCS URL.
// - empty bucket falls back to defaultBucket
// - the object path is escaped per segment, keeping "/" separators
// - empty baseURL falls back to https://storage.googleapis.com
func GCSPublicURL(bucket, objectPath, defaultBucket, baseURL string) string {
	b := strings.TrimSpace(bucket)
	if b == "" {
		b = strings.TrimSpace(defaultBucket)
	}
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = "https://storage.googleapis.com"
	}

	obj := strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	parts := strings.Split(obj, "/")
	for i := range parts {
		parts[i] = url.PathEscape(parts[i])
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), b, strings.Join(parts, "/"))
}

// ParseGCSURL parses a GCS-like URL and returns (bucket, objectPath, ok).
// Supported hosts:
//   - storage.googleapis.com
//   - storage.cloud.google.com
func ParseGCSURL(u string) (string, string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(u))
	if err != nil {
		return "", "", false
	}

	host := strings.ToLower(parsed.Host)
	if host != "storage.googleapis.com" && host != "storage.cloud.google.com" {
		return "", "", false
	}

	p := strings.TrimLeft(parsed.EscapedPath(), "/")
	if p == "" {
		return "", "", false
	}

	parts := strings.SplitN(p, "/", 2)
	if len(parts) < 2 {
		return "", "", false
	}

	objectPath, err := url.PathUnescape(parts[1])
	if err != nil {
		return "", "", false
	}

	return parts[0], objectPath, true
}
