// internal/infra/secrets/db_password_provider.go
package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretspb "google.golang.org/genproto/googleapis/cloud/secretmanager/v1"
)

var (
	ErrNotConfigured = errors.New("db_password_provider: not configured")
	ErrSecretEmpty   = errors.New("db_password_provider: secret payload is empty")
)

// DBPasswordProviderSM resolves the Postgres password from Secret Manager.
// Used only when DB_PASSWORD_SECRET is set; plain env DB_PASSWORD otherwise.
type DBPasswordProviderSM struct {
	Client *secretmanager.Client
}

func NewDBPasswordProviderSM(ctx context.Context) (*DBPasswordProviderSM, error) {
	c, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &DBPasswordProviderSM{Client: c}, nil
}

// Resolve fetches the secret payload for a fully-qualified version name
// (projects/<p>/secrets/<s>/versions/latest).
func (p *DBPasswordProviderSM) Resolve(ctx context.Context, name string) (string, error) {
	if p == nil || p.Client == nil {
		return "", ErrNotConfigured
	}

	n := strings.TrimSpace(name)
	if n == "" {
		return "", ErrNotConfigured
	}

	res, err := p.Client.AccessSecretVersion(ctx, &secretspb.AccessSecretVersionRequest{Name: n})
	if err != nil {
		return "", fmt.Errorf("db_password_provider: access %s: %w", n, err)
	}
	if res == nil || res.Payload == nil || len(res.Payload.Data) == 0 {
		return "", ErrSecretEmpty
	}

	return strings.TrimSpace(string(res.Payload.Data)), nil
}

// Close releases the client. Safe on nil.
func (p *DBPasswordProviderSM) Close() error {
	if p == nil || p.Client == nil {
		return nil
	}
	return p.Client.Close()
}
