package infra

import (
	"context"

	"catering-service/internal/domain"
)

// BlobStoreInterface is the content-addressed blob store the attachment
// lifecycle calls into. Remove is best-effort on the caller side: a failure
// is logged and never blocks the metadata-authoritative delete.
type BlobStoreInterface interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, keys []string) error
	PublicURL(key string) string
}

var _ BlobStoreInterface = (*BlobClient)(nil)

// Identity is what the identity collaborator resolves a caller token to. The
// core trusts this result for every authorization check.
type Identity struct {
	UserID      uint64             `json:"userId"`
	AccountType domain.AccountType `json:"accountType"`
}

type IdentityInterface interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

var _ IdentityInterface = (*JWTIdentity)(nil)
