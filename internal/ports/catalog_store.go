package ports

import (
	"context"

	"github.com/bnema/weibo-supertopic-cli/internal/domain"
)

// CatalogStore is the durable per-account topic cache. Load returns
// (nil, nil) when no catalog has been saved yet; callers treat any load
// error as a cache miss.
type CatalogStore interface {
	Save(ctx context.Context, accountName string, topics []domain.Topic) error
	Load(ctx context.Context, accountName string) ([]domain.Topic, error)
}
