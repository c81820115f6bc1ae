package ports

import (
	"context"

	"github.com/bnema/weibo-supertopic-cli/internal/domain"
)

type AccountSource interface {
	List(ctx context.Context) ([]domain.Account, error)
}
