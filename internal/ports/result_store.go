package ports

import (
	"context"

	"github.com/bnema/weibo-supertopic-cli/internal/domain"
)

// ResultStore persists one immutable document per run report. Save returns
// the path written, or "" when the report has no outcomes and nothing was
// written.
type ResultStore interface {
	Save(ctx context.Context, report domain.RunReport) (string, error)
}
