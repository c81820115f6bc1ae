package ports

import (
	"context"

	"github.com/bnema/weibo-supertopic-cli/internal/domain"
)

// Session is one account's authenticated binding to the remote service. A
// session is owned by a single account's processing and never reused.
//
// None of the operations return errors: every internal failure is logged by
// the implementation and surfaces as a false/partial/empty result.
type Session interface {
	// Validate reports whether the stored credentials are currently
	// authenticated as the account's uid.
	Validate(ctx context.Context) bool
	// FetchCatalog retrieves all followed topics across listing pages. A
	// mid-sequence page failure yields the partial prefix collected so far.
	FetchCatalog(ctx context.Context) []domain.Topic
	// Checkin performs the check-in for one topic and returns whether it
	// counts as a success plus a human-readable reason.
	Checkin(ctx context.Context, topic domain.Topic) (ok bool, message string)
}

type SessionFactory interface {
	New(account domain.Account) (Session, error)
}
