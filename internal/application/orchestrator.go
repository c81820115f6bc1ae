package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bnema/weibo-supertopic-cli/internal/domain"
	"github.com/bnema/weibo-supertopic-cli/internal/ports"
	"github.com/google/uuid"
)

// AccountRunner processes one account end to end. A returned error is
// terminal for the account only, never for the run.
type AccountRunner interface {
	Run(ctx context.Context, account domain.Account, forceRefresh bool) (domain.RunReport, error)
}

// Orchestrator drives one account through the full sequence: validate the
// session, resolve the topic catalog, check into every topic, persist the
// outcomes.
type Orchestrator struct {
	sessions ports.SessionFactory
	catalogs ports.CatalogStore
	results  ports.ResultStore
	clock    ports.Clock
	logger   *slog.Logger
}

var _ AccountRunner = (*Orchestrator)(nil)

func NewOrchestrator(sessions ports.SessionFactory, catalogs ports.CatalogStore, results ports.ResultStore, clock ports.Clock, logger *slog.Logger) *Orchestrator {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		sessions: sessions,
		catalogs: catalogs,
		results:  results,
		clock:    clock,
		logger:   logger,
	}
}

func (o *Orchestrator) Run(ctx context.Context, account domain.Account, forceRefresh bool) (domain.RunReport, error) {
	logger := o.logger.With("account", account.Name)

	if !account.HasCredentials() {
		return domain.RunReport{}, fmt.Errorf("%w: no cookies configured", domain.ErrSessionInvalid)
	}

	session, err := o.sessions.New(account)
	if err != nil {
		return domain.RunReport{}, fmt.Errorf("create session: %w", err)
	}

	// The session logs the concrete validation failure itself.
	if !session.Validate(ctx) {
		return domain.RunReport{}, domain.ErrSessionInvalid
	}

	topics := o.resolveCatalog(ctx, logger, session, account, forceRefresh)
	if len(topics) == 0 {
		return domain.RunReport{}, domain.ErrCatalogUnavailable
	}

	logger.Info("starting check-in", "topics", len(topics))

	outcomes := make([]domain.CheckinOutcome, 0, len(topics))
	successes := 0
	for i, topic := range topics {
		logger.Info("check-in progress", "current", i+1, "total", len(topics), "topic", topic.Title)

		start := o.clock.Now()
		ok, message := session.Checkin(ctx, topic)
		finished := o.clock.Now()

		status := domain.CheckinFailed
		if ok {
			status = domain.CheckinSuccess
			successes++
		}

		outcomes = append(outcomes, domain.CheckinOutcome{
			Topic:       topic.Title,
			ContainerID: topic.ContainerID,
			Status:      status,
			Message:     message,
			Timestamp:   finished,
			Elapsed:     finished.Sub(start),
		})
	}

	logger.Info("check-in finished", "success", successes, "total", len(topics))

	report := domain.RunReport{
		Account:   account.Name,
		RunID:     uuid.NewString(),
		Timestamp: o.clock.Now(),
		Outcomes:  outcomes,
	}

	// Persisting the report is best effort: a storage failure is logged but
	// does not turn a processed account into a failed one.
	if path, err := o.results.Save(ctx, report); err != nil {
		logger.Error("save run results", "error", err)
	} else if path != "" {
		logger.Info("run results saved", "path", path)
	}

	return report, nil
}

// resolveCatalog applies the cache policy: a forced refresh fetches
// immediately, otherwise the cache is tried first; any empty intermediate
// result falls through to a fresh fetch. Fetched non-empty catalogs are
// persisted for the next run.
func (o *Orchestrator) resolveCatalog(ctx context.Context, logger *slog.Logger, session ports.Session, account domain.Account, forceRefresh bool) []domain.Topic {
	var topics []domain.Topic

	if forceRefresh {
		logger.Info("forced catalog refresh requested")
		topics = o.fetchAndPersist(ctx, logger, session, account)
	} else {
		cached, err := o.catalogs.Load(ctx, account.Name)
		if err != nil {
			logger.Warn("load cached catalog", "error", err)
		} else if len(cached) > 0 {
			logger.Info("using cached catalog", "topics", len(cached))
			topics = cached
		}
	}

	if len(topics) == 0 {
		if !forceRefresh {
			logger.Warn("catalog cache missing or empty, fetching")
		}
		topics = o.fetchAndPersist(ctx, logger, session, account)
	}

	return topics
}

func (o *Orchestrator) fetchAndPersist(ctx context.Context, logger *slog.Logger, session ports.Session, account domain.Account) []domain.Topic {
	topics := session.FetchCatalog(ctx)
	if len(topics) == 0 {
		return nil
	}

	if err := o.catalogs.Save(ctx, account.Name, topics); err != nil {
		logger.Error("save catalog", "error", err)
	}

	return topics
}
