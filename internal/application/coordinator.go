package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bnema/weibo-supertopic-cli/internal/domain"
	"github.com/bnema/weibo-supertopic-cli/internal/ports"
)

const (
	// Courtesy delay between consecutive accounts, never after the last.
	accountDelayMin = 60 * time.Second
	accountDelayMax = 90 * time.Second
)

type RunOptions struct {
	// AccountName restricts the run to the account with this name,
	// case-insensitive exact match. Empty processes every account.
	AccountName string
	// UpdateTopics forces a catalog refresh for every processed account.
	UpdateTopics bool
}

type AccountResult struct {
	Account   string
	Processed bool
	Topics    int
	Successes int
}

type Summary struct {
	Accounts          []AccountResult
	SucceededAccounts int
	TotalAccounts     int
}

// Coordinator iterates the configured accounts strictly sequentially
// through an AccountRunner. One account's failure never stops the run.
type Coordinator struct {
	source  ports.AccountSource
	runner  AccountRunner
	sleeper ports.Sleeper
	logger  *slog.Logger
}

func NewCoordinator(source ports.AccountSource, runner AccountRunner, sleeper ports.Sleeper, logger *slog.Logger) *Coordinator {
	if sleeper == nil {
		sleeper = ports.RandomSleeper{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Coordinator{
		source:  source,
		runner:  runner,
		sleeper: sleeper,
		logger:  logger,
	}
}

// ListAccounts returns the configured accounts without processing them.
func (c *Coordinator) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := c.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

func (c *Coordinator) Run(ctx context.Context, opts RunOptions) (Summary, error) {
	accounts, err := c.source.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list accounts: %w", err)
	}
	if len(accounts) == 0 {
		return Summary{}, domain.ErrNoAccounts
	}

	if opts.AccountName != "" {
		accounts = filterByName(accounts, opts.AccountName)
		if len(accounts) == 0 {
			return Summary{}, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, opts.AccountName)
		}
		c.logger.Info("processing selected account", "account", opts.AccountName)
	} else {
		c.logger.Info("processing all accounts", "total", len(accounts))
	}

	if opts.UpdateTopics {
		c.logger.Info("forced topic catalog refresh enabled")
	}

	summary := Summary{TotalAccounts: len(accounts)}
	for i, account := range accounts {
		c.logger.Info("processing account", "account", account.Name, "index", i+1, "total", len(accounts))

		report, runErr := c.runner.Run(ctx, account, opts.UpdateTopics)
		if runErr != nil {
			c.logger.Error("account failed", "account", account.Name, "error", runErr)
		} else {
			summary.SucceededAccounts++
		}
		summary.Accounts = append(summary.Accounts, AccountResult{
			Account:   account.Name,
			Processed: runErr == nil,
			Topics:    len(report.Outcomes),
			Successes: report.SuccessCount(),
		})

		if i < len(accounts)-1 {
			c.logger.Debug("waiting before next account")
			c.sleeper.Sleep(ctx, accountDelayMin, accountDelayMax)
		}
	}

	c.logger.Info("run finished", "succeeded", summary.SucceededAccounts, "total", summary.TotalAccounts)
	return summary, nil
}

func filterByName(accounts []domain.Account, name string) []domain.Account {
	matched := make([]domain.Account, 0, 1)
	for _, account := range accounts {
		if strings.EqualFold(account.Name, name) {
			matched = append(matched, account)
		}
	}
	return matched
}
