package application

import (
	"context"
	"testing"

	"github.com/bnema/weibo-supertopic-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeAccounts() []domain.Account {
	return []domain.Account{
		{Name: "main", UID: "1", Cookies: map[string]string{"SUB": "a"}},
		{Name: "alt", UID: "2", Cookies: map[string]string{"SUB": "b"}},
		{Name: "spare", UID: "3", Cookies: map[string]string{"SUB": "c"}},
	}
}

func TestCoordinatorProcessesAllAccountsSequentially(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		failures: map[string]error{"alt": domain.ErrSessionInvalid},
		reports: map[string]domain.RunReport{
			"main": {Account: "main", Outcomes: []domain.CheckinOutcome{{Status: domain.CheckinSuccess}}},
		},
	}
	sleeper := &countingSleeper{}
	coordinator := NewCoordinator(&fakeAccountSource{accounts: threeAccounts()}, runner, sleeper, testLogger())

	summary, err := coordinator.Run(context.Background(), RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalAccounts)
	assert.Equal(t, 2, summary.SucceededAccounts)
	require.Len(t, summary.Accounts, 3)
	assert.Equal(t, "main", summary.Accounts[0].Account)
	assert.True(t, summary.Accounts[0].Processed)
	assert.Equal(t, 1, summary.Accounts[0].Successes)
	assert.False(t, summary.Accounts[1].Processed)

	// strict order, and a delay between accounts but not after the last
	assert.Equal(t, []runnerCall{
		{account: "main"}, {account: "alt"}, {account: "spare"},
	}, runner.calls)
	assert.Equal(t, 2, sleeper.calls)
}

func TestCoordinatorSingleAccountSkipsDelay(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	sleeper := &countingSleeper{}
	coordinator := NewCoordinator(&fakeAccountSource{accounts: threeAccounts()[:1]}, runner, sleeper, testLogger())

	_, err := coordinator.Run(context.Background(), RunOptions{})
	require.NoError(t, err)
	assert.Zero(t, sleeper.calls)
}

func TestCoordinatorFilterMatchesCaseInsensitively(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	coordinator := NewCoordinator(&fakeAccountSource{accounts: threeAccounts()}, runner, &countingSleeper{}, testLogger())

	summary, err := coordinator.Run(context.Background(), RunOptions{AccountName: "ALT"})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalAccounts)
	assert.Equal(t, []runnerCall{{account: "alt"}}, runner.calls)
}

func TestCoordinatorFilterWithoutMatchAborts(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	coordinator := NewCoordinator(&fakeAccountSource{accounts: threeAccounts()}, runner, &countingSleeper{}, testLogger())

	_, err := coordinator.Run(context.Background(), RunOptions{AccountName: "ghost"})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.Empty(t, runner.calls)
}

func TestCoordinatorNoAccounts(t *testing.T) {
	t.Parallel()

	coordinator := NewCoordinator(&fakeAccountSource{}, &fakeRunner{}, &countingSleeper{}, testLogger())

	_, err := coordinator.Run(context.Background(), RunOptions{})
	require.ErrorIs(t, err, domain.ErrNoAccounts)
}

func TestCoordinatorSourceErrorPropagates(t *testing.T) {
	t.Parallel()

	coordinator := NewCoordinator(&fakeAccountSource{err: errStoreDown}, &fakeRunner{}, &countingSleeper{}, testLogger())

	_, err := coordinator.Run(context.Background(), RunOptions{})
	require.ErrorIs(t, err, errStoreDown)
}

func TestCoordinatorPropagatesUpdateTopics(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	coordinator := NewCoordinator(&fakeAccountSource{accounts: threeAccounts()[:1]}, runner, &countingSleeper{}, testLogger())

	_, err := coordinator.Run(context.Background(), RunOptions{UpdateTopics: true})
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	assert.True(t, runner.calls[0].force)
}

func TestCoordinatorListAccounts(t *testing.T) {
	t.Parallel()

	coordinator := NewCoordinator(&fakeAccountSource{accounts: threeAccounts()}, &fakeRunner{}, &countingSleeper{}, testLogger())

	accounts, err := coordinator.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 3)
}
