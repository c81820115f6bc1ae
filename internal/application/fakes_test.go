package application

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/weibo-supertopic-cli/internal/domain"
	"github.com/bnema/weibo-supertopic-cli/internal/ports"
)

type fakeSession struct {
	valid         bool
	catalog       []domain.Topic
	checkinOK     bool
	checkinMsg    string
	validateCalls int
	fetchCalls    int
	checkins      []string
}

func (s *fakeSession) Validate(context.Context) bool {
	s.validateCalls++
	return s.valid
}

func (s *fakeSession) FetchCatalog(context.Context) []domain.Topic {
	s.fetchCalls++
	return s.catalog
}

func (s *fakeSession) Checkin(_ context.Context, topic domain.Topic) (bool, string) {
	s.checkins = append(s.checkins, topic.ContainerID)
	return s.checkinOK, s.checkinMsg
}

type fakeSessionFactory struct {
	session *fakeSession
	err     error
}

func (f *fakeSessionFactory) New(domain.Account) (ports.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

type fakeCatalogStore struct {
	cached  map[string][]domain.Topic
	saved   map[string][]domain.Topic
	loadErr error
	saveErr error
}

func newFakeCatalogStore() *fakeCatalogStore {
	return &fakeCatalogStore{
		cached: map[string][]domain.Topic{},
		saved:  map[string][]domain.Topic{},
	}
}

func (s *fakeCatalogStore) Save(_ context.Context, accountName string, topics []domain.Topic) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved[accountName] = topics
	s.cached[accountName] = topics
	return nil
}

func (s *fakeCatalogStore) Load(_ context.Context, accountName string) ([]domain.Topic, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.cached[accountName], nil
}

type fakeResultStore struct {
	reports []domain.RunReport
	err     error
}

func (s *fakeResultStore) Save(_ context.Context, report domain.RunReport) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.reports = append(s.reports, report)
	if len(report.Outcomes) == 0 {
		return "", nil
	}
	return "/tmp/results/" + report.Account + ".json", nil
}

type fakeRunner struct {
	failures map[string]error
	reports  map[string]domain.RunReport
	calls    []runnerCall
}

type runnerCall struct {
	account string
	force   bool
}

func (r *fakeRunner) Run(_ context.Context, account domain.Account, forceRefresh bool) (domain.RunReport, error) {
	r.calls = append(r.calls, runnerCall{account: account.Name, force: forceRefresh})
	return r.reports[account.Name], r.failures[account.Name]
}

type fakeAccountSource struct {
	accounts []domain.Account
	err      error
}

func (s *fakeAccountSource) List(context.Context) ([]domain.Account, error) {
	return s.accounts, s.err
}

type countingSleeper struct {
	calls int
}

func (s *countingSleeper) Sleep(context.Context, time.Duration, time.Duration) {
	s.calls++
}

var errStoreDown = errors.New("store down")
