// Package weibo implements the authenticated session against the remote
// service: login validation, the paginated super-topic listing, and the
// check-in call. Request building and response classification mirror the
// web client's ajax endpoints.
package weibo

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/bnema/weibo-supertopic-cli/internal/domain"
	"github.com/bnema/weibo-supertopic-cli/internal/ports"
)

const (
	DefaultBaseURL = "https://weibo.com"

	defaultTimeout = 30 * time.Second

	sessionUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/137.0.0.0 Safari/537.36 Edg/137.0.0.0 115Browser/35.3.0.2"

	// Response header naming the authenticated principal.
	uidHeader = "x-bypass-uid"
)

var errNoCookies = errors.New("account has no cookies")

type Config struct {
	BaseURL string
	Timeout time.Duration
	Sleeper ports.Sleeper
	Clock   ports.Clock
	Logger  *slog.Logger
}

// Factory builds one Session per account. Each session owns its own cookie
// jar and HTTP client; nothing is shared across accounts.
type Factory struct {
	cfg Config
}

var _ ports.SessionFactory = (*Factory)(nil)

func NewFactory(cfg Config) *Factory {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Sleeper == nil {
		cfg.Sleeper = ports.RandomSleeper{}
	}
	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Factory{cfg: cfg}
}

func (f *Factory) New(account domain.Account) (ports.Session, error) {
	if !account.HasCredentials() {
		return nil, errNoCookies
	}

	base, err := url.Parse(f.cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	cookies := make([]*http.Cookie, 0, len(account.Cookies))
	for name, value := range account.Cookies {
		cookies = append(cookies, &http.Cookie{Name: name, Value: value, Path: "/"})
	}
	jar.SetCookies(base, cookies)

	return &Session{
		account: account,
		baseURL: f.cfg.BaseURL,
		client:  &http.Client{Jar: jar, Timeout: f.cfg.Timeout},
		sleeper: f.cfg.Sleeper,
		clock:   f.cfg.Clock,
		logger:  f.cfg.Logger.With("account", account.Name),
	}, nil
}

type Session struct {
	account domain.Account
	baseURL string
	client  *http.Client
	sleeper ports.Sleeper
	clock   ports.Clock
	logger  *slog.Logger
}

var _ ports.Session = (*Session)(nil)

// Validate issues a GET against the landing resource and checks that the
// principal header matches the account uid. Any failure is logged and
// reported as false; this never errors out.
func (s *Session) Validate(ctx context.Context) bool {
	req, err := s.newRequest(ctx, http.MethodGet, s.baseURL+"/")
	if err != nil {
		s.logger.Error("login check: build request", "error", err)
		return false
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("login check failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("login check failed", "status", resp.StatusCode)
		return false
	}

	if got := resp.Header.Get(uidHeader); got != s.account.UID {
		s.logger.Error("login check failed: uid mismatch", "header_uid", got)
		return false
	}

	s.logger.Info("login ok")
	return true
}

func (s *Session) newRequest(ctx context.Context, method, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", sessionUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	req.Header.Set("Connection", "keep-alive")

	return req, nil
}
