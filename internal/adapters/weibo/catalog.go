package weibo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/weibo-supertopic-cli/internal/domain"
)

const (
	topicsTabID = "231093_-_chaohua"

	// Courtesy delay before every listing page request.
	listDelayMin = 1 * time.Second
	listDelayMax = 3 * time.Second

	// Defensive ceiling on server-reported pagination. The service reports
	// max_page itself and the source trusted it unconditionally.
	maxCatalogPages = 100

	maxBodyBytes = 1 << 20
)

type listResponse struct {
	OK   int `json:"ok"`
	Data struct {
		MaxPage     int         `json:"max_page"`
		TotalNumber int         `json:"total_number"`
		List        []listEntry `json:"list"`
	} `json:"data"`
}

type listEntry struct {
	Title     string `json:"title"`
	OID       string `json:"oid"`
	Following bool   `json:"following"`
	Scheme    string `json:"scheme"`
}

// FetchCatalog walks the paginated listing from page 1 and returns every
// followed topic with a usable container id. It stops early on an empty
// page or when the server-reported last page is reached; a failed page
// yields whatever was accumulated so far.
func (s *Session) FetchCatalog(ctx context.Context) []domain.Topic {
	var topics []domain.Topic

	s.logger.Info("fetching topic catalog")

	maxPage := 1
	for page := 1; page <= maxPage; page++ {
		data, err := s.fetchPage(ctx, page)
		if err != nil {
			s.logger.Error("fetch catalog page failed, stopping", "page", page, "error", err)
			break
		}

		maxPage = data.Data.MaxPage
		if maxPage < 1 {
			maxPage = 1
		}
		if maxPage > maxCatalogPages {
			s.logger.Warn("server-reported page count capped", "max_page", maxPage, "cap", maxCatalogPages)
			maxPage = maxCatalogPages
		}

		accepted := acceptEntries(data.Data.List)
		topics = append(topics, accepted...)
		s.logger.Info("catalog page fetched",
			"page", page, "max_page", maxPage, "total", data.Data.TotalNumber, "followed", len(accepted))

		if len(accepted) == 0 {
			break
		}
	}

	s.logger.Info("topic catalog fetched", "topics", len(topics))
	return topics
}

func (s *Session) fetchPage(ctx context.Context, page int) (*listResponse, error) {
	s.logger.Debug("waiting before listing request", "page", page)
	s.sleeper.Sleep(ctx, listDelayMin, listDelayMax)

	endpoint := s.baseURL + "/ajax/profile/topicContent?tabid=" + topicsTabID + "&page=" + strconv.Itoa(page)
	req, err := s.newRequest(ctx, http.MethodGet, endpoint)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Referer", fmt.Sprintf("%s/u/page/follow/%s/%s", s.baseURL, s.account.UID, topicsTabID))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var data listResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode response %q: %w", strings.TrimSpace(string(body)), err)
	}
	if data.OK != 1 {
		return nil, fmt.Errorf("api error: ok=%d", data.OK)
	}

	return &data, nil
}

// acceptEntries keeps entries the account follows whose oid yields a
// non-empty container id. Duplicates across pages are kept as delivered.
func acceptEntries(entries []listEntry) []domain.Topic {
	topics := make([]domain.Topic, 0, len(entries))
	for _, entry := range entries {
		if !entry.Following {
			continue
		}

		containerID := domain.ContainerIDFromOID(entry.OID)
		if containerID == "" {
			continue
		}

		topics = append(topics, domain.Topic{
			Title:       entry.Title,
			ContainerID: containerID,
			OID:         entry.OID,
			Scheme:      domain.DecodeScheme(entry.Scheme),
		})
	}
	return topics
}
