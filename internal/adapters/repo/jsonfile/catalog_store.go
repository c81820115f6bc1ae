// Package jsonfile persists the per-account topic catalog cache and the
// per-run result documents as plain JSON files, compatible with the layout
// `supertopics_<account>.json` / `results/sign_results_<account>_<ts>.json`.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bnema/weibo-supertopic-cli/internal/domain"
	"github.com/bnema/weibo-supertopic-cli/internal/ports"
)

const (
	catalogFilePrefix = "supertopics_"
	storeDirMode      = 0o700
	storeFileMode     = 0o600
)

type topicSchema struct {
	Title       string `json:"title"`
	ContainerID string `json:"containerid"`
	OID         string `json:"oid"`
	Scheme      string `json:"scheme"`
}

type CatalogStore struct {
	dir    string
	logger *slog.Logger
}

var _ ports.CatalogStore = (*CatalogStore)(nil)

func NewCatalogStore(dir string, logger *slog.Logger) *CatalogStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogStore{dir: filepath.Clean(dir), logger: logger}
}

func (s *CatalogStore) path(accountName string) string {
	return filepath.Join(s.dir, catalogFilePrefix+accountName+".json")
}

// Save overwrites the account's cached catalog atomically.
func (s *CatalogStore) Save(ctx context.Context, accountName string, topics []domain.Topic) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries := make([]topicSchema, 0, len(topics))
	for _, topic := range topics {
		entries = append(entries, topicSchema{
			Title:       topic.Title,
			ContainerID: topic.ContainerID,
			OID:         topic.OID,
			Scheme:      topic.Scheme,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	if err := os.MkdirAll(s.dir, storeDirMode); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}

	tempFile, err := os.CreateTemp(s.dir, ".supertopics-*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temp catalog file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp catalog file: %w", err)
	}
	if err := tempFile.Chmod(storeFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp catalog file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp catalog file: %w", err)
	}

	if err := os.Rename(tempName, s.path(accountName)); err != nil {
		return fmt.Errorf("replace catalog file: %w", err)
	}
	cleanup = false

	s.logger.Info("catalog saved", "account", accountName, "topics", len(topics), "path", s.path(accountName))
	return nil
}

// Load reads the cached catalog. A missing file is a plain cache miss
// (nil, nil); an unreadable or corrupt one is reported as an error for the
// caller to log and treat as a miss.
func (s *CatalogStore) Load(ctx context.Context, accountName string) ([]domain.Topic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(accountName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var entries []topicSchema
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode catalog file: %w", err)
	}

	topics := make([]domain.Topic, 0, len(entries))
	for _, entry := range entries {
		topics = append(topics, domain.Topic{
			Title:       entry.Title,
			ContainerID: entry.ContainerID,
			OID:         entry.OID,
			Scheme:      entry.Scheme,
		})
	}

	return topics, nil
}
