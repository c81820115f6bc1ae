package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/weibo-supertopic-cli/internal/domain"
	"github.com/bnema/weibo-supertopic-cli/internal/ports"
)

const resultTimestampLayout = "20060102_150405"

type resultDocument struct {
	Account   string         `json:"account"`
	RunID     string         `json:"run_id,omitempty"`
	Timestamp string         `json:"timestamp"`
	Results   []resultSchema `json:"results"`
}

type resultSchema struct {
	Topic       string  `json:"topic"`
	ContainerID string  `json:"containerid"`
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	Timestamp   string  `json:"timestamp"`
	Elapsed     float64 `json:"elapsed"`
}

type ResultStore struct {
	dir string
}

var _ ports.ResultStore = (*ResultStore)(nil)

func NewResultStore(dir string) *ResultStore {
	return &ResultStore{dir: filepath.Clean(dir)}
}

// Save writes one immutable result document per report. The filename
// carries the account name and a fresh timestamp so runs never overwrite
// each other. Reports without outcomes write nothing.
func (s *ResultStore) Save(ctx context.Context, report domain.RunReport) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(report.Outcomes) == 0 {
		return "", nil
	}

	results := make([]resultSchema, 0, len(report.Outcomes))
	for _, outcome := range report.Outcomes {
		results = append(results, resultSchema{
			Topic:       outcome.Topic,
			ContainerID: outcome.ContainerID,
			Status:      string(outcome.Status),
			Message:     outcome.Message,
			Timestamp:   outcome.Timestamp.Format(time.RFC3339),
			Elapsed:     outcome.Elapsed.Seconds(),
		})
	}

	doc := resultDocument{
		Account:   report.Account,
		RunID:     report.RunID,
		Timestamp: report.Timestamp.Format(time.RFC3339),
		Results:   results,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode results: %w", err)
	}

	if err := os.MkdirAll(s.dir, storeDirMode); err != nil {
		return "", fmt.Errorf("create results directory: %w", err)
	}

	filename := fmt.Sprintf("sign_results_%s_%s.json", report.Account, report.Timestamp.Format(resultTimestampLayout))
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, storeFileMode); err != nil {
		return "", fmt.Errorf("write results file: %w", err)
	}

	return path, nil
}
