package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
	"github.com/waiviolabs/hive-objects-backend/pkg/batcher"
)

const (
	importFlushSize     = 20
	importFlushInterval = 5 * time.Second
	importRPS           = 1
	importTimeout       = 30 * time.Second
)

// ImportClient queues seeded field updates and posts them to the
// import-updates service in batches. A disabled client accepts and drops
// everything so callers never need to branch.
type ImportClient struct {
	logger     *zap.Logger
	enabled    bool
	url        string
	apiKey     string
	httpClient *http.Client
	batch      *batcher.Batcher[model.ImportWobject]
}

func NewImportClient(logger *zap.Logger, url, apiKey string, enabled bool) (*ImportClient, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if enabled && url == "" {
		return nil, errors.New("url is required when import updates are enabled")
	}

	c := &ImportClient{
		logger:     logger.Named("import-updates"),
		enabled:    enabled,
		url:        url,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: importTimeout},
	}
	c.batch = batcher.New[model.ImportWobject](c.logger, c.flush, importFlushSize, importFlushInterval, importRPS)
	return c, nil
}

// Start begins background flushing. No-op when disabled.
func (c *ImportClient) Start(ctx context.Context) {
	if !c.enabled {
		return
	}
	c.batch.Start(ctx)
}

func (c *ImportClient) Stop() {
	if !c.enabled {
		return
	}
	c.batch.Stop()
}

// Send queues the wobjects for the next batch flush.
func (c *ImportClient) Send(ctx context.Context, wobjects []model.ImportWobject) error {
	if !c.enabled {
		return nil
	}
	for _, w := range wobjects {
		if err := c.batch.Add(ctx, w); err != nil {
			return fmt.Errorf("queue import update for %s: %w", w.AuthorPermlink, err)
		}
	}
	return nil
}

func (c *ImportClient) flush(ctx context.Context, wobjects []model.ImportWobject) error {
	body, err := json.Marshal(map[string]any{
		"wobjects":    wobjects,
		"immediately": true,
	})
	if err != nil {
		return fmt.Errorf("encode import request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build import request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post import updates: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("import updates: unexpected status %d", resp.StatusCode)
	}

	c.logger.Debug("import updates sent", zap.Int("wobjects", len(wobjects)))
	return nil
}
