// Package hive is the JSON-RPC client for ledger nodes. Every call picks its
// endpoint through the node selector and reports back how the endpoint
// behaved.
package hive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

const (
	methodGetBlock       = "condenser_api.get_block"
	methodGetContent     = "condenser_api.get_content"
	methodGetActiveVotes = "condenser_api.get_active_votes"
	methodGetDiscussion  = "bridge.get_discussion"
)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// Client talks JSON-RPC 2.0 to whichever node the picker currently favors.
type Client struct {
	httpClient *http.Client
	picker     NodePicker
	metrics    Metrics
	rl         ratelimit.Limiter
	logger     *zap.Logger
	timeout    time.Duration
}

func NewClient(picker NodePicker, metrics Metrics, logger *zap.Logger, timeout time.Duration, rps int) (*Client, error) {
	if picker == nil {
		return nil, errors.New("node picker is required")
	}
	if metrics == nil {
		return nil, errors.New("metrics is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if timeout <= 0 {
		return nil, errors.New("timeout must be positive")
	}
	if rps <= 0 {
		return nil, errors.New("rps must be positive")
	}
	return &Client{
		httpClient: &http.Client{},
		picker:     picker,
		metrics:    metrics,
		rl:         ratelimit.New(rps),
		logger:     logger.Named("hive-client"),
		timeout:    timeout,
	}, nil
}

// GetBlock fetches the block at the given height. A block the chain has not
// produced yet comes back as (nil, nil).
func (c *Client) GetBlock(ctx context.Context, height uint64) (*model.SignedBlock, error) {
	var block *model.SignedBlock
	if err := c.call(ctx, methodGetBlock, []any{height}, &block); err != nil {
		return nil, err
	}
	return block, nil
}

// GetContent fetches one post by author and permlink.
func (c *Client) GetContent(ctx context.Context, author, permlink string) (*Content, error) {
	var content Content
	if err := c.call(ctx, methodGetContent, []any{author, permlink}, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// GetActiveVotes fetches the current vote list of one post.
func (c *Client) GetActiveVotes(ctx context.Context, author, permlink string) ([]LedgerVote, error) {
	var votes []LedgerVote
	if err := c.call(ctx, methodGetActiveVotes, []any{author, permlink}, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}

// GetDiscussion fetches the whole discussion tree of one post, keyed by
// "author/permlink".
func (c *Client) GetDiscussion(ctx context.Context, author, permlink string) (map[string]Content, error) {
	params := map[string]string{"author": author, "permlink": permlink}
	var discussion map[string]Content
	if err := c.call(ctx, methodGetDiscussion, []any{params}, &discussion); err != nil {
		return nil, err
	}
	return discussion, nil
}

func (c *Client) call(ctx context.Context, method string, params, out any) (err error) {
	c.rl.Take()

	url, err := c.picker.BestURL()
	if err != nil {
		return fmt.Errorf("pick node: %w", err)
	}

	started := time.Now()
	defer func() {
		c.picker.RecordRequest(url, time.Since(started), err != nil)
		c.metrics.Observe(method, err, started)
	}()

	payload, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("encode %s request: %w", method, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s via %s: %w", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s via %s: unexpected status %d", method, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("%s rpc error %d: %s", method, rpcResp.Error.Code, rpcResp.Error.Message)
	}

	if out == nil || len(rpcResp.Result) == 0 || bytes.Equal(rpcResp.Result, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}
