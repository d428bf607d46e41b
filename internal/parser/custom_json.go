package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/waiviolabs/hive-objects-backend/internal/engine"
	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

const (
	customJSONIDPlatform = "waivio_operations"
	customJSONIDTokens   = "ssc-mainnet-hive"

	tokenContract       = "tokens"
	tokenActionStake    = "stake"
	tokenActionDelegate = "delegate"
	tokenSymbol         = "WAIV"
)

// CustomJSONConfig enables or disables the per-id handlers.
type CustomJSONConfig struct {
	PlatformEnabled bool
	TokensEnabled   bool
}

// CustomJSONParser is the level-2 dispatcher: custom_json payloads are routed
// by id. Unknown ids are not an error; the ledger carries plenty of ids this
// service does not care about.
type CustomJSONParser struct {
	logger *zap.Logger
	engine ActionHandler
	stakes StakeStore
	recalc WeightRecalculator
	cfg    CustomJSONConfig
}

func NewCustomJSONParser(
	logger *zap.Logger,
	actions ActionHandler,
	stakes StakeStore,
	recalc WeightRecalculator,
	cfg CustomJSONConfig,
) (*CustomJSONParser, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if actions == nil {
		return nil, errors.New("action handler is required")
	}
	if stakes == nil {
		return nil, errors.New("stake store is required")
	}
	if recalc == nil {
		return nil, errors.New("weight recalculator is required")
	}
	return &CustomJSONParser{
		logger: logger.Named("custom-json"),
		engine: actions,
		stakes: stakes,
		recalc: recalc,
		cfg:    cfg,
	}, nil
}

func (p *CustomJSONParser) Parse(ctx context.Context, tx *model.Transaction, opIndex int, timestamp string, payload json.RawMessage) error {
	var cj model.CustomJSON
	if err := json.Unmarshal(payload, &cj); err != nil {
		return fmt.Errorf("decode custom_json payload: %w", err)
	}

	switch cj.ID {
	case customJSONIDPlatform:
		if !p.cfg.PlatformEnabled {
			return nil
		}
		return p.parsePlatform(ctx, &cj, tx, opIndex, timestamp)
	case customJSONIDTokens:
		if !p.cfg.TokensEnabled {
			return nil
		}
		return p.parseTokens(ctx, &cj)
	default:
		return nil
	}
}

// parsePlatform applies the action list of a waivio_operations payload.
// Malformed actions are skipped; a handler error aborts the list so the
// block is retried.
func (p *CustomJSONParser) parsePlatform(ctx context.Context, cj *model.CustomJSON, tx *model.Transaction, opIndex int, timestamp string) error {
	var actions []json.RawMessage
	if err := json.Unmarshal([]byte(cj.JSON), &actions); err != nil {
		p.logger.Warn("platform payload is not an action list",
			zap.String("transaction", tx.TransactionID),
			zap.Error(err),
		)
		return nil
	}

	account := cj.Account()
	for i, raw := range actions {
		op, err := engine.DecodeOperation(raw)
		if err != nil {
			p.logger.Warn("skipping invalid action",
				zap.String("transaction", tx.TransactionID),
				zap.Int("action", i),
				zap.Error(err),
			)
			continue
		}

		octx := engine.Context{
			Account:       account,
			TransactionID: fmt.Sprintf("%s-%d-%d", tx.TransactionID, opIndex, i),
			Timestamp:     timestamp,
		}
		if err := p.engine.Handle(ctx, op, octx); err != nil {
			return fmt.Errorf("apply %s action %d of %s: %w", op.Method, i, tx.TransactionID, err)
		}
	}
	return nil
}

// parseTokens tracks WAIV staking. Only stake and delegate actions of the
// tokens contract move balances here; the receiving account gets the
// quantity added and its stored vote weights recomputed.
func (p *CustomJSONParser) parseTokens(ctx context.Context, cj *model.CustomJSON) error {
	var contract struct {
		ContractName    string `json:"contractName"`
		ContractAction  string `json:"contractAction"`
		ContractPayload *struct {
			Symbol   string `json:"symbol"`
			To       string `json:"to"`
			Quantity string `json:"quantity"`
		} `json:"contractPayload"`
	}
	if err := json.Unmarshal([]byte(cj.JSON), &contract); err != nil {
		return nil
	}

	if contract.ContractName != tokenContract || contract.ContractPayload == nil {
		return nil
	}
	if contract.ContractAction != tokenActionStake && contract.ContractAction != tokenActionDelegate {
		return nil
	}

	payload := contract.ContractPayload
	if payload.Symbol != tokenSymbol || payload.To == "" || payload.Quantity == "" {
		return nil
	}
	delta, err := strconv.ParseFloat(payload.Quantity, 64)
	if err != nil || math.IsNaN(delta) {
		return nil
	}

	current, err := p.stakes.Get(payload.To)
	if err != nil {
		return fmt.Errorf("read stake of %s: %w", payload.To, err)
	}
	next := current + delta
	if err := p.stakes.Set(payload.To, next); err != nil {
		return fmt.Errorf("store stake of %s: %w", payload.To, err)
	}
	p.logger.Info("stake updated",
		zap.String("account", payload.To),
		zap.Float64("stake", next),
		zap.Float64("delta", delta),
	)

	if next == current {
		return nil
	}
	return p.recalc.RecalculateForVoter(ctx, payload.To)
}
