package parser

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

const opCustomJSON = "custom_json"

// Config enables or disables individual operation handlers.
type Config struct {
	CustomJSONEnabled bool
}

type operationHandler func(ctx context.Context, tx *model.Transaction, opIndex int, timestamp string, payload json.RawMessage) error

// Parser is the level-1 dispatcher: ledger operations are routed by name.
// A failing operation is logged and skipped so one bad payload cannot stall
// its block.
type Parser struct {
	logger   *zap.Logger
	metrics  Metrics
	handlers map[string]operationHandler
}

func NewParser(logger *zap.Logger, customJSON *CustomJSONParser, metrics Metrics, cfg Config) (*Parser, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if customJSON == nil {
		return nil, errors.New("custom json parser is required")
	}
	if metrics == nil {
		return nil, errors.New("metrics is required")
	}

	p := &Parser{
		logger:   logger.Named("block-parser"),
		metrics:  metrics,
		handlers: make(map[string]operationHandler),
	}
	if cfg.CustomJSONEnabled {
		p.handlers[opCustomJSON] = customJSON.Parse
	}
	return p, nil
}

// ParseBlock walks every operation of every transaction in ledger order.
func (p *Parser) ParseBlock(ctx context.Context, block *model.SignedBlock) error {
	for t := range block.Transactions {
		tx := &block.Transactions[t]
		for i := range tx.Operations {
			op := &tx.Operations[i]
			handler, ok := p.handlers[op.Name]
			if !ok {
				continue
			}

			err := handler(ctx, tx, i, block.Timestamp, op.Payload)
			p.metrics.ObserveOperation(op.Name, err)
			if err != nil {
				p.logger.Error("operation handler failed",
					zap.String("kind", op.Name),
					zap.String("transaction", tx.TransactionID),
					zap.Int("index", i),
					zap.Error(err),
				)
			}
		}
	}
	return ctx.Err()
}
