// Package parser drives sequential block ingestion: it walks the chain one
// height at a time through the persisted cursor, routes ledger operations to
// their handlers and sweeps expired multi-part fragments.
package parser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/waiviolabs/hive-objects-backend/internal/clock"
)

const (
	blockRetrySleep      = 2 * time.Second
	pendingSweepInterval = time.Hour
	pendingMaxAge        = 24 * time.Hour
)

// Processor owns the ingestion loop.
type Processor struct {
	logger  *zap.Logger
	source  BlockSource
	cursor  Cursor
	parser  BlockParser
	janitor PendingJanitor
	metrics Metrics
	now     func() time.Time

	nextSweep time.Time
}

func NewProcessor(
	logger *zap.Logger,
	source BlockSource,
	cursor Cursor,
	blockParser BlockParser,
	janitor PendingJanitor,
	metrics Metrics,
) (*Processor, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if source == nil {
		return nil, errors.New("block source is required")
	}
	if cursor == nil {
		return nil, errors.New("cursor is required")
	}
	if blockParser == nil {
		return nil, errors.New("block parser is required")
	}
	if janitor == nil {
		return nil, errors.New("pending janitor is required")
	}
	if metrics == nil {
		return nil, errors.New("metrics is required")
	}
	return &Processor{
		logger:  logger.Named("processor"),
		source:  source,
		cursor:  cursor,
		parser:  blockParser,
		janitor: janitor,
		metrics: metrics,
		now:     time.Now,
	}, nil
}

// Run processes blocks sequentially until the context is canceled. A block
// that cannot be fetched or parsed is retried at the same height after a
// short sleep, so handlers must tolerate redelivery of operations from a
// partially processed block.
func (p *Processor) Run(ctx context.Context) error {
	p.logger.Info("ingestion started")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.sweepPending()

		if err := p.processNext(ctx); err != nil {
			p.logger.Warn("block processing failed", zap.Error(err))
			if err := clock.SleepWithContext(ctx, blockRetrySleep); err != nil {
				return err
			}
		}
	}
}

func (p *Processor) processNext(ctx context.Context) error {
	height, err := p.cursor.Next()
	if err != nil {
		return fmt.Errorf("read cursor: %w", err)
	}

	started := p.now()
	block, err := p.source.GetBlock(ctx, height)
	if err != nil {
		p.metrics.ObserveBlock(err, height, started)
		return fmt.Errorf("fetch block %d: %w", height, err)
	}
	if block == nil {
		return fmt.Errorf("block %d not produced yet", height)
	}

	if len(block.Transactions) == 0 {
		p.logger.Info("empty block", zap.Uint64("height", height))
		p.metrics.ObserveBlock(nil, height, started)
		return p.cursor.Advance(height + 1)
	}

	if err := p.parser.ParseBlock(ctx, block); err != nil {
		p.metrics.ObserveBlock(err, height, started)
		return fmt.Errorf("parse block %d: %w", height, err)
	}
	p.metrics.ObserveBlock(nil, height, started)
	p.logger.Debug("block processed",
		zap.Uint64("height", height),
		zap.Int("transactions", len(block.Transactions)),
		zap.Duration("took", p.now().Sub(started)),
	)

	return p.cursor.Advance(height + 1)
}

// sweepPending purges fragments older than pendingMaxAge once per interval.
// A failed sweep is logged and retried on the next interval.
func (p *Processor) sweepPending() {
	now := p.now()
	if now.Before(p.nextSweep) {
		return
	}
	p.nextSweep = now.Add(pendingSweepInterval)

	removed, err := p.janitor.PurgeExpired(now.Add(-pendingMaxAge))
	if err != nil {
		p.logger.Warn("pending sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		p.logger.Info("purged stale pending parts", zap.Int("removed", removed))
	}
}
