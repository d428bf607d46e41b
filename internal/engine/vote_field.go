package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

func (s *Service) handleVoteObjectField(ctx context.Context, op *Operation, octx Context) error {
	params := op.VoteObjectField
	logger := s.logger.With(
		zap.String("permlink", params.ObjectPermlink),
		zap.String("fieldTransactionId", params.FieldTransactionID),
		zap.String("voter", octx.Account),
		zap.Int64("percent", params.Percent),
	)

	field, err := s.objects.Field(params.ObjectPermlink, params.FieldTransactionID)
	if err != nil {
		logger.Warn("skip field vote, field not found", zap.Error(err))
		return nil
	}
	totalBefore := field.Weight

	stake, err := s.stakes.Get(octx.Account)
	if err != nil {
		return fmt.Errorf("stake for %s: %w", octx.Account, err)
	}
	voteWeight := float64(params.Percent) * stake / 10000

	vote := model.ActiveVote{
		Voter:     octx.Account,
		Percent:   params.Percent,
		Weight:    voteWeight,
		Timestamp: octx.Timestamp,
	}
	if err := s.objects.UpsertVote(params.ObjectPermlink, params.FieldTransactionID, vote); err != nil {
		return fmt.Errorf("upsert vote on %s: %w", params.FieldTransactionID, err)
	}

	total, err := s.RecalculateField(params.ObjectPermlink, params.FieldTransactionID)
	if err != nil {
		return err
	}
	logger.Info("field vote applied", zap.Float64("weight", total))

	if s.updateRejected(params, field, octx.Account, voteWeight, total, totalBefore) {
		s.notifier.RejectUpdate(ctx, field.Creator, params.ObjectPermlink, field.Name)
	}

	return s.applyDerivedUpdates(ctx, params.ObjectPermlink, params.FieldTransactionID, octx.Account, params.Percent)
}

// updateRejected reports whether this vote pushed the field weight below
// zero. The creator gets notified exactly once, at the crossing point: a
// non-creator downvote flips a previously non-negative total while the
// creator still holds a positive vote.
func (s *Service) updateRejected(params *VoteObjectFieldParams, field *model.Field, voter string, voteWeight, total, totalBefore float64) bool {
	if voter == field.Creator || voteWeight > 0 {
		return false
	}
	if total >= 0 || totalBefore < 0 {
		return false
	}
	creatorVote, ok := field.VoteBy(field.Creator)
	return ok && creatorVote.Weight > 0
}
