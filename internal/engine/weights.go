package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

// RecalculateField re-derives every vote weight on the field from the
// voters' current stakes and persists the votes together with the summed
// field weight. It returns the new total.
func (s *Service) RecalculateField(permlink, txID string) (float64, error) {
	field, err := s.objects.Field(permlink, txID)
	if err != nil {
		return 0, fmt.Errorf("load field %s on %s: %w", txID, permlink, err)
	}

	votes := make([]model.ActiveVote, len(field.ActiveVotes))
	var total float64
	for i, vote := range field.ActiveVotes {
		stake, err := s.stakes.Get(vote.Voter)
		if err != nil {
			return 0, fmt.Errorf("stake for %s: %w", vote.Voter, err)
		}
		vote.Weight = float64(vote.Percent) * stake / 10000
		votes[i] = vote
		total += vote.Weight
	}

	if err := s.objects.SetFieldState(permlink, txID, total, votes); err != nil {
		return 0, fmt.Errorf("persist field state %s on %s: %w", txID, permlink, err)
	}
	return total, nil
}

// RecalculateForVoter refreshes every field carrying an active vote from the
// account. Called when the account's stake changes: stored vote weights are
// stale from that moment on.
func (s *Service) RecalculateForVoter(ctx context.Context, voter string) error {
	objects, err := s.objects.VotedBy(voter)
	if err != nil {
		return fmt.Errorf("objects voted by %s: %w", voter, err)
	}

	for i := range objects {
		if err := ctx.Err(); err != nil {
			return err
		}
		obj := &objects[i]
		for _, field := range obj.Fields {
			if _, ok := field.VoteBy(voter); !ok {
				continue
			}
			if _, err := s.RecalculateField(obj.AuthorPermlink, field.TransactionID); err != nil {
				return err
			}
		}
		s.logger.Debug("recalculated field weights",
			zap.String("voter", voter),
			zap.String("permlink", obj.AuthorPermlink),
		)
	}
	return nil
}
