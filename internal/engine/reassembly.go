package engine

import (
	"encoding/json"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

const maxBodyParts = 10

type partEnvelope struct {
	PartNumber int
	TotalParts int
	GroupID    string
	Body       string
	Rest       map[string]any
}

// parsePartEnvelope recognizes a multi-part body. A body that is not JSON, or
// JSON without all three markers, is an ordinary single body.
func parsePartEnvelope(body string) (*partEnvelope, bool) {
	var data map[string]any
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return nil, false
	}
	for _, key := range []string{"partNumber", "totalParts", "id"} {
		if _, ok := data[key]; !ok {
			return nil, false
		}
	}

	env := &partEnvelope{Rest: data}
	if n, ok := data["partNumber"].(float64); ok {
		env.PartNumber = int(n)
	}
	if n, ok := data["totalParts"].(float64); ok {
		env.TotalParts = int(n)
	}
	if id, ok := data["id"].(string); ok {
		env.GroupID = id
	}
	if inner, ok := data["body"].(string); ok {
		env.Body = inner
	}
	delete(env.Rest, "partNumber")
	delete(env.Rest, "totalParts")
	delete(env.Rest, "id")
	return env, true
}

func (e *partEnvelope) valid() bool {
	if e.GroupID == "" {
		return false
	}
	if e.TotalParts < 1 || e.TotalParts > maxBodyParts {
		return false
	}
	if e.PartNumber < 1 || e.PartNumber > maxBodyParts {
		return false
	}
	if e.TotalParts == 1 && e.PartNumber != 1 {
		return false
	}
	return e.PartNumber <= e.TotalParts
}

// reassemble folds one htmlContent update into the multi-part pipeline. It
// returns the field to append once a body is complete, or nil when the
// fragment was stored (or rejected) and the update stops here.
func (s *Service) reassemble(permlink string, field model.Field, octx Context) (*model.Field, error) {
	logger := s.logger.With(
		zap.String("permlink", permlink),
		zap.String("transactionId", octx.TransactionID),
	)

	env, isPart := parsePartEnvelope(field.Body)
	if !isPart {
		return &field, nil
	}
	if !env.valid() {
		logger.Warn("drop multi-part fragment, invalid envelope",
			zap.Int("partNumber", env.PartNumber), zap.Int("totalParts", env.TotalParts))
		return nil, nil
	}

	if env.TotalParts == 1 {
		rest, err := json.Marshal(env.Rest)
		if err != nil {
			return nil, fmt.Errorf("strip envelope of %s: %w", env.GroupID, err)
		}
		field.Body = string(rest)
		return &field, nil
	}

	stored, err := s.pending.Count(permlink, env.GroupID)
	if err != nil {
		return nil, err
	}

	if stored+1 == env.TotalParts {
		duplicate, err := s.pending.Has(permlink, env.GroupID, env.PartNumber)
		if err != nil {
			return nil, err
		}
		if duplicate {
			logger.Warn("drop multi-part fragment, part number already stored",
				zap.String("groupId", env.GroupID), zap.Int("partNumber", env.PartNumber))
			return nil, nil
		}

		parts, err := s.pending.List(permlink, env.GroupID)
		if err != nil {
			return nil, err
		}
		parts = append(parts, model.PendingPart{PartNumber: env.PartNumber, Body: env.Body})
		sort.Slice(parts, func(i, j int) bool { return parts[i].PartNumber < parts[j].PartNumber })

		var body string
		for _, p := range parts {
			body += p.Body
		}

		if err := s.pending.DeleteGroup(permlink, env.GroupID); err != nil {
			return nil, err
		}

		field.Body = body
		field.ID = env.GroupID
		logger.Info("multi-part body assembled",
			zap.String("groupId", env.GroupID), zap.Int("totalParts", env.TotalParts))
		return &field, nil
	}

	duplicate, err := s.pending.Has(permlink, env.GroupID, env.PartNumber)
	if err != nil {
		return nil, err
	}
	if duplicate {
		logger.Warn("drop multi-part fragment, part number already stored",
			zap.String("groupId", env.GroupID), zap.Int("partNumber", env.PartNumber))
		return nil, nil
	}

	err = s.pending.Put(model.PendingPart{
		AuthorPermlink: permlink,
		GroupID:        env.GroupID,
		PartNumber:     env.PartNumber,
		TotalParts:     env.TotalParts,
		Name:           field.Name,
		Body:           env.Body,
		Locale:         field.Locale,
		Creator:        field.Creator,
		Author:         field.Author,
		TransactionID:  field.TransactionID,
		CreatedAt:      s.now(),
	})
	if err != nil {
		return nil, err
	}
	return nil, nil
}
