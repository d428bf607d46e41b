package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

func (s *Service) handleUpdateObject(ctx context.Context, op *Operation, octx Context) error {
	params := op.UpdateObject
	logger := s.logger.With(
		zap.String("permlink", params.ObjectPermlink),
		zap.String("field", params.Name),
		zap.String("creator", params.Creator),
		zap.String("transactionId", octx.TransactionID),
	)

	accounts := []string{octx.Account}
	if params.Creator != octx.Account {
		accounts = append(accounts, params.Creator)
	}
	for _, account := range accounts {
		restricted, err := s.isRestricted(account)
		if err != nil {
			return err
		}
		if restricted {
			logger.Warn("skip field update, account restricted", zap.String("account", account))
			return nil
		}
	}

	obj, err := s.objects.FindByPermlink(params.ObjectPermlink)
	if err != nil {
		logger.Warn("skip field update, object not found", zap.Error(err))
		return nil
	}

	field := model.Field{
		Name:          params.Name,
		Body:          params.Body,
		Locale:        params.Locale,
		Creator:       params.Creator,
		Author:        octx.Account,
		TransactionID: octx.TransactionID,
		ID:            params.ID,
		StartDate:     params.StartDate,
		EndDate:       params.EndDate,
	}

	if !uniqueAmongSameFields(obj, field) {
		logger.Warn("skip field update, duplicate of an existing field")
		return nil
	}

	ok, err := s.validateFieldBody(ctx, obj, &field)
	if err != nil {
		return err
	}
	if !ok {
		logger.Warn("skip field update, body failed validation")
		return nil
	}

	if field.Name == model.FieldHTMLContent {
		merged, err := s.reassemble(obj.AuthorPermlink, field, octx)
		if err != nil {
			return err
		}
		if merged == nil {
			// Fragment stored (or rejected); nothing to append yet.
			return nil
		}
		field = *merged
	}

	if err := s.objects.AppendField(obj.AuthorPermlink, field); err != nil {
		return fmt.Errorf("append field %s to %s: %w", field.Name, obj.AuthorPermlink, err)
	}
	logger.Info("field appended")

	return s.applyDerivedUpdates(ctx, obj.AuthorPermlink, field.TransactionID, "", 0)
}
