package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

func (s *Service) handleCreateObject(ctx context.Context, op *Operation, octx Context) error {
	params := op.CreateObject
	logger := s.logger.With(
		zap.String("permlink", params.Permlink),
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
			logger.Warn("skip object creation, account restricted", zap.String("account", account))
			return nil
		}
	}

	if !model.ValidObjectType(params.ObjectType) {
		logger.Warn("skip object creation, unknown object type", zap.String("objectType", string(params.ObjectType)))
		return nil
	}

	exists, err := s.objects.Exists(params.Permlink)
	if err != nil {
		return err
	}
	if exists {
		logger.Warn("skip object creation, permlink taken")
		return nil
	}

	obj := &model.Object{
		AuthorPermlink: params.Permlink,
		Author:         octx.Account,
		Creator:        params.Creator,
		DefaultName:    params.DefaultName,
		ObjectType:     params.ObjectType,
		TransactionID:  octx.TransactionID,
	}
	if model.GroupParticipant(params.ObjectType) {
		obj.MetaGroupID = uuid.NewString()
	}

	if err := s.objects.Create(obj); err != nil {
		return fmt.Errorf("create object %s: %w", params.Permlink, err)
	}
	logger.Info("object created", zap.String("objectType", string(params.ObjectType)))

	locale := params.Locale
	if locale == "" {
		locale = "en-US"
	}
	s.seedSupposedUpdates(ctx, obj, locale)

	s.notifier.ObjectCreated(ctx, params.Creator, params.Permlink, params.ImportID)
	return nil
}

// seedSupposedUpdates queues the standard starter fields for the new
// object's type. Delivery is best effort.
func (s *Service) seedSupposedUpdates(ctx context.Context, obj *model.Object, locale string) {
	wobject := buildSupposedUpdates(obj, locale)
	if len(wobject.Fields) == 0 {
		return
	}
	if err := s.importer.Send(ctx, []model.ImportWobject{wobject}); err != nil {
		s.logger.Warn("supposed updates not queued",
			zap.String("permlink", obj.AuthorPermlink), zap.Error(err))
		return
	}
	s.logger.Info("supposed updates queued",
		zap.String("permlink", obj.AuthorPermlink), zap.Int("fields", len(wobject.Fields)))
}
