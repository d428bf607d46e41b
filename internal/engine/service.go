// Package engine applies decoded platform actions to the object store: object
// creation, field appends with uniqueness and structural validation,
// stake-weighted field voting, multi-part body reassembly and the derived
// updates that keep cached projections consistent.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Config carries the engine's tunables.
type Config struct {
	// GlobalMuteAccounts are the accounts whose mutes restrict a user
	// platform-wide.
	GlobalMuteAccounts []string
}

// Service routes decoded actions to their method handlers. Handlers reject
// invalid input silently (warn log, nil error): a bad action must never
// stall the block it arrived in.
type Service struct {
	logger       *zap.Logger
	objects      ObjectStore
	stakes       StakeStore
	pending      PendingStore
	departments  DepartmentStore
	restrictions RestrictionStore
	posts        PostChecker
	notifier     Notifier
	importer     ImportSender
	cfg          Config
	now          func() time.Time

	handlers map[Method]func(ctx context.Context, op *Operation, octx Context) error
}

func New(
	logger *zap.Logger,
	objects ObjectStore,
	stakes StakeStore,
	pending PendingStore,
	departments DepartmentStore,
	restrictions RestrictionStore,
	posts PostChecker,
	notifier Notifier,
	importer ImportSender,
	cfg Config,
) (*Service, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if objects == nil {
		return nil, errors.New("object store is required")
	}
	if stakes == nil {
		return nil, errors.New("stake store is required")
	}
	if pending == nil {
		return nil, errors.New("pending store is required")
	}
	if departments == nil {
		return nil, errors.New("department store is required")
	}
	if restrictions == nil {
		return nil, errors.New("restriction store is required")
	}
	if posts == nil {
		return nil, errors.New("post checker is required")
	}
	if notifier == nil {
		return nil, errors.New("notifier is required")
	}
	if importer == nil {
		return nil, errors.New("import sender is required")
	}

	s := &Service{
		logger:       logger.Named("engine"),
		objects:      objects,
		stakes:       stakes,
		pending:      pending,
		departments:  departments,
		restrictions: restrictions,
		posts:        posts,
		notifier:     notifier,
		importer:     importer,
		cfg:          cfg,
		now:          time.Now,
	}
	s.handlers = map[Method]func(ctx context.Context, op *Operation, octx Context) error{
		MethodCreateObject:    s.handleCreateObject,
		MethodUpdateObject:    s.handleUpdateObject,
		MethodVoteObjectField: s.handleVoteObjectField,
	}
	return s, nil
}

// Handle applies one decoded action.
func (s *Service) Handle(ctx context.Context, op *Operation, octx Context) error {
	handler, ok := s.handlers[op.Method]
	if !ok {
		return fmt.Errorf("no handler for method %q", op.Method)
	}
	return handler(ctx, op, octx)
}

// isRestricted reports whether the account is flagged as spam or muted by a
// global-mute account.
func (s *Service) isRestricted(account string) (bool, error) {
	spam, err := s.restrictions.IsSpam(account)
	if err != nil {
		return false, fmt.Errorf("spam check for %s: %w", account, err)
	}
	if spam {
		return true, nil
	}
	muted, err := s.restrictions.IsMutedByAny(account, s.cfg.GlobalMuteAccounts)
	if err != nil {
		return false, fmt.Errorf("mute check for %s: %w", account, err)
	}
	return muted, nil
}
