package parser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

func newTestProcessor(ctrl *gomock.Controller) (*Processor, *MockBlockSource, *MockCursor, *MockBlockParser, *MockPendingJanitor, *MockMetrics) {
	source := NewMockBlockSource(ctrl)
	cursor := NewMockCursor(ctrl)
	blockParser := NewMockBlockParser(ctrl)
	janitor := NewMockPendingJanitor(ctrl)
	metrics := NewMockMetrics(ctrl)

	p, err := NewProcessor(zap.NewNop(), source, cursor, blockParser, janitor, metrics)
	if err != nil {
		panic(err)
	}
	return p, source, cursor, blockParser, janitor, metrics
}

func TestNewProcessor_Validation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := NewMockBlockSource(ctrl)
	cursor := NewMockCursor(ctrl)
	blockParser := NewMockBlockParser(ctrl)
	janitor := NewMockPendingJanitor(ctrl)
	metrics := NewMockMetrics(ctrl)

	_, err := NewProcessor(nil, source, cursor, blockParser, janitor, metrics)
	require.EqualError(t, err, "logger is required")

	_, err = NewProcessor(zap.NewNop(), nil, cursor, blockParser, janitor, metrics)
	require.EqualError(t, err, "block source is required")

	_, err = NewProcessor(zap.NewNop(), source, cursor, blockParser, nil, metrics)
	require.EqualError(t, err, "pending janitor is required")
}

func TestProcessor_ProcessNext(t *testing.T) {
	t.Parallel()

	block := &model.SignedBlock{
		Timestamp:    "2026-08-31T12:00:00",
		Transactions: []model.Transaction{{TransactionID: "tx1"}},
	}

	tests := []struct {
		name    string
		prepare func(source *MockBlockSource, cursor *MockCursor, blockParser *MockBlockParser, metrics *MockMetrics)
		wantErr string
	}{
		{
			name: "parses and advances",
			prepare: func(source *MockBlockSource, cursor *MockCursor, blockParser *MockBlockParser, metrics *MockMetrics) {
				cursor.EXPECT().Next().Return(uint64(100), nil)
				source.EXPECT().GetBlock(gomock.Any(), uint64(100)).Return(block, nil)
				blockParser.EXPECT().ParseBlock(gomock.Any(), block).Return(nil)
				metrics.EXPECT().ObserveBlock(nil, uint64(100), gomock.Any())
				cursor.EXPECT().Advance(uint64(101)).Return(nil)
			},
		},
		{
			name: "empty block advances without parsing",
			prepare: func(source *MockBlockSource, cursor *MockCursor, _ *MockBlockParser, metrics *MockMetrics) {
				cursor.EXPECT().Next().Return(uint64(100), nil)
				source.EXPECT().GetBlock(gomock.Any(), uint64(100)).Return(&model.SignedBlock{}, nil)
				metrics.EXPECT().ObserveBlock(nil, uint64(100), gomock.Any())
				cursor.EXPECT().Advance(uint64(101)).Return(nil)
			},
		},
		{
			name: "unproduced block keeps the cursor",
			prepare: func(source *MockBlockSource, cursor *MockCursor, _ *MockBlockParser, _ *MockMetrics) {
				cursor.EXPECT().Next().Return(uint64(100), nil)
				source.EXPECT().GetBlock(gomock.Any(), uint64(100)).Return(nil, nil)
			},
			wantErr: "block 100 not produced yet",
		},
		{
			name: "fetch failure is observed and retried",
			prepare: func(source *MockBlockSource, cursor *MockCursor, _ *MockBlockParser, metrics *MockMetrics) {
				cursor.EXPECT().Next().Return(uint64(100), nil)
				source.EXPECT().GetBlock(gomock.Any(), uint64(100)).Return(nil, errors.New("rpc down"))
				metrics.EXPECT().ObserveBlock(gomock.Any(), uint64(100), gomock.Any())
			},
			wantErr: "fetch block 100",
		},
		{
			name: "parse failure keeps the cursor",
			prepare: func(source *MockBlockSource, cursor *MockCursor, blockParser *MockBlockParser, metrics *MockMetrics) {
				cursor.EXPECT().Next().Return(uint64(100), nil)
				source.EXPECT().GetBlock(gomock.Any(), uint64(100)).Return(block, nil)
				blockParser.EXPECT().ParseBlock(gomock.Any(), block).Return(errors.New("boom"))
				metrics.EXPECT().ObserveBlock(gomock.Any(), uint64(100), gomock.Any())
			},
			wantErr: "parse block 100",
		},
		{
			name: "cursor read failure",
			prepare: func(_ *MockBlockSource, cursor *MockCursor, _ *MockBlockParser, _ *MockMetrics) {
				cursor.EXPECT().Next().Return(uint64(0), errors.New("corrupt"))
			},
			wantErr: "read cursor",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			p, source, cursor, blockParser, _, metrics := newTestProcessor(ctrl)
			tt.prepare(source, cursor, blockParser, metrics)

			err := p.processNext(context.Background())
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestProcessor_SweepPending(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p, _, _, _, janitor, _ := newTestProcessor(ctrl)

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	janitor.EXPECT().PurgeExpired(now.Add(-pendingMaxAge)).Return(3, nil)
	p.sweepPending()

	// Within the interval nothing runs.
	now = now.Add(30 * time.Minute)
	p.sweepPending()

	// Past the interval the sweep fires again with the shifted deadline.
	now = now.Add(31 * time.Minute)
	janitor.EXPECT().PurgeExpired(now.Add(-pendingMaxAge)).Return(0, nil)
	p.sweepPending()
}

func TestProcessor_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p, _, _, _, _, _ := newTestProcessor(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, p.Run(ctx), context.Canceled)
}
