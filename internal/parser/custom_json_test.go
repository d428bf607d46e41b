package parser

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waiviolabs/hive-objects-backend/internal/engine"
	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

func newTestCustomJSONParser(ctrl *gomock.Controller, cfg CustomJSONConfig) (*CustomJSONParser, *MockActionHandler, *MockStakeStore, *MockWeightRecalculator) {
	actions := NewMockActionHandler(ctrl)
	stakes := NewMockStakeStore(ctrl)
	recalc := NewMockWeightRecalculator(ctrl)

	p, err := NewCustomJSONParser(zap.NewNop(), actions, stakes, recalc, cfg)
	if err != nil {
		panic(err)
	}
	return p, actions, stakes, recalc
}

func customJSONPayload(t *testing.T, id, inner string, postingAuths ...string) json.RawMessage {
	t.Helper()
	payload, err := json.Marshal(model.CustomJSON{
		RequiredPostingAuths: postingAuths,
		ID:                   id,
		JSON:                 inner,
	})
	require.NoError(t, err)
	return payload
}

func TestCustomJSONParser_Platform(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p, actions, _, _ := newTestCustomJSONParser(ctrl, CustomJSONConfig{PlatformEnabled: true, TokensEnabled: true})

	// The first action is malformed and skipped; the second one is applied
	// with the synthetic per-action transaction id.
	inner := `[
		{"method":"teleportObject","params":{}},
		{"method":"createObject","params":{"permlink":"obj-1","defaultName":"Obj","creator":"alice","objectType":"product"}}
	]`
	tx := &model.Transaction{TransactionID: "tx-9"}

	actions.EXPECT().
		Handle(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, op *engine.Operation, octx engine.Context) error {
			require.Equal(t, engine.MethodCreateObject, op.Method)
			require.Equal(t, "obj-1", op.CreateObject.Permlink)
			require.Equal(t, "poster", octx.Account)
			require.Equal(t, "tx-9-2-1", octx.TransactionID)
			require.Equal(t, "2026-08-31T12:00:00", octx.Timestamp)
			return nil
		})

	payload := customJSONPayload(t, customJSONIDPlatform, inner, "poster")
	require.NoError(t, p.Parse(context.Background(), tx, 2, "2026-08-31T12:00:00", payload))
}

func TestCustomJSONParser_PlatformHandlerError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p, actions, _, _ := newTestCustomJSONParser(ctrl, CustomJSONConfig{PlatformEnabled: true})

	inner := `[{"method":"createObject","params":{"permlink":"obj-1","defaultName":"Obj","creator":"alice","objectType":"product"}}]`
	actions.EXPECT().Handle(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("store down"))

	payload := customJSONPayload(t, customJSONIDPlatform, inner, "poster")
	err := p.Parse(context.Background(), &model.Transaction{TransactionID: "tx-1"}, 0, "t", payload)
	require.ErrorContains(t, err, "store down")
}

func TestCustomJSONParser_PlatformSkips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      string
		inner   string
		cfg     CustomJSONConfig
		badWire bool
	}{
		{
			name:  "payload not an action list",
			id:    customJSONIDPlatform,
			inner: `{"method":"createObject"}`,
			cfg:   CustomJSONConfig{PlatformEnabled: true},
		},
		{
			name:  "unknown id",
			id:    "sm_market",
			inner: `[]`,
			cfg:   CustomJSONConfig{PlatformEnabled: true, TokensEnabled: true},
		},
		{
			name:  "platform disabled",
			id:    customJSONIDPlatform,
			inner: `[{"method":"createObject","params":{"permlink":"obj-1","defaultName":"Obj","creator":"alice","objectType":"product"}}]`,
			cfg:   CustomJSONConfig{},
		},
		{
			name:    "malformed wire payload",
			id:      customJSONIDPlatform,
			cfg:     CustomJSONConfig{PlatformEnabled: true},
			badWire: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			p, _, _, _ := newTestCustomJSONParser(ctrl, tt.cfg)

			payload := customJSONPayload(t, tt.id, tt.inner, "poster")
			if tt.badWire {
				payload = json.RawMessage(`{"id":`)
			}

			err := p.Parse(context.Background(), &model.Transaction{TransactionID: "tx-1"}, 0, "t", payload)
			if tt.badWire {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCustomJSONParser_TokensStake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		inner   string
		prepare func(stakes *MockStakeStore, recalc *MockWeightRecalculator)
	}{
		{
			name:  "stake adds to balance and recomputes",
			inner: `{"contractName":"tokens","contractAction":"stake","contractPayload":{"symbol":"WAIV","to":"alice","quantity":"50.5"}}`,
			prepare: func(stakes *MockStakeStore, recalc *MockWeightRecalculator) {
				stakes.EXPECT().Get("alice").Return(100.0, nil)
				stakes.EXPECT().Set("alice", 150.5).Return(nil)
				recalc.EXPECT().RecalculateForVoter(gomock.Any(), "alice").Return(nil)
			},
		},
		{
			name:  "delegate counts as stake",
			inner: `{"contractName":"tokens","contractAction":"delegate","contractPayload":{"symbol":"WAIV","to":"bob","quantity":"10"}}`,
			prepare: func(stakes *MockStakeStore, recalc *MockWeightRecalculator) {
				stakes.EXPECT().Get("bob").Return(0.0, nil)
				stakes.EXPECT().Set("bob", 10.0).Return(nil)
				recalc.EXPECT().RecalculateForVoter(gomock.Any(), "bob").Return(nil)
			},
		},
		{
			name:  "zero delta skips the recompute",
			inner: `{"contractName":"tokens","contractAction":"stake","contractPayload":{"symbol":"WAIV","to":"alice","quantity":"0"}}`,
			prepare: func(stakes *MockStakeStore, _ *MockWeightRecalculator) {
				stakes.EXPECT().Get("alice").Return(100.0, nil)
				stakes.EXPECT().Set("alice", 100.0).Return(nil)
			},
		},
		{
			name:    "other symbol ignored",
			inner:   `{"contractName":"tokens","contractAction":"stake","contractPayload":{"symbol":"BEE","to":"alice","quantity":"5"}}`,
			prepare: func(_ *MockStakeStore, _ *MockWeightRecalculator) {},
		},
		{
			name:    "other contract ignored",
			inner:   `{"contractName":"market","contractAction":"stake","contractPayload":{"symbol":"WAIV","to":"alice","quantity":"5"}}`,
			prepare: func(_ *MockStakeStore, _ *MockWeightRecalculator) {},
		},
		{
			name:    "unstake ignored",
			inner:   `{"contractName":"tokens","contractAction":"unstake","contractPayload":{"symbol":"WAIV","to":"alice","quantity":"5"}}`,
			prepare: func(_ *MockStakeStore, _ *MockWeightRecalculator) {},
		},
		{
			name:    "bad quantity ignored",
			inner:   `{"contractName":"tokens","contractAction":"stake","contractPayload":{"symbol":"WAIV","to":"alice","quantity":"a lot"}}`,
			prepare: func(_ *MockStakeStore, _ *MockWeightRecalculator) {},
		},
		{
			name:    "not json ignored",
			inner:   `stake it all`,
			prepare: func(_ *MockStakeStore, _ *MockWeightRecalculator) {},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			p, _, stakes, recalc := newTestCustomJSONParser(ctrl, CustomJSONConfig{TokensEnabled: true})
			tt.prepare(stakes, recalc)

			payload := customJSONPayload(t, customJSONIDTokens, tt.inner, "broadcaster")
			require.NoError(t, p.Parse(context.Background(), &model.Transaction{TransactionID: "tx-1"}, 0, "t", payload))
		})
	}
}
