package engine

import (
	"encoding/json"
	"fmt"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

// Method names the platform actions carried inside custom_json payloads.
type Method string

const (
	MethodCreateObject    Method = "createObject"
	MethodUpdateObject    Method = "updateObject"
	MethodVoteObjectField Method = "voteObjectField"
)

type CreateObjectParams struct {
	Permlink    string           `json:"permlink"`
	DefaultName string           `json:"defaultName"`
	Creator     string           `json:"creator"`
	ObjectType  model.ObjectType `json:"objectType"`
	Locale      string           `json:"locale,omitempty"`
	ImportID    string           `json:"importId,omitempty"`
}

type UpdateObjectParams struct {
	ObjectPermlink string `json:"objectPermlink"`
	Name           string `json:"name"`
	Locale         string `json:"locale,omitempty"`
	Body           string `json:"body"`
	Creator        string `json:"creator"`
	// ID pairs tag categories with their items; most updates omit it.
	ID string `json:"id,omitempty"`
	// Unix milliseconds; only time-limited fields (sale, promotion) set them.
	StartDate int64 `json:"startDate,omitempty"`
	EndDate   int64 `json:"endDate,omitempty"`
}

type VoteObjectFieldParams struct {
	ObjectPermlink     string `json:"objectPermlink"`
	FieldTransactionID string `json:"fieldTransactionId"`
	// Signed vote strength in [-10000, 10000]. The wire key is "weight",
	// but it is a percent: the stake-scaled weight is derived from it.
	Percent int64 `json:"weight"`
}

// Operation is one decoded platform action. Exactly one params pointer is
// set, matching Method.
type Operation struct {
	Method          Method
	CreateObject    *CreateObjectParams
	UpdateObject    *UpdateObjectParams
	VoteObjectField *VoteObjectFieldParams
}

// Context carries the ledger envelope of an action: the acting account, the
// synthetic per-action transaction id and the block timestamp.
type Context struct {
	Account       string
	TransactionID string
	Timestamp     string
}

// DecodeOperation decodes and validates one action of a platform payload.
// The method set is closed; anything malformed or out of range is an error
// and the caller skips the action.
func DecodeOperation(raw json.RawMessage) (*Operation, error) {
	var envelope struct {
		Method Method          `json:"method"`
		Params json.RawMessage `json:"params"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode action envelope: %w", err)
	}
	if len(envelope.Params) == 0 {
		return nil, fmt.Errorf("action %q has no params", envelope.Method)
	}

	op := &Operation{Method: envelope.Method}
	switch envelope.Method {
	case MethodCreateObject:
		var params CreateObjectParams
		if err := json.Unmarshal(envelope.Params, &params); err != nil {
			return nil, fmt.Errorf("decode createObject params: %w", err)
		}
		if params.Permlink == "" || params.DefaultName == "" || params.Creator == "" || params.ObjectType == "" {
			return nil, fmt.Errorf("createObject params incomplete: %+v", params)
		}
		op.CreateObject = &params

	case MethodUpdateObject:
		var params UpdateObjectParams
		if err := json.Unmarshal(envelope.Params, &params); err != nil {
			return nil, fmt.Errorf("decode updateObject params: %w", err)
		}
		if params.ObjectPermlink == "" || params.Name == "" || params.Body == "" || params.Creator == "" {
			return nil, fmt.Errorf("updateObject params incomplete: %+v", params)
		}
		op.UpdateObject = &params

	case MethodVoteObjectField:
		var params VoteObjectFieldParams
		if err := json.Unmarshal(envelope.Params, &params); err != nil {
			return nil, fmt.Errorf("decode voteObjectField params: %w", err)
		}
		if params.ObjectPermlink == "" || params.FieldTransactionID == "" {
			return nil, fmt.Errorf("voteObjectField params incomplete: %+v", params)
		}
		if params.Percent < -10000 || params.Percent > 10000 {
			return nil, fmt.Errorf("voteObjectField weight %d out of range", params.Percent)
		}
		op.VoteObjectField = &params

	default:
		return nil, fmt.Errorf("unknown method %q", envelope.Method)
	}
	return op, nil
}
