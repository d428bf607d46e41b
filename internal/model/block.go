package model

import (
	"encoding/json"
	"fmt"
)

// SignedBlock is the subset of a ledger block the parser cares about.
type SignedBlock struct {
	Timestamp    string        `json:"timestamp"`
	Transactions []Transaction `json:"transactions"`
}

// Transaction carries the ledger transaction id and its operation list.
type Transaction struct {
	TransactionID string      `json:"transaction_id"`
	Operations    []Operation `json:"operations"`
}

// Operation is one ledger operation. On the wire it is a positional
// two-element tuple: ["custom_json", {...}]. The payload stays raw until a
// handler that knows the operation kind decodes it.
type Operation struct {
	Name    string
	Payload json.RawMessage
}

func (o *Operation) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("decode operation tuple: %w", err)
	}
	if len(tuple) != 2 {
		return fmt.Errorf("operation tuple has %d elements, want 2", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &o.Name); err != nil {
		return fmt.Errorf("decode operation name: %w", err)
	}
	o.Payload = tuple[1]
	return nil
}

func (o Operation) MarshalJSON() ([]byte, error) {
	name, err := json.Marshal(o.Name)
	if err != nil {
		return nil, err
	}
	payload := o.Payload
	if payload == nil {
		payload = json.RawMessage("null")
	}
	return json.Marshal([]json.RawMessage{name, payload})
}

// CustomJSON is the payload of a custom_json operation. The inner JSON field
// is an escaped string whose shape depends on the operation id.
type CustomJSON struct {
	RequiredAuths        []string `json:"required_auths"`
	RequiredPostingAuths []string `json:"required_posting_auths"`
	ID                   string   `json:"id"`
	JSON                 string   `json:"json"`
}

// Account returns the acting account: the first posting auth when present,
// otherwise the first active auth.
func (c CustomJSON) Account() string {
	if len(c.RequiredPostingAuths) > 0 {
		return c.RequiredPostingAuths[0]
	}
	if len(c.RequiredAuths) > 0 {
		return c.RequiredAuths[0]
	}
	return ""
}
