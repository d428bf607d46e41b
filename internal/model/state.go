package model

import "time"

// StakeEntry tracks one account's staked token balance.
type StakeEntry struct {
	Account string  `json:"account"`
	Stake   float64 `json:"stake"`
}

// PendingPart is one stored fragment of a multi-part field body, waiting for
// its siblings.
type PendingPart struct {
	AuthorPermlink string    `json:"author_permlink"`
	GroupID        string    `json:"groupId"`
	PartNumber     int       `json:"partNumber"`
	TotalParts     int       `json:"totalParts"`
	Name           string    `json:"name"`
	Body           string    `json:"body"`
	Locale         string    `json:"locale,omitempty"`
	Creator        string    `json:"creator"`
	Author         string    `json:"author,omitempty"`
	TransactionID  string    `json:"transactionId"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Department is a node in the department graph.
type Department struct {
	Name         string   `json:"name"`
	Search       string   `json:"search,omitempty"`
	ObjectsCount int64    `json:"objectsCount"`
	Related      []string `json:"related,omitempty"`
}

// NodeStats accumulates request outcomes for one RPC endpoint. Averages and
// Weight are derived from the counters on every write.
type NodeStats struct {
	TotalRequests     int64     `json:"totalRequests"`
	Errors            int64     `json:"errors"`
	TotalResponseTime int64     `json:"totalResponseTime"`
	AvgResponseTime   float64   `json:"avgResponseTime"`
	AvgErrors         float64   `json:"avgErrors"`
	Weight            float64   `json:"weight"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// MutedUser records who muted an account.
type MutedUser struct {
	Account string   `json:"account"`
	MutedBy []string `json:"mutedBy"`
}

// ImportField is a field seeded through the import pipeline.
type ImportField struct {
	Name        string `json:"name"`
	Body        string `json:"body"`
	Permlink    string `json:"permlink"`
	Creator     string `json:"creator"`
	Locale      string `json:"locale,omitempty"`
	ID          string `json:"id,omitempty"`
	TagCategory string `json:"tagCategory,omitempty"`
}

// ImportWobject is one entry of an import-updates request body.
type ImportWobject struct {
	ObjectType     ObjectType    `json:"object_type"`
	AuthorPermlink string        `json:"author_permlink"`
	Fields         []ImportField `json:"fields"`
}
