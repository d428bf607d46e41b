package hive

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

import "time"

// NodePicker chooses the endpoint for the next request and absorbs the
// outcome of every request made through the client.
type NodePicker interface {
	BestURL() (string, error)
	RecordRequest(url string, elapsed time.Duration, failed bool)
}

// Metrics receives one observation per RPC call.
type Metrics interface {
	Observe(method string, err error, started time.Time)
}

// Content is the subset of a ledger post the handlers read.
type Content struct {
	Author       string `json:"author"`
	Permlink     string `json:"permlink"`
	ParentAuthor string `json:"parent_author"`
	Body         string `json:"body"`
	JSONMetadata string `json:"json_metadata"`
}

// LedgerVote is one entry of a post's active vote list on the ledger.
type LedgerVote struct {
	Voter   string `json:"voter"`
	Percent int64  `json:"percent"`
	Rshares int64  `json:"rshares,string"`
}
