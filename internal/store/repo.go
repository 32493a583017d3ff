package store

import (
	"context"
	"encoding/json"
	"time"
)

// Record kinds kept in the snapshots table.
const (
	KindState    = "state"
	KindSettings = "settings"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when set
}

// Snapshot is one saved version of a record. Data is the record's JSON.
type Snapshot struct {
	ID        int64
	Kind      string
	Sequence  int64
	Timestamp time.Time
	Data      json.RawMessage
}

// SnapshotRepo stores versioned JSON records by kind.
type SnapshotRepo interface {
	// Save stores a new version. Sequence and Timestamp are assigned when
	// zero.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the newest version of kind, or nil if none exist.
	Latest(ctx context.Context, kind string) (*Snapshot, error)

	// Prune deletes all but the keep most recent versions of kind.
	Prune(ctx context.Context, kind string, keep int) error

	// Clear deletes every version of kind.
	Clear(ctx context.Context, kind string) error

	// Count returns the number of stored versions of kind.
	Count(ctx context.Context, kind string) (int, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates requests for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token use for one model, for cost estimates.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to the LLM request log.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)
	// GetLLMEvent returns the event with the given id, or nil.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEventRecord, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
