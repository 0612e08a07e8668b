package domain

import (
	"context"
	"encoding/json"
)

// CallTypeStats is the per-operation slice of the cache statistics,
// restricted to live entries.
type CallTypeStats struct {
	CallType string `json:"call_type"`
	Entries  int64  `json:"entries"`
	Hits     int64  `json:"hits"`
}

type CacheStats struct {
	TotalEntries   int64           `json:"total_entries"`
	LiveEntries    int64           `json:"live_entries"`
	ExpiredEntries int64           `json:"expired_entries"`
	TotalHits      int64           `json:"total_hits"`
	ResponseBytes  int64           `json:"response_bytes"`
	HumanSize      string          `json:"human_size"`
	TTLHours       int             `json:"ttl_hours"`
	ByCallType     []CallTypeStats `json:"by_call_type"`
}

// ResponseCacheStore is the durable, TTL-bounded mapping from
// (callType, contentHash) to a previously validated record.
//
// Get and Set never fail from the caller's point of view: any storage fault
// degrades to a miss (Get) or a dropped write (Set). A cache outage must not
// abort an otherwise successful computation.
type ResponseCacheStore interface {
	// Get returns the stored record and true on a live hit, incrementing the
	// entry's hit counter. Absent, expired or unreadable entries report false.
	Get(ctx context.Context, callType, contentHash string) (json.RawMessage, bool)

	// Set stores or replaces the entry under the key with a fresh TTL window
	// and a zeroed hit counter. Last write wins on concurrent calls.
	Set(ctx context.Context, callType, contentHash string, response json.RawMessage)

	// Stats aggregates entry and hit counts, with a per-call-type breakdown
	// over live entries.
	Stats(ctx context.Context) (CacheStats, error)

	// Sweep deletes every expired entry and returns the number removed.
	Sweep(ctx context.Context) (int64, error)
}
