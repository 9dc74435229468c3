package countrylib

import (
	"encoding/json"
	"sync"
	"time"
)

// UsageStats collects how a provider was used by Resolver: how many
// lookups succeeded or failed and how many times the provider was
// skipped because its rate limit was exhausted.
type UsageStats struct {
	Name string

	mutex        sync.Mutex
	lastUsed     time.Time
	successCount uint64
	failureCount uint64
	skippedCount uint64
}

// Used records a lookup result.
func (u *UsageStats) Used(err error) {
	now := time.Now()

	u.mutex.Lock()
	defer u.mutex.Unlock()

	u.lastUsed = now

	if err == nil {
		u.successCount++
	} else {
		u.failureCount++
	}
}

// Skipped records that provider was not asked at all.
func (u *UsageStats) Skipped() {
	u.mutex.Lock()
	defer u.mutex.Unlock()

	u.skippedCount++
}

// MarshalJSON renders counters and a unix timestamp of the last
// lookup. last_used is 0 if provider was never asked.
func (u *UsageStats) MarshalJSON() ([]byte, error) {
	var lastUsedTime int64

	u.mutex.Lock()

	if !u.lastUsed.IsZero() {
		lastUsedTime = u.lastUsed.Unix()
	}

	rawStruct := struct {
		Name         string `json:"name"`
		LastUsed     int64  `json:"last_used"`
		SuccessCount uint64 `json:"success_count"`
		FailureCount uint64 `json:"failure_count"`
		SkippedCount uint64 `json:"skipped_count"`
	}{
		Name:         u.Name,
		LastUsed:     lastUsedTime,
		SuccessCount: u.successCount,
		FailureCount: u.failureCount,
		SkippedCount: u.skippedCount,
	}

	u.mutex.Unlock()

	return json.Marshal(&rawStruct)
}
