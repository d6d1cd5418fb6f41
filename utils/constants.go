// File: utils/constants.go
package utils

import "time"

// StateCachePrefix is the prefix used for Redis booking-state cache keys.
const StateCachePrefix = "event:state:"

// StateCacheTTL is the time-to-live for cached booking state.
const StateCacheTTL = 30 * time.Minute

// PendingDraftsKey is the Redis list holding IDs of drafts awaiting approval.
const PendingDraftsKey = "approval:pending"
