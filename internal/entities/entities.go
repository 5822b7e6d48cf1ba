// Package entities contains main entities of service.
package entities

import (
	"time"
)

// Post is a projection of one on-chain post with its tipping aggregates.
// TotalTips is a minor-unit decimal string, it only ever grows.
type Post struct {
	ID         uint64
	Creator    string
	Content    string
	CreatedAt  time.Time
	TotalTips  string
	TipCount   uint32
	Engagement uint32
}

// Creator is aggregate earnings and activity per address.
type Creator struct {
	Address       string
	TotalEarnings string
	PostCount     uint32
	TipCount      uint32
}

// Tip is an applied tip. ID is "txHash-logIndex" and doubles as the
// idempotency ledger key.
type Tip struct {
	ID        string
	PostID    uint64
	Tipper    string
	Creator   string
	Amount    string
	CreatedAt time.Time
}

// Delegation is a standing auto-tip authorization. Rows are never deleted,
// Active goes false exactly once on revocation or execution.
type Delegation struct {
	ID        uint64
	PostID    uint64
	Tipper    string
	Threshold uint64
	Amount    string
	Active    bool
	CreatedAt time.Time
}

// CreatorRank is a leaderboard row.
type CreatorRank struct {
	Address  string
	TipCount uint32
	Amount   string
}

// DailyStat is a per-day bucket of entity counts and tipped volume.
type DailyStat struct {
	Date   string
	Count  uint32
	Volume string
}

// PlatformStats is the all-time platform overview.
type PlatformStats struct {
	Posts       uint32
	Tips        uint32
	Creators    uint32
	TotalTipped string
}
