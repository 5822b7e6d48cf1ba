package server

const maxLimit = 100
const defaultLimit = 20
const defaultLeaderboardLimit = 10
const defaultStatsDays = 7
const maxStatsDays = 90

// Error ...
// swagger:model
type Error struct {
	Error string `json:"error"`
}

// ListPostsResponse ...
// swagger:model
type ListPostsResponse struct {
	Posts []*Post `json:"posts"`
}

// Post ...
type Post struct {
	ID         uint64 `json:"id"`
	Creator    string `json:"creator"`
	Content    string `json:"content"`
	CreatedAt  uint64 `json:"created_at"`
	TotalTips  string `json:"total_tips"`
	TipCount   uint32 `json:"tip_count"`
	Engagement uint32 `json:"engagement"`
}

// GetPostResponse ...
// swagger:model
type GetPostResponse struct {
	Post        Post          `json:"post"`
	RecentTips  []*Tip        `json:"recent_tips"`
	Delegations []*Delegation `json:"delegations"`
}

// Tip ...
type Tip struct {
	ID        string `json:"id"`
	PostID    uint64 `json:"post_id"`
	Tipper    string `json:"tipper"`
	Creator   string `json:"creator"`
	Amount    string `json:"amount"`
	CreatedAt uint64 `json:"created_at"`
}

// Delegation ...
type Delegation struct {
	ID        uint64 `json:"id"`
	PostID    uint64 `json:"post_id"`
	Tipper    string `json:"tipper"`
	Threshold uint64 `json:"threshold"`
	Amount    string `json:"amount"`
	Active    bool   `json:"active"`
	CreatedAt uint64 `json:"created_at"`
}

// Creator ...
// swagger:model
type Creator struct {
	Address       string `json:"address"`
	TotalEarnings string `json:"total_earnings"`
	PostCount     uint32 `json:"post_count"`
	TipCount      uint32 `json:"tip_count"`
}

// LeaderboardResponse ...
// swagger:model
type LeaderboardResponse struct {
	Creators []*CreatorRank `json:"creators"`
}

// CreatorRank ...
type CreatorRank struct {
	Address  string `json:"address"`
	TipCount uint32 `json:"tip_count"`
	Amount   string `json:"amount"`
}

// PlatformStats ...
// swagger:model
type PlatformStats struct {
	Posts       uint32 `json:"posts"`
	Tips        uint32 `json:"tips"`
	Creators    uint32 `json:"creators"`
	TotalTipped string `json:"total_tipped"`
}

// DailyStatsResponse ...
// swagger:model
type DailyStatsResponse struct {
	Stats []DailyStat `json:"stats"`
}

// DailyStat ...
type DailyStat struct {
	Date   string `json:"date"`
	Count  uint32 `json:"count"`
	Volume string `json:"volume"`
}
