// Package storage contains a storage interface.
package storage

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/tipnet/midas/internal/entities"
)

//go:generate mockgen -destination=./mock/storage.go -package=mock -source=storage.go

// ErrNotFound ...
var ErrNotFound = fmt.Errorf("not found")

// ErrAlreadyExists is returned when a row with the given identity was applied
// before. Redelivered events detect it and skip.
var ErrAlreadyExists = fmt.Errorf("already exists")

// Storage provides methods for interacting with database.
// Mutators are atomic upsert-with-increment primitives, callers never
// read-modify-write aggregates across round trips.
type Storage interface {
	InTx(ctx context.Context, f func(s Storage) error) error
	SetHeight(ctx context.Context, height uint64) error
	GetHeight(ctx context.Context) (uint64, error)

	CreatePost(ctx context.Context, p *CreatePostParams) error
	GetPost(ctx context.Context, id uint64) (*entities.Post, error)
	ListPosts(ctx context.Context, p *ListPostsParams) ([]*entities.Post, error)
	AddEngagement(ctx context.Context, id uint64, delta uint32) error

	AddTip(ctx context.Context, p *AddTipParams) error
	ListRecentTips(ctx context.Context, postID uint64, limit uint16) ([]*entities.Tip, error)

	GetCreator(ctx context.Context, address string) (*entities.Creator, error)
	ListTopCreators(ctx context.Context, p *LeaderboardParams) ([]*entities.CreatorRank, error)

	CreateDelegation(ctx context.Context, p *CreateDelegationParams) error
	DeactivateDelegation(ctx context.Context, id uint64) (*entities.Delegation, error)
	ListActiveDelegations(ctx context.Context, postID uint64) ([]*entities.Delegation, error)

	GetDailyStats(ctx context.Context, e StatsEntity, from time.Time) ([]entities.DailyStat, error)
	GetPlatformStats(ctx context.Context) (*entities.PlatformStats, error)
}

// SortType ...
type SortType string

const (
	// CreatedAtSortType ...
	CreatedAtSortType SortType = "created_at"
	// TipsSortType ...
	TipsSortType SortType = "tips"
	// EngagementSortType ...
	EngagementSortType SortType = "engagement"
)

// OrderType ...
type OrderType string

const (
	// AscendingOrder ...
	AscendingOrder OrderType = "asc"
	// DescendingOrder ...
	DescendingOrder OrderType = "desc"
)

// LeaderboardMetric ...
type LeaderboardMetric string

const (
	// EarningsMetric ranks creators by received amount.
	EarningsMetric LeaderboardMetric = "earnings"
	// TipsSentMetric ranks tippers by sent tips count.
	TipsSentMetric LeaderboardMetric = "tips_sent"
)

// StatsEntity ...
type StatsEntity string

const (
	// PostsEntity ...
	PostsEntity StatsEntity = "posts"
	// TipsEntity ...
	TipsEntity StatsEntity = "tips"
)

// ListPostsParams ...
type ListPostsParams struct {
	SortBy  SortType
	OrderBy OrderType
	Limit   uint16
	Creator *string
	After   *uint64
	From    *uint64
	To      *uint64
}

// CreatePostParams ...
type CreatePostParams struct {
	ID        uint64
	Creator   string
	Content   string
	CreatedAt time.Time
}

// AddTipParams ...
type AddTipParams struct {
	ID        string
	PostID    uint64
	Tipper    string
	Creator   string
	Amount    *big.Int
	CreatedAt time.Time
}

// CreateDelegationParams ...
type CreateDelegationParams struct {
	ID        uint64
	PostID    uint64
	Tipper    string
	Threshold uint64
	Amount    *big.Int
	CreatedAt time.Time
}

// LeaderboardParams ...
type LeaderboardParams struct {
	Metric LeaderboardMetric
	Limit  uint16
	From   *time.Time
}
