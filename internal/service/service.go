// Package service contains interface for service business-logic.
package service

import (
	"context"

	"github.com/tipnet/midas/internal/entities"
	"github.com/tipnet/midas/internal/storage"
)

//go:generate mockgen -destination=./mock/service.go -package=mock -source=service.go

// PostDetails is a post with its recent tip history and active delegations.
type PostDetails struct {
	Post        entities.Post
	RecentTips  []*entities.Tip
	Delegations []*entities.Delegation
}

// Service is the read facade over the projections. Nothing here mutates
// projector-owned state, AddEngagement only bumps the opaque popularity
// counter.
type Service interface {
	ListPosts(ctx context.Context, p *storage.ListPostsParams) ([]*entities.Post, error)
	GetPost(ctx context.Context, id uint64) (*PostDetails, error)
	ListRecentTips(ctx context.Context, postID uint64, limit uint16) ([]*entities.Tip, error)
	ListActiveDelegations(ctx context.Context, postID uint64) ([]*entities.Delegation, error)

	GetCreator(ctx context.Context, address string) (*entities.Creator, error)
	ListTopCreators(ctx context.Context, p *storage.LeaderboardParams) ([]*entities.CreatorRank, error)

	GetDailyStats(ctx context.Context, e storage.StatsEntity, windowDays uint16) ([]entities.DailyStat, error)
	GetPlatformStats(ctx context.Context) (*entities.PlatformStats, error)

	AddEngagement(ctx context.Context, postID uint64, delta uint32) error
}
