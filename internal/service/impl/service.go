// Package impl is implementation of service interface.
package impl

import (
	"context"
	"fmt"
	"time"

	"github.com/tipnet/midas/internal/entities"
	"github.com/tipnet/midas/internal/service"
	"github.com/tipnet/midas/internal/storage"
)

const recentTipsLimit = 10

type srv struct {
	s storage.Storage
}

// New creates new instance of service.
func New(s storage.Storage) service.Service {
	return srv{
		s: s,
	}
}

func (s srv) ListPosts(ctx context.Context, p *storage.ListPostsParams) ([]*entities.Post, error) {
	out, err := s.s.ListPosts(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return out, nil
}

func (s srv) GetPost(ctx context.Context, id uint64) (*service.PostDetails, error) {
	p, err := s.s.GetPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	tips, err := s.s.ListRecentTips(ctx, id, recentTipsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent tips: %w", err)
	}

	dd, err := s.s.ListActiveDelegations(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list active delegations: %w", err)
	}

	return &service.PostDetails{
		Post:        *p,
		RecentTips:  tips,
		Delegations: dd,
	}, nil
}

func (s srv) ListRecentTips(ctx context.Context, postID uint64, limit uint16) ([]*entities.Tip, error) {
	out, err := s.s.ListRecentTips(ctx, postID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent tips: %w", err)
	}

	return out, nil
}

func (s srv) ListActiveDelegations(ctx context.Context, postID uint64) ([]*entities.Delegation, error) {
	out, err := s.s.ListActiveDelegations(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active delegations: %w", err)
	}

	return out, nil
}

func (s srv) GetCreator(ctx context.Context, address string) (*entities.Creator, error) {
	out, err := s.s.GetCreator(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get creator: %w", err)
	}

	return out, nil
}

func (s srv) ListTopCreators(ctx context.Context, p *storage.LeaderboardParams) ([]*entities.CreatorRank, error) {
	out, err := s.s.ListTopCreators(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to list top creators: %w", err)
	}

	return out, nil
}

// GetDailyStats buckets by day over the trailing window, the bound is
// computed at call time and never stored.
func (s srv) GetDailyStats(ctx context.Context, e storage.StatsEntity, windowDays uint16) ([]entities.DailyStat, error) {
	from := time.Now().UTC().AddDate(0, 0, -int(windowDays))

	out, err := s.s.GetDailyStats(ctx, e, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}

	return out, nil
}

func (s srv) GetPlatformStats(ctx context.Context) (*entities.PlatformStats, error) {
	out, err := s.s.GetPlatformStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get platform stats: %w", err)
	}

	return out, nil
}

func (s srv) AddEngagement(ctx context.Context, postID uint64, delta uint32) error {
	if err := s.s.AddEngagement(ctx, postID, delta); err != nil {
		return fmt.Errorf("failed to add engagement: %w", err)
	}

	return nil
}
