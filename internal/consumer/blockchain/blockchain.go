// Package blockchain projects contract events into the storage.
package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tipnet/midas/internal/consumer"
	"github.com/tipnet/midas/internal/feed"
	"github.com/tipnet/midas/internal/storage"
)

var log = logrus.WithField("package", "blockchain")

type blockchain struct {
	f feed.Fetcher
	s storage.Storage

	retryInterval          time.Duration
	retryLastBlockInterval time.Duration
}

// New returns new blockchain instance.
func New(f feed.Fetcher, s storage.Storage, retryInterval, retryLastBlockInterval time.Duration) consumer.Consumer {
	return blockchain{
		f:                      f,
		s:                      s,
		retryInterval:          retryInterval,
		retryLastBlockInterval: retryLastBlockInterval,
	}
}

func logError(h uint64, err error) {
	log.WithField("height", h).WithError(err).Error("failed to process block")
}

func (b blockchain) Run(ctx context.Context) error {
	from, err := b.s.GetHeight(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current height: %w", err)
	}

	return b.f.FetchBlocks(ctx, from+1, b.processBlockFunc(ctx),
		feed.WithErrHandler(logError),
		feed.WithRetryInterval(b.retryInterval),
		feed.WithRetryLastBlockInterval(b.retryLastBlockInterval),
	)
}

// processBlockFunc applies every event of the block and advances the height
// in one transaction. Expected inconsistencies are logged and skipped, only
// storage failures propagate and stall ingestion.
func (b blockchain) processBlockFunc(ctx context.Context) func(block feed.Block) error {
	return func(block feed.Block) error {
		return b.s.InTx(ctx, func(s storage.Storage) error {
			for _, e := range block.Events {
				var err error

				switch e := e.(type) {
				case feed.PostCreated:
					err = processPostCreated(ctx, s, e)
				case feed.TipSent:
					err = processTipSent(ctx, s, e, block.Time)
				case feed.AutoTipEnabled:
					err = processAutoTipEnabled(ctx, s, e, block.Time)
				case feed.AutoTipRevoked:
					err = processAutoTipRevoked(ctx, s, e)
				case feed.AutoTipExecuted:
					err = processAutoTipExecuted(ctx, s, e, block.Time)
				default:
					log.WithField("event", fmt.Sprintf("%T", e)).Debug("skip event")
				}

				if err != nil {
					return err
				}
			}

			if err := s.SetHeight(ctx, block.Height); err != nil {
				return fmt.Errorf("failed to set height: %w", err)
			}

			return nil
		})
	}
}

func processPostCreated(ctx context.Context, s storage.Storage, e feed.PostCreated) error {
	err := s.CreatePost(ctx, &storage.CreatePostParams{
		ID:        e.PostID,
		Creator:   e.Creator,
		Content:   e.Content,
		CreatedAt: e.Timestamp,
	})

	if err == storage.ErrAlreadyExists {
		log.WithField("event", e.ID()).Debug("skip replayed post")
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func processTipSent(ctx context.Context, s storage.Storage, e feed.TipSent, t time.Time) error {
	err := s.AddTip(ctx, &storage.AddTipParams{
		ID:        e.ID(),
		PostID:    e.PostID,
		Tipper:    e.Tipper,
		Creator:   e.Creator,
		Amount:    e.Amount,
		CreatedAt: t,
	})

	switch err {
	case nil:
		return nil
	case storage.ErrAlreadyExists:
		log.WithField("event", e.ID()).Debug("skip replayed tip")
		return nil
	case storage.ErrNotFound:
		log.WithField("event", e.ID()).WithField("post_id", e.PostID).Warn("tip for unknown post")
		return nil
	default:
		return fmt.Errorf("failed to add tip: %w", err)
	}
}

func processAutoTipEnabled(ctx context.Context, s storage.Storage, e feed.AutoTipEnabled, t time.Time) error {
	err := s.CreateDelegation(ctx, &storage.CreateDelegationParams{
		ID:        e.DelegationID,
		PostID:    e.PostID,
		Tipper:    e.Tipper,
		Threshold: e.Threshold,
		Amount:    e.Amount,
		CreatedAt: t,
	})

	switch err {
	case nil:
		return nil
	case storage.ErrAlreadyExists:
		log.WithField("event", e.ID()).Debug("skip replayed delegation")
		return nil
	case storage.ErrNotFound:
		log.WithField("event", e.ID()).WithField("post_id", e.PostID).Warn("delegation for unknown post")
		return nil
	default:
		return fmt.Errorf("failed to create delegation: %w", err)
	}
}

func processAutoTipRevoked(ctx context.Context, s storage.Storage, e feed.AutoTipRevoked) error {
	if _, err := s.DeactivateDelegation(ctx, e.DelegationID); err != nil {
		if err == storage.ErrNotFound {
			log.WithField("event", e.ID()).WithField("delegation_id", e.DelegationID).Warn("revoke of unknown or inactive delegation")
			return nil
		}

		return fmt.Errorf("failed to deactivate delegation: %w", err)
	}

	return nil
}

// processAutoTipExecuted deactivates the delegation and synthesizes a tip
// with the delegation's stored amount. The tip is applied only when the
// delegation was still active, so replays can not double-tip.
func processAutoTipExecuted(ctx context.Context, s storage.Storage, e feed.AutoTipExecuted, t time.Time) error {
	d, err := s.DeactivateDelegation(ctx, e.DelegationID)
	if err != nil {
		if err == storage.ErrNotFound {
			log.WithField("event", e.ID()).WithField("delegation_id", e.DelegationID).Warn("execution of unknown or inactive delegation")
			return nil
		}

		return fmt.Errorf("failed to deactivate delegation: %w", err)
	}

	amount, ok := new(big.Int).SetString(d.Amount, 10)
	if !ok {
		return fmt.Errorf("failed to parse delegation amount %q", d.Amount)
	}

	err = s.AddTip(ctx, &storage.AddTipParams{
		ID:        e.ID(),
		PostID:    e.PostID,
		Tipper:    e.Tipper,
		Creator:   e.Creator,
		Amount:    amount,
		CreatedAt: t,
	})

	switch err {
	case nil:
		return nil
	case storage.ErrAlreadyExists:
		log.WithField("event", e.ID()).Debug("skip replayed executed tip")
		return nil
	case storage.ErrNotFound:
		log.WithField("event", e.ID()).WithField("post_id", e.PostID).Warn("executed tip for unknown post")
		return nil
	default:
		return fmt.Errorf("failed to add executed tip: %w", err)
	}
}

func (b blockchain) Name() string {
	return "blockchain"
}

func (b blockchain) Ping(ctx context.Context) (interface{}, error) {
	h, err := b.s.GetHeight(ctx)
	if err != nil {
		return nil, err
	}

	return struct {
		Height uint64 `json:"height"`
	}{Height: h}, nil
}
