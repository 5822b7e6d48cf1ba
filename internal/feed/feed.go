// Package feed contains the contract-event feed abstraction.
package feed

import (
	"context"
	"fmt"
	"math/big"
	"time"
)

//go:generate mockgen -destination=./mock/feed.go -package=mock -source=feed.go

// Fetcher fetches blocks of SocialTipping contract events in chain order.
type Fetcher interface {
	// FetchBlocks fetches blocks from the given height and calls f for every
	// block. The same height is retried until f succeeds, so the handler
	// must tolerate redelivery. FetchBlocks blocks until ctx is done.
	FetchBlocks(ctx context.Context, from uint64, f func(b Block) error, opts ...FetchBlocksOption) error
}

// Block is a single block with the contract events emitted in it.
type Block struct {
	Height uint64
	Time   time.Time
	Events []Event
}

// Event is a decoded contract event. The set of implementations is closed,
// consumers dispatch with an exhaustive type switch.
type Event interface {
	isEvent()
}

// Ref points at the emitting log. ID is used as the idempotency ledger key.
type Ref struct {
	TxHash   string
	LogIndex uint32
}

// ID returns the globally unique event id.
func (r Ref) ID() string {
	return fmt.Sprintf("%s-%d", r.TxHash, r.LogIndex)
}

// PostCreated ...
type PostCreated struct {
	Ref

	PostID    uint64
	Creator   string
	Content   string
	Timestamp time.Time
}

// TipSent ...
type TipSent struct {
	Ref

	PostID  uint64
	Tipper  string
	Creator string
	Amount  *big.Int
}

// AutoTipEnabled ...
type AutoTipEnabled struct {
	Ref

	DelegationID uint64
	PostID       uint64
	Tipper       string
	Threshold    uint64
	Amount       *big.Int
}

// AutoTipRevoked ...
type AutoTipRevoked struct {
	Ref

	DelegationID uint64
	PostID       uint64
	Tipper       string
}

// AutoTipExecuted carries the recipient and amount for the synthesized tip.
type AutoTipExecuted struct {
	Ref

	DelegationID uint64
	PostID       uint64
	Tipper       string
	Creator      string
	Amount       *big.Int
}

func (PostCreated) isEvent()     {}
func (TipSent) isEvent()         {}
func (AutoTipEnabled) isEvent()  {}
func (AutoTipRevoked) isEvent()  {}
func (AutoTipExecuted) isEvent() {}

// FetchBlocksOption ...
type FetchBlocksOption func(*FetchBlocksOptions)

// FetchBlocksOptions ...
type FetchBlocksOptions struct {
	ErrHandler             func(height uint64, err error)
	RetryInterval          time.Duration
	RetryLastBlockInterval time.Duration
}

// WithErrHandler sets function which will be called on fetching/handling error.
func WithErrHandler(f func(height uint64, err error)) FetchBlocksOption {
	return func(o *FetchBlocksOptions) {
		o.ErrHandler = f
	}
}

// WithRetryInterval sets interval to be waited on error before retry.
func WithRetryInterval(d time.Duration) FetchBlocksOption {
	return func(o *FetchBlocksOptions) {
		o.RetryInterval = d
	}
}

// WithRetryLastBlockInterval sets interval to be waited when the next block
// isn't produced yet.
func WithRetryLastBlockInterval(d time.Duration) FetchBlocksOption {
	return func(o *FetchBlocksOptions) {
		o.RetryLastBlockInterval = d
	}
}

// DefaultFetchBlocksOptions returns options used when none are given.
func DefaultFetchBlocksOptions() FetchBlocksOptions {
	return FetchBlocksOptions{
		ErrHandler:             func(uint64, error) {},
		RetryInterval:          time.Second * 2,
		RetryLastBlockInterval: time.Second,
	}
}
