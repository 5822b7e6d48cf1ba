package blockchain

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/tipnet/midas/internal/entities"
	"github.com/tipnet/midas/internal/feed"
	feedmock "github.com/tipnet/midas/internal/feed/mock"
	"github.com/tipnet/midas/internal/storage"
	storagemock "github.com/tipnet/midas/internal/storage/mock"
)

var errTest = errors.New("test")

func TestBlockchain_Run(t *testing.T) {
	ctrl := gomock.NewController(t)

	f, s := feedmock.NewMockFetcher(ctrl), storagemock.NewMockStorage(ctrl)

	b := New(f, s, time.Nanosecond, time.Nanosecond)

	s.EXPECT().GetHeight(gomock.Any()).Return(uint64(1), nil)

	f.EXPECT().FetchBlocks(gomock.Any(), uint64(2), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, b.Run(context.Background()))
}

func TestBlockchain_Run_Error(t *testing.T) {
	ctrl := gomock.NewController(t)

	f, s := feedmock.NewMockFetcher(ctrl), storagemock.NewMockStorage(ctrl)

	b := New(f, s, time.Nanosecond, time.Nanosecond)

	s.EXPECT().GetHeight(gomock.Any()).Return(uint64(1), nil)

	f.EXPECT().FetchBlocks(gomock.Any(), uint64(2), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errTest)

	require.Equal(t, errTest, b.Run(context.Background()))
}

func TestBlockchain_processBlockFunc(t *testing.T) {
	timestamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	ref := func(idx uint32) feed.Ref {
		return feed.Ref{TxHash: "0xabc", LogIndex: idx}
	}

	tt := []struct {
		name   string
		event  feed.Event
		expect func(s *storagemock.MockStorage)
	}{
		{
			name: "post_created",
			event: feed.PostCreated{
				Ref:       ref(0),
				PostID:    1,
				Creator:   "0xcreator",
				Content:   "ipfs://content",
				Timestamp: timestamp,
			},
			expect: func(s *storagemock.MockStorage) {
				s.EXPECT().CreatePost(gomock.Any(), &storage.CreatePostParams{
					ID:        1,
					Creator:   "0xcreator",
					Content:   "ipfs://content",
					CreatedAt: timestamp,
				})
			},
		},
		{
			name: "post_created_replayed",
			event: feed.PostCreated{
				Ref:    ref(0),
				PostID: 1,
			},
			expect: func(s *storagemock.MockStorage) {
				s.EXPECT().CreatePost(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)
			},
		},
		{
			name: "tip_sent",
			event: feed.TipSent{
				Ref:     ref(1),
				PostID:  1,
				Tipper:  "0xtipper",
				Creator: "0xcreator",
				Amount:  big.NewInt(500000),
			},
			expect: func(s *storagemock.MockStorage) {
				s.EXPECT().AddTip(gomock.Any(), &storage.AddTipParams{
					ID:        "0xabc-1",
					PostID:    1,
					Tipper:    "0xtipper",
					Creator:   "0xcreator",
					Amount:    big.NewInt(500000),
					CreatedAt: timestamp,
				})
			},
		},
		{
			name: "tip_sent_replayed",
			event: feed.TipSent{
				Ref:    ref(1),
				PostID: 1,
				Amount: big.NewInt(1),
			},
			expect: func(s *storagemock.MockStorage) {
				s.EXPECT().AddTip(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)
			},
		},
		{
			name: "tip_sent_unknown_post",
			event: feed.TipSent{
				Ref:    ref(1),
				PostID: 404,
				Amount: big.NewInt(1),
			},
			expect: func(s *storagemock.MockStorage) {
				s.EXPECT().AddTip(gomock.Any(), gomock.Any()).Return(storage.ErrNotFound)
			},
		},
		{
			name: "auto_tip_enabled",
			event: feed.AutoTipEnabled{
				Ref:          ref(2),
				DelegationID: 7,
				PostID:       1,
				Tipper:       "0xtipper",
				Threshold:    100,
				Amount:       big.NewInt(1000),
			},
			expect: func(s *storagemock.MockStorage) {
				s.EXPECT().CreateDelegation(gomock.Any(), &storage.CreateDelegationParams{
					ID:        7,
					PostID:    1,
					Tipper:    "0xtipper",
					Threshold: 100,
					Amount:    big.NewInt(1000),
					CreatedAt: timestamp,
				})
			},
		},
		{
			name: "auto_tip_enabled_unknown_post",
			event: feed.AutoTipEnabled{
				Ref:          ref(2),
				DelegationID: 7,
				PostID:       404,
				Amount:       big.NewInt(1),
			},
			expect: func(s *storagemock.MockStorage) {
				s.EXPECT().CreateDelegation(gomock.Any(), gomock.Any()).Return(storage.ErrNotFound)
			},
		},
		{
			name: "auto_tip_revoked",
			event: feed.AutoTipRevoked{
				Ref:          ref(3),
				DelegationID: 7,
				PostID:       1,
				Tipper:       "0xtipper",
			},
			expect: func(s *storagemock.MockStorage) {
				s.EXPECT().DeactivateDelegation(gomock.Any(), uint64(7)).Return(&entities.Delegation{ID: 7}, nil)
			},
		},
		{
			name: "auto_tip_revoked_inactive",
			event: feed.AutoTipRevoked{
				Ref:          ref(3),
				DelegationID: 7,
			},
			expect: func(s *storagemock.MockStorage) {
				s.EXPECT().DeactivateDelegation(gomock.Any(), uint64(7)).Return(nil, storage.ErrNotFound)
			},
		},
		{
			name: "auto_tip_executed",
			event: feed.AutoTipExecuted{
				Ref:          ref(4),
				DelegationID: 7,
				PostID:       1,
				Tipper:       "0xtipper",
				Creator:      "0xcreator",
				Amount:       big.NewInt(1000),
			},
			expect: func(s *storagemock.MockStorage) {
				s.EXPECT().DeactivateDelegation(gomock.Any(), uint64(7)).Return(&entities.Delegation{
					ID:     7,
					PostID: 1,
					Tipper: "0xtipper",
					Amount: "1000",
				}, nil)

				s.EXPECT().AddTip(gomock.Any(), &storage.AddTipParams{
					ID:        "0xabc-4",
					PostID:    1,
					Tipper:    "0xtipper",
					Creator:   "0xcreator",
					Amount:    big.NewInt(1000),
					CreatedAt: timestamp,
				})
			},
		},
		{
			name: "auto_tip_executed_inactive",
			event: feed.AutoTipExecuted{
				Ref:          ref(4),
				DelegationID: 7,
				PostID:       1,
				Amount:       big.NewInt(1000),
			},
			expect: func(s *storagemock.MockStorage) {
				// a replay deactivates nothing, no second tip is synthesized
				s.EXPECT().DeactivateDelegation(gomock.Any(), uint64(7)).Return(nil, storage.ErrNotFound)
			},
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := storagemock.NewMockStorage(gomock.NewController(t))

			s.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f func(_ storage.Storage) error) error {
				return f(s)
			})
			s.EXPECT().SetHeight(gomock.Any(), uint64(1)).Return(nil)
			tc.expect(s)

			block := feed.Block{
				Height: 1,
				Time:   timestamp,
				Events: []feed.Event{tc.event},
			}

			require.NoError(t, blockchain{s: s}.processBlockFunc(context.Background())(block))
		})
	}
}

func TestBlockchain_processBlockFunc_errors(t *testing.T) {
	s := storagemock.NewMockStorage(gomock.NewController(t))

	s.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f func(_ storage.Storage) error) error {
		return context.Canceled
	})

	require.Error(t, blockchain{s: s}.processBlockFunc(context.Background())(feed.Block{Height: 1}))
}

func TestBlockchain_processBlockFunc_storageError(t *testing.T) {
	s := storagemock.NewMockStorage(gomock.NewController(t))

	s.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f func(_ storage.Storage) error) error {
		return f(s)
	})
	s.EXPECT().AddTip(gomock.Any(), gomock.Any()).Return(errTest)

	block := feed.Block{
		Height: 1,
		Time:   time.Now(),
		Events: []feed.Event{feed.TipSent{
			Ref:    feed.Ref{TxHash: "0xabc", LogIndex: 0},
			PostID: 1,
			Amount: big.NewInt(1),
		}},
	}

	err := blockchain{s: s}.processBlockFunc(context.Background())(block)
	require.ErrorIs(t, err, errTest)
}

func TestBlockchain_Ping(t *testing.T) {
	s := storagemock.NewMockStorage(gomock.NewController(t))

	s.EXPECT().GetHeight(gomock.Any()).Return(uint64(42), nil)

	b := blockchain{s: s}
	require.Equal(t, "blockchain", b.Name())

	v, err := b.Ping(context.Background())
	require.NoError(t, err)
	require.Equal(t, struct {
		Height uint64 `json:"height"`
	}{Height: 42}, v)
}
