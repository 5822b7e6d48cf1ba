//+build integration

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	m "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tipnet/midas/internal/storage"
)

var (
	db  *sql.DB
	ctx = context.Background()
	s   storage.Storage
)

func TestMain(m *testing.M) {
	shutdown := setup()

	s = New(db)

	code := m.Run()
	shutdown()
	os.Exit(code)
}

func setup() func() {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:12",
		Env:          map[string]string{"POSTGRES_PASSWORD": "root"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
	})
	if err != nil {
		logrus.WithError(err).Fatalf("failed to create container")
	}

	if err := c.Start(ctx); err != nil {
		logrus.WithError(err).Fatal("failed to start container")
	}

	host, err := c.Host(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to get host")
	}

	port, err := c.MappedPort(ctx, "5432")
	if err != nil {
		logrus.WithError(err).Fatal("failed to map port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=postgres password=root sslmode=disable", host, port.Int())

	db, err = sql.Open("postgres", dsn)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open connection")
	}

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	shutdownFn := func() {
		if c != nil {
			c.Terminate(ctx)
		}
	}

	migrate("postgres", "root", host, "postgres", port.Int())

	return shutdownFn
}

func migrate(username, password, hostname, dbname string, port int) {
	_, currFile, _, ok := runtime.Caller(0)
	if !ok {
		logrus.Fatal("failed to get current file location")
	}

	migrations := filepath.Join(currFile, "../../../../scripts/migrations/postgres/")

	migrator, err := m.New(
		fmt.Sprintf("file://%s", migrations),
		fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			username, password, hostname, port, dbname),
	)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create migrator")
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil {
		logrus.WithError(err).Fatal("failed to migrate")
	}
}

func cleanup(t *testing.T) {
	_, err := db.ExecContext(ctx, `UPDATE height SET height=0`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `DELETE FROM delegation`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `DELETE FROM tip`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `DELETE FROM post`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `DELETE FROM creator`)
	require.NoError(t, err)
}

func createPost(t *testing.T, id uint64, creator string, createdAt time.Time) {
	t.Helper()

	require.NoError(t, s.CreatePost(ctx, &storage.CreatePostParams{
		ID:        id,
		Creator:   creator,
		Content:   fmt.Sprintf("content %d", id),
		CreatedAt: createdAt,
	}))
}

func addTip(t *testing.T, id string, postID uint64, tipper, creator string, amount int64, createdAt time.Time) {
	t.Helper()

	require.NoError(t, s.AddTip(ctx, &storage.AddTipParams{
		ID:        id,
		PostID:    postID,
		Tipper:    tipper,
		Creator:   creator,
		Amount:    big.NewInt(amount),
		CreatedAt: createdAt,
	}))
}

func TestPg_GetHeight(t *testing.T) {
	defer cleanup(t)

	h, err := s.GetHeight(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, h)
}

func TestPg_SetHeight(t *testing.T) {
	defer cleanup(t)

	require.NoError(t, s.SetHeight(ctx, 10))

	h, err := s.GetHeight(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 10, h)
}

func TestPg_InTx(t *testing.T) {
	defer cleanup(t)

	require.NoError(t, s.InTx(ctx, func(tx storage.Storage) error {
		require.Equal(t, errBeginCalledWithinTx, tx.InTx(ctx, func(_ storage.Storage) error { return nil }))

		return tx.SetHeight(ctx, 5)
	}))

	h, err := s.GetHeight(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 5, h)

	errTest := errors.New("test")
	require.Equal(t, errTest, s.InTx(ctx, func(tx storage.Storage) error {
		require.NoError(t, tx.SetHeight(ctx, 6))
		return errTest
	}))

	// rolled back
	h, err = s.GetHeight(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 5, h)
}

func TestPg_CreatePost(t *testing.T) {
	defer cleanup(t)

	expected := storage.CreatePostParams{
		ID:        1,
		Creator:   "0xcreator",
		Content:   "hello",
		CreatedAt: time.Now().UTC(),
	}

	require.NoError(t, s.CreatePost(ctx, &expected))

	p, err := s.GetPost(ctx, expected.ID)
	require.NoError(t, err)
	require.Equal(t, expected.ID, p.ID)
	require.Equal(t, expected.Creator, p.Creator)
	require.Equal(t, expected.Content, p.Content)
	require.Equal(t, expected.CreatedAt.Unix(), p.CreatedAt.Unix())
	require.Equal(t, "0", p.TotalTips)
	require.EqualValues(t, 0, p.TipCount)
	require.EqualValues(t, 0, p.Engagement)

	c, err := s.GetCreator(ctx, expected.Creator)
	require.NoError(t, err)
	require.EqualValues(t, 1, c.PostCount)
	require.Equal(t, "0", c.TotalEarnings)

	// replay leaves the counters alone
	require.Equal(t, storage.ErrAlreadyExists, s.CreatePost(ctx, &expected))

	c, err = s.GetCreator(ctx, expected.Creator)
	require.NoError(t, err)
	require.EqualValues(t, 1, c.PostCount)
}

func TestPg_GetPost(t *testing.T) {
	defer cleanup(t)

	_, err := s.GetPost(ctx, 404)
	require.Equal(t, storage.ErrNotFound, err)
}

func TestPg_AddEngagement(t *testing.T) {
	defer cleanup(t)

	require.Equal(t, storage.ErrNotFound, s.AddEngagement(ctx, 1, 1))

	createPost(t, 1, "0xcreator", time.Now())

	require.NoError(t, s.AddEngagement(ctx, 1, 2))
	require.NoError(t, s.AddEngagement(ctx, 1, 3))

	p, err := s.GetPost(ctx, 1)
	require.NoError(t, err)
	require.EqualValues(t, 5, p.Engagement)
}

func TestPg_AddTip(t *testing.T) {
	defer cleanup(t)

	createPost(t, 1, "0xcreator", time.Now())

	addTip(t, "0xa-0", 1, "0xtipper", "0xcreator", 100, time.Now())
	addTip(t, "0xa-1", 1, "0xtipper", "0xcreator", 250, time.Now())

	p, err := s.GetPost(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "350", p.TotalTips)
	require.EqualValues(t, 2, p.TipCount)

	c, err := s.GetCreator(ctx, "0xcreator")
	require.NoError(t, err)
	require.Equal(t, "350", c.TotalEarnings)
	require.EqualValues(t, 2, c.TipCount)
	require.EqualValues(t, 1, c.PostCount)
}

func TestPg_AddTip_Duplicate(t *testing.T) {
	defer cleanup(t)

	createPost(t, 1, "0xcreator", time.Now())

	addTip(t, "0xa-0", 1, "0xtipper", "0xcreator", 100, time.Now())

	err := s.AddTip(ctx, &storage.AddTipParams{
		ID:        "0xa-0",
		PostID:    1,
		Tipper:    "0xtipper",
		Creator:   "0xcreator",
		Amount:    big.NewInt(100),
		CreatedAt: time.Now(),
	})
	require.Equal(t, storage.ErrAlreadyExists, err)

	p, err := s.GetPost(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "100", p.TotalTips)
	require.EqualValues(t, 1, p.TipCount)
}

func TestPg_AddTip_UnknownPost(t *testing.T) {
	defer cleanup(t)

	err := s.AddTip(ctx, &storage.AddTipParams{
		ID:        "0xa-0",
		PostID:    404,
		Tipper:    "0xtipper",
		Creator:   "0xcreator",
		Amount:    big.NewInt(100),
		CreatedAt: time.Now(),
	})
	require.Equal(t, storage.ErrNotFound, err)
}

func TestPg_AddTip_BigAmount(t *testing.T) {
	defer cleanup(t)

	createPost(t, 1, "0xcreator", time.Now())

	// larger than uint64
	amount, ok := new(big.Int).SetString("340282366920938463463374607431768211456", 10)
	require.True(t, ok)

	require.NoError(t, s.AddTip(ctx, &storage.AddTipParams{
		ID:        "0xa-0",
		PostID:    1,
		Tipper:    "0xtipper",
		Creator:   "0xcreator",
		Amount:    amount,
		CreatedAt: time.Now(),
	}))

	p, err := s.GetPost(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, amount.String(), p.TotalTips)
}

func TestPg_ListRecentTips(t *testing.T) {
	defer cleanup(t)

	createPost(t, 1, "0xcreator", time.Now())
	createPost(t, 2, "0xcreator", time.Now())

	addTip(t, "0xa-0", 1, "0xtipper", "0xcreator", 1, time.Unix(1, 0))
	addTip(t, "0xa-1", 1, "0xtipper", "0xcreator", 2, time.Unix(2, 0))
	addTip(t, "0xa-2", 1, "0xtipper", "0xcreator", 3, time.Unix(3, 0))
	addTip(t, "0xa-3", 2, "0xtipper", "0xcreator", 4, time.Unix(4, 0))

	tt, err := s.ListRecentTips(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, tt, 2)
	require.Equal(t, "0xa-2", tt[0].ID)
	require.Equal(t, "3", tt[0].Amount)
	require.Equal(t, "0xa-1", tt[1].ID)
}

func TestPg_GetCreator(t *testing.T) {
	defer cleanup(t)

	_, err := s.GetCreator(ctx, "0xnobody")
	require.Equal(t, storage.ErrNotFound, err)
}

func TestPg_ListTopCreators(t *testing.T) {
	defer cleanup(t)

	now := time.Now().UTC()
	monthAgo := now.Add(-time.Hour * 24 * 32)
	weekAgo := now.Add(-time.Hour * 24 * 7)

	createPost(t, 1, "0xalice", time.Unix(1, 0))
	createPost(t, 2, "0xbob", time.Unix(2, 0))

	addTip(t, "0xa-0", 1, "0xtipper1", "0xalice", 100, monthAgo)
	addTip(t, "0xa-1", 1, "0xtipper2", "0xalice", 50, now)
	addTip(t, "0xa-2", 2, "0xtipper1", "0xbob", 120, now)

	t.Run("earnings_all_time", func(t *testing.T) {
		rr, err := s.ListTopCreators(ctx, &storage.LeaderboardParams{
			Metric: storage.EarningsMetric,
			Limit:  10,
		})
		require.NoError(t, err)
		require.Len(t, rr, 2)
		assert.Equal(t, "0xalice", rr[0].Address)
		assert.Equal(t, "150", rr[0].Amount)
		assert.EqualValues(t, 2, rr[0].TipCount)
		assert.Equal(t, "0xbob", rr[1].Address)
		assert.Equal(t, "120", rr[1].Amount)
	})

	t.Run("earnings_windowed", func(t *testing.T) {
		rr, err := s.ListTopCreators(ctx, &storage.LeaderboardParams{
			Metric: storage.EarningsMetric,
			Limit:  10,
			From:   &weekAgo,
		})
		require.NoError(t, err)
		require.Len(t, rr, 2)
		assert.Equal(t, "0xbob", rr[0].Address)
		assert.Equal(t, "120", rr[0].Amount)
		assert.Equal(t, "0xalice", rr[1].Address)
		assert.Equal(t, "50", rr[1].Amount)
	})

	t.Run("tips_sent", func(t *testing.T) {
		rr, err := s.ListTopCreators(ctx, &storage.LeaderboardParams{
			Metric: storage.TipsSentMetric,
			Limit:  10,
		})
		require.NoError(t, err)
		require.Len(t, rr, 2)
		assert.Equal(t, "0xtipper1", rr[0].Address)
		assert.EqualValues(t, 2, rr[0].TipCount)
		assert.Equal(t, "220", rr[0].Amount)
		assert.Equal(t, "0xtipper2", rr[1].Address)
	})

	t.Run("limit", func(t *testing.T) {
		rr, err := s.ListTopCreators(ctx, &storage.LeaderboardParams{
			Metric: storage.EarningsMetric,
			Limit:  1,
		})
		require.NoError(t, err)
		require.Len(t, rr, 1)
	})
}

func TestPg_CreateDelegation(t *testing.T) {
	defer cleanup(t)

	createPost(t, 1, "0xcreator", time.Now())

	p := storage.CreateDelegationParams{
		ID:        7,
		PostID:    1,
		Tipper:    "0xtipper",
		Threshold: 100,
		Amount:    big.NewInt(1000),
		CreatedAt: time.Now().UTC(),
	}

	require.NoError(t, s.CreateDelegation(ctx, &p))
	require.Equal(t, storage.ErrAlreadyExists, s.CreateDelegation(ctx, &p))

	dd, err := s.ListActiveDelegations(ctx, 1)
	require.NoError(t, err)
	require.Len(t, dd, 1)
	require.EqualValues(t, 7, dd[0].ID)
	require.Equal(t, "1000", dd[0].Amount)
	require.EqualValues(t, 100, dd[0].Threshold)
	require.True(t, dd[0].Active)
}

func TestPg_CreateDelegation_UnknownPost(t *testing.T) {
	defer cleanup(t)

	err := s.CreateDelegation(ctx, &storage.CreateDelegationParams{
		ID:        7,
		PostID:    404,
		Tipper:    "0xtipper",
		Threshold: 100,
		Amount:    big.NewInt(1000),
		CreatedAt: time.Now(),
	})
	require.Equal(t, storage.ErrNotFound, err)
}

func TestPg_DeactivateDelegation(t *testing.T) {
	defer cleanup(t)

	createPost(t, 1, "0xcreator", time.Now())

	require.NoError(t, s.CreateDelegation(ctx, &storage.CreateDelegationParams{
		ID:        7,
		PostID:    1,
		Tipper:    "0xtipper",
		Threshold: 100,
		Amount:    big.NewInt(1000),
		CreatedAt: time.Now(),
	}))

	d, err := s.DeactivateDelegation(ctx, 7)
	require.NoError(t, err)
	require.EqualValues(t, 7, d.ID)
	require.Equal(t, "1000", d.Amount)
	require.False(t, d.Active)

	// a deactivated delegation never comes back
	_, err = s.DeactivateDelegation(ctx, 7)
	require.Equal(t, storage.ErrNotFound, err)

	_, err = s.DeactivateDelegation(ctx, 404)
	require.Equal(t, storage.ErrNotFound, err)

	dd, err := s.ListActiveDelegations(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, dd)
}

func TestPg_ListActiveDelegations(t *testing.T) {
	defer cleanup(t)

	createPost(t, 1, "0xcreator", time.Now())
	createPost(t, 2, "0xcreator", time.Now())

	for i, postID := range []uint64{1, 1, 2} {
		require.NoError(t, s.CreateDelegation(ctx, &storage.CreateDelegationParams{
			ID:        uint64(i + 1),
			PostID:    postID,
			Tipper:    "0xtipper",
			Threshold: 100,
			Amount:    big.NewInt(1000),
			CreatedAt: time.Unix(int64(i+1), 0),
		}))
	}

	_, err := s.DeactivateDelegation(ctx, 2)
	require.NoError(t, err)

	dd, err := s.ListActiveDelegations(ctx, 1)
	require.NoError(t, err)
	require.Len(t, dd, 1)
	require.EqualValues(t, 1, dd[0].ID)
}

func TestPg_ListPosts(t *testing.T) {
	defer cleanup(t)

	createPost(t, 1, "0xalice", time.Unix(1, 0))
	createPost(t, 2, "0xbob", time.Unix(2, 0))
	createPost(t, 3, "0xalice", time.Unix(3, 0))
	createPost(t, 4, "0xcarol", time.Unix(4, 0))
	createPost(t, 5, "0xbob", time.Unix(5, 0))

	addTip(t, "0xa-0", 2, "0xtipper", "0xbob", 500, time.Unix(10, 0))
	addTip(t, "0xa-1", 4, "0xtipper", "0xcarol", 300, time.Unix(10, 0))
	addTip(t, "0xa-2", 4, "0xtipper", "0xcarol", 300, time.Unix(11, 0))

	require.NoError(t, s.AddEngagement(ctx, 3, 9))
	require.NoError(t, s.AddEngagement(ctx, 5, 4))

	creator := "0xbob"
	from := uint64(2)
	to := uint64(4)
	after := uint64(2)

	tt := []struct {
		name string
		p    storage.ListPostsParams
		ids  []uint64
	}{
		{
			name: "created_at_asc",
			p: storage.ListPostsParams{
				SortBy:  storage.CreatedAtSortType,
				OrderBy: storage.AscendingOrder,
				Limit:   100,
			},
			ids: []uint64{1, 2, 3, 4, 5},
		},
		{
			name: "created_at_desc",
			p: storage.ListPostsParams{
				SortBy:  storage.CreatedAtSortType,
				OrderBy: storage.DescendingOrder,
				Limit:   100,
			},
			ids: []uint64{5, 4, 3, 2, 1},
		},
		{
			name: "tips_desc",
			p: storage.ListPostsParams{
				SortBy:  storage.TipsSortType,
				OrderBy: storage.DescendingOrder,
				Limit:   100,
			},
			ids: []uint64{4, 2, 5, 3, 1},
		},
		{
			name: "engagement_desc",
			p: storage.ListPostsParams{
				SortBy:  storage.EngagementSortType,
				OrderBy: storage.DescendingOrder,
				Limit:   100,
			},
			ids: []uint64{3, 5, 4, 2, 1},
		},
		{
			name: "creator",
			p: storage.ListPostsParams{
				SortBy:  storage.CreatedAtSortType,
				OrderBy: storage.AscendingOrder,
				Limit:   100,
				Creator: &creator,
			},
			ids: []uint64{2, 5},
		},
		{
			name: "from_to",
			p: storage.ListPostsParams{
				SortBy:  storage.CreatedAtSortType,
				OrderBy: storage.AscendingOrder,
				Limit:   100,
				From:    &from,
				To:      &to,
			},
			ids: []uint64{2, 3, 4},
		},
		{
			name: "after_asc",
			p: storage.ListPostsParams{
				SortBy:  storage.CreatedAtSortType,
				OrderBy: storage.AscendingOrder,
				Limit:   100,
				After:   &after,
			},
			ids: []uint64{3, 4, 5},
		},
		{
			name: "after_desc",
			p: storage.ListPostsParams{
				SortBy:  storage.CreatedAtSortType,
				OrderBy: storage.DescendingOrder,
				Limit:   100,
				After:   &after,
			},
			ids: []uint64{1},
		},
		{
			name: "after_same_value_desc",
			p: storage.ListPostsParams{
				SortBy:  storage.TipsSortType,
				OrderBy: storage.DescendingOrder,
				Limit:   100,
				After:   &after,
			},
			ids: []uint64{5, 3, 1},
		},
		{
			name: "limit",
			p: storage.ListPostsParams{
				SortBy:  storage.CreatedAtSortType,
				OrderBy: storage.AscendingOrder,
				Limit:   2,
			},
			ids: []uint64{1, 2},
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			p, err := s.ListPosts(ctx, &tc.p)
			require.NoError(t, err)
			require.Len(t, p, len(tc.ids))
			for i, v := range tc.ids {
				require.Equal(t, v, p[i].ID)
			}
		})
	}
}

func TestPg_GetDailyStats(t *testing.T) {
	defer cleanup(t)

	today := time.Now().UTC()
	yesterday := today.Add(-time.Hour * 24)
	monthAgo := today.Add(-time.Hour * 24 * 32)

	createPost(t, 1, "0xalice", monthAgo)
	createPost(t, 2, "0xalice", yesterday)
	createPost(t, 3, "0xbob", today)
	createPost(t, 4, "0xbob", today)

	addTip(t, "0xa-0", 3, "0xtipper", "0xbob", 100, yesterday)
	addTip(t, "0xa-1", 3, "0xtipper", "0xbob", 200, today)
	addTip(t, "0xa-2", 4, "0xtipper", "0xbob", 300, today)

	weekAgo := today.Add(-time.Hour * 24 * 7)

	posts, err := s.GetDailyStats(ctx, storage.PostsEntity, weekAgo)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, yesterday.Format("2006-01-02"), posts[0].Date)
	assert.EqualValues(t, 1, posts[0].Count)
	assert.Equal(t, today.Format("2006-01-02"), posts[1].Date)
	assert.EqualValues(t, 2, posts[1].Count)

	tips, err := s.GetDailyStats(ctx, storage.TipsEntity, weekAgo)
	require.NoError(t, err)
	require.Len(t, tips, 2)
	assert.Equal(t, "100", tips[0].Volume)
	assert.Equal(t, "500", tips[1].Volume)
	assert.EqualValues(t, 2, tips[1].Count)
}

func TestPg_GetPlatformStats(t *testing.T) {
	defer cleanup(t)

	st, err := s.GetPlatformStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, st.Posts)
	assert.Equal(t, "0", st.TotalTipped)

	createPost(t, 1, "0xalice", time.Now())
	createPost(t, 2, "0xbob", time.Now())

	addTip(t, "0xa-0", 1, "0xtipper", "0xalice", 100, time.Now())
	addTip(t, "0xa-1", 2, "0xtipper", "0xbob", 250, time.Now())

	st, err = s.GetPlatformStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, st.Posts)
	assert.EqualValues(t, 2, st.Tips)
	assert.EqualValues(t, 2, st.Creators)
	assert.Equal(t, "350", st.TotalTipped)
}
