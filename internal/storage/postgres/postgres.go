// Package postgres is implementation of storage interface.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/tipnet/midas/internal/entities"
	"github.com/tipnet/midas/internal/storage"
)

var log = logrus.WithField("layer", "storage").WithField("package", "postgres")
var errBeginCalledWithinTx = errors.New("can not run InTx in tx")

const foreignKeyViolation = "23503"

type pg struct {
	ext sqlx.ExtContext
}

// New creates new instance of pg.
func New(db *sql.DB) storage.Storage {
	return pg{
		ext: sqlx.NewDb(db, "postgres"),
	}
}

type postDTO struct {
	ID         uint64    `db:"id"`
	Creator    string    `db:"creator"`
	Content    string    `db:"content"`
	CreatedAt  time.Time `db:"created_at"`
	TotalTips  string    `db:"total_tips"`
	TipCount   uint32    `db:"tip_count"`
	Engagement uint32    `db:"engagement"`
}

type creatorDTO struct {
	Address       string `db:"address"`
	TotalEarnings string `db:"total_earnings"`
	PostCount     uint32 `db:"post_count"`
	TipCount      uint32 `db:"tip_count"`
}

type tipDTO struct {
	ID        string    `db:"id"`
	PostID    uint64    `db:"post_id"`
	Tipper    string    `db:"tipper"`
	Creator   string    `db:"creator"`
	Amount    string    `db:"amount"`
	CreatedAt time.Time `db:"created_at"`
}

type delegationDTO struct {
	ID        uint64    `db:"id"`
	PostID    uint64    `db:"post_id"`
	Tipper    string    `db:"tipper"`
	Threshold uint64    `db:"threshold"`
	Amount    string    `db:"amount"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

func (s pg) InTx(ctx context.Context, f func(s storage.Storage) error) error {
	db, ok := s.ext.(*sqlx.DB)
	if !ok {
		return errBeginCalledWithinTx
	}

	tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to create tx: %w", err)
	}

	if err := f(pg{ext: tx}); err != nil {
		if err := tx.Rollback(); err != nil {
			log.WithError(err).Error("failed to rollback tx")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}

	return nil
}

func (s pg) GetHeight(ctx context.Context) (uint64, error) {
	var h uint64
	if err := sqlx.GetContext(ctx, s.ext, &h, `SELECT height FROM height`); err != nil {
		return 0, fmt.Errorf("failed to query: %w", err)
	}

	return h, nil
}

func (s pg) SetHeight(ctx context.Context, h uint64) error {
	if _, err := s.ext.ExecContext(ctx, `UPDATE height SET height=$1`, h); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

// CreatePost inserts the post and bumps its creator's post_count, but only
// when the post id wasn't seen before.
func (s pg) CreatePost(ctx context.Context, p *storage.CreatePostParams) error {
	res, err := s.ext.ExecContext(ctx, `
			WITH p AS (
				INSERT INTO post(id, creator, content, created_at)
				VALUES($1, $2, $3, $4)
				ON CONFLICT(id) DO NOTHING
				RETURNING creator
			)
			INSERT INTO creator(address, post_count)
			SELECT creator, 1 FROM p
			ON CONFLICT(address) DO UPDATE SET post_count = creator.post_count + 1
		`,
		p.ID, p.Creator, p.Content, p.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrAlreadyExists
	}

	return nil
}

func (s pg) GetPost(ctx context.Context, id uint64) (*entities.Post, error) {
	var p postDTO

	if err := sqlx.GetContext(ctx, s.ext, &p, `
			SELECT id, creator, content, created_at, total_tips::text AS total_tips, tip_count, engagement
			FROM post
			WHERE id = $1
		`, id,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return toPost(&p), nil
}

// nolint: gocyclo
func (s pg) ListPosts(ctx context.Context, p *storage.ListPostsParams) ([]*entities.Post, error) {
	column := "created_at"
	switch p.SortBy {
	case storage.TipsSortType:
		column = "total_tips"
	case storage.EngagementSortType:
		column = "engagement"
	}

	direction := "DESC"
	if p.OrderBy == storage.AscendingOrder {
		direction = "ASC"
	}

	where := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if p.Creator != nil {
		where = append(where, fmt.Sprintf("creator = %s", arg(*p.Creator)))
	}

	if p.From != nil {
		where = append(where, fmt.Sprintf("created_at >= to_timestamp(%s)", arg(*p.From)))
	}

	if p.To != nil {
		where = append(where, fmt.Sprintf("created_at <= to_timestamp(%s)", arg(*p.To)))
	}

	if p.After != nil {
		cmp := "<"
		if p.OrderBy == storage.AscendingOrder {
			cmp = ">"
		}
		a := arg(*p.After)
		where = append(where, fmt.Sprintf(
			"(%s, id) %s ((SELECT %s FROM post WHERE id = %s), %s)",
			column, cmp, column, a, a,
		))
	}

	q := `SELECT id, creator, content, created_at, total_tips::text AS total_tips, tip_count, engagement FROM post`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += fmt.Sprintf(" ORDER BY %s %s, id %s LIMIT %s", column, direction, direction, arg(p.Limit))

	var pp []*postDTO
	if err := sqlx.SelectContext(ctx, s.ext, &pp, q, args...); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Post, len(pp))
	for i, v := range pp {
		out[i] = toPost(v)
	}

	return out, nil
}

func (s pg) AddEngagement(ctx context.Context, id uint64, delta uint32) error {
	res, err := s.ext.ExecContext(ctx, `UPDATE post SET engagement = engagement + $2 WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// AddTip writes the tip into the ledger and rolls its amount into the post
// and creator aggregates as a single statement. A duplicate event id leaves
// every table untouched.
func (s pg) AddTip(ctx context.Context, p *storage.AddTipParams) error {
	res, err := s.ext.ExecContext(ctx, `
			WITH t AS (
				INSERT INTO tip(id, post_id, tipper, creator, amount, created_at)
				VALUES($1, $2, $3, $4, CAST($5 AS numeric), $6)
				ON CONFLICT(id) DO NOTHING
				RETURNING post_id, creator, amount
			), p AS (
				UPDATE post SET
					total_tips = post.total_tips + t.amount,
					tip_count = post.tip_count + 1
				FROM t WHERE post.id = t.post_id
			)
			INSERT INTO creator(address, total_earnings, tip_count)
			SELECT creator, amount, 1 FROM t
			ON CONFLICT(address) DO UPDATE SET
				total_earnings = creator.total_earnings + excluded.total_earnings,
				tip_count = creator.tip_count + 1
		`,
		p.ID, p.PostID, p.Tipper, p.Creator, p.Amount.String(), p.CreatedAt.UTC(),
	)
	if err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == foreignKeyViolation {
			return storage.ErrNotFound
		}

		return fmt.Errorf("failed to exec: %w", err)
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrAlreadyExists
	}

	return nil
}

func (s pg) ListRecentTips(ctx context.Context, postID uint64, limit uint16) ([]*entities.Tip, error) {
	var tt []*tipDTO

	if err := sqlx.SelectContext(ctx, s.ext, &tt, `
			SELECT id, post_id, tipper, creator, amount::text AS amount, created_at
			FROM tip
			WHERE post_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		`, postID, limit,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Tip, len(tt))
	for i, v := range tt {
		out[i] = &entities.Tip{
			ID:        v.ID,
			PostID:    v.PostID,
			Tipper:    v.Tipper,
			Creator:   v.Creator,
			Amount:    v.Amount,
			CreatedAt: v.CreatedAt,
		}
	}

	return out, nil
}

func (s pg) GetCreator(ctx context.Context, address string) (*entities.Creator, error) {
	var c creatorDTO

	if err := sqlx.GetContext(ctx, s.ext, &c, `
			SELECT address, total_earnings::text AS total_earnings, post_count, tip_count
			FROM creator
			WHERE address = $1
		`, address,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return &entities.Creator{
		Address:       c.Address,
		TotalEarnings: c.TotalEarnings,
		PostCount:     c.PostCount,
		TipCount:      c.TipCount,
	}, nil
}

func (s pg) ListTopCreators(ctx context.Context, p *storage.LeaderboardParams) ([]*entities.CreatorRank, error) {
	var (
		q    string
		args []interface{}
	)

	switch {
	case p.Metric == storage.EarningsMetric && p.From == nil:
		q = `
			SELECT address, tip_count, total_earnings::text AS amount
			FROM creator
			ORDER BY total_earnings DESC, address
			LIMIT $1`
		args = []interface{}{p.Limit}
	case p.Metric == storage.EarningsMetric:
		q = `
			SELECT creator AS address, COUNT(*) AS tip_count, SUM(amount)::text AS amount
			FROM tip
			WHERE created_at >= $2
			GROUP BY creator
			ORDER BY SUM(amount) DESC, creator
			LIMIT $1`
		args = []interface{}{p.Limit, p.From.UTC()}
	case p.From == nil:
		q = `
			SELECT tipper AS address, COUNT(*) AS tip_count, SUM(amount)::text AS amount
			FROM tip
			GROUP BY tipper
			ORDER BY COUNT(*) DESC, tipper
			LIMIT $1`
		args = []interface{}{p.Limit}
	default:
		q = `
			SELECT tipper AS address, COUNT(*) AS tip_count, SUM(amount)::text AS amount
			FROM tip
			WHERE created_at >= $2
			GROUP BY tipper
			ORDER BY COUNT(*) DESC, tipper
			LIMIT $1`
		args = []interface{}{p.Limit, p.From.UTC()}
	}

	var rr []*struct {
		Address  string `db:"address"`
		TipCount uint32 `db:"tip_count"`
		Amount   string `db:"amount"`
	}

	if err := sqlx.SelectContext(ctx, s.ext, &rr, q, args...); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.CreatorRank, len(rr))
	for i, v := range rr {
		out[i] = &entities.CreatorRank{
			Address:  v.Address,
			TipCount: v.TipCount,
			Amount:   v.Amount,
		}
	}

	return out, nil
}

func (s pg) CreateDelegation(ctx context.Context, p *storage.CreateDelegationParams) error {
	res, err := s.ext.ExecContext(ctx, `
			INSERT INTO delegation(id, post_id, tipper, threshold, amount, created_at)
			VALUES($1, $2, $3, $4, CAST($5 AS numeric), $6)
			ON CONFLICT(id) DO NOTHING
		`,
		p.ID, p.PostID, p.Tipper, p.Threshold, p.Amount.String(), p.CreatedAt.UTC(),
	)
	if err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == foreignKeyViolation {
			return storage.ErrNotFound
		}

		return fmt.Errorf("failed to exec: %w", err)
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrAlreadyExists
	}

	return nil
}

// DeactivateDelegation flips active to false. A delegation which is unknown
// or already inactive reports ErrNotFound, so the flag can never come back.
func (s pg) DeactivateDelegation(ctx context.Context, id uint64) (*entities.Delegation, error) {
	var d delegationDTO

	if err := sqlx.GetContext(ctx, s.ext, &d, `
			UPDATE delegation SET active = FALSE
			WHERE id = $1 AND active
			RETURNING id, post_id, tipper, threshold, amount::text AS amount, active, created_at
		`, id,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to exec: %w", err)
	}

	return toDelegation(&d), nil
}

func (s pg) ListActiveDelegations(ctx context.Context, postID uint64) ([]*entities.Delegation, error) {
	var dd []*delegationDTO

	if err := sqlx.SelectContext(ctx, s.ext, &dd, `
			SELECT id, post_id, tipper, threshold, amount::text AS amount, active, created_at
			FROM delegation
			WHERE post_id = $1 AND active
			ORDER BY created_at, id
		`, postID,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Delegation, len(dd))
	for i, v := range dd {
		out[i] = toDelegation(v)
	}

	return out, nil
}

func (s pg) GetDailyStats(ctx context.Context, e storage.StatsEntity, from time.Time) ([]entities.DailyStat, error) {
	q := `
		SELECT to_char(created_at, 'YYYY-MM-DD') AS date, COUNT(*) AS count, '0' AS volume
		FROM post
		WHERE created_at >= $1
		GROUP BY 1
		ORDER BY 1`

	if e == storage.TipsEntity {
		q = `
			SELECT to_char(created_at, 'YYYY-MM-DD') AS date, COUNT(*) AS count, SUM(amount)::text AS volume
			FROM tip
			WHERE created_at >= $1
			GROUP BY 1
			ORDER BY 1`
	}

	var ss []*struct {
		Date   string `db:"date"`
		Count  uint32 `db:"count"`
		Volume string `db:"volume"`
	}

	if err := sqlx.SelectContext(ctx, s.ext, &ss, q, from.UTC()); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]entities.DailyStat, len(ss))
	for i, v := range ss {
		out[i] = entities.DailyStat{
			Date:   v.Date,
			Count:  v.Count,
			Volume: v.Volume,
		}
	}

	return out, nil
}

func (s pg) GetPlatformStats(ctx context.Context) (*entities.PlatformStats, error) {
	var st struct {
		Posts       uint32 `db:"posts"`
		Tips        uint32 `db:"tips"`
		Creators    uint32 `db:"creators"`
		TotalTipped string `db:"total_tipped"`
	}

	if err := sqlx.GetContext(ctx, s.ext, &st, `
			SELECT
				(SELECT COUNT(*) FROM post) AS posts,
				(SELECT COUNT(*) FROM tip) AS tips,
				(SELECT COUNT(*) FROM creator) AS creators,
				(SELECT COALESCE(SUM(amount), 0)::text FROM tip) AS total_tipped
		`,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return &entities.PlatformStats{
		Posts:       st.Posts,
		Tips:        st.Tips,
		Creators:    st.Creators,
		TotalTipped: st.TotalTipped,
	}, nil
}

func toPost(p *postDTO) *entities.Post {
	return &entities.Post{
		ID:         p.ID,
		Creator:    p.Creator,
		Content:    p.Content,
		CreatedAt:  p.CreatedAt,
		TotalTips:  p.TotalTips,
		TipCount:   p.TipCount,
		Engagement: p.Engagement,
	}
}

func toDelegation(d *delegationDTO) *entities.Delegation {
	return &entities.Delegation{
		ID:        d.ID,
		PostID:    d.PostID,
		Tipper:    d.Tipper,
		Threshold: d.Threshold,
		Amount:    d.Amount,
		Active:    d.Active,
		CreatedAt: d.CreatedAt,
	}
}
