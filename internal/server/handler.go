package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/tipnet/midas/internal/entities"
	"github.com/tipnet/midas/internal/storage"
)

var errInvalidRequest = errors.New("invalid request")

func (s server) listPosts(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /posts Posts ListPosts
	//
	// Return posts sorted by recency, tips or engagement.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: sortBy
	//   in: query
	//   required: false
	//   default: createdAt
	//   type: string
	//   enum: [createdAt, tips, engagement]
	// - name: orderBy
	//   in: query
	//   required: false
	//   default: desc
	//   type: string
	//   enum: [asc, desc]
	// - name: creator
	//   description: filters posts by creator address
	//   in: query
	//   required: false
	// - name: limit
	//   in: query
	//   required: false
	//   default: 20
	//   maximum: 100
	// - name: after
	//   description: sets not-including bound for list by post id
	//   in: query
	//   required: false
	// - name: from
	//   description: sets lower datetime bound for list
	//   in: query
	//   required: false
	// - name: to
	//   description: sets upper datetime bound for list
	//   in: query
	//   required: false
	// responses:
	//   '200':
	//     description: Posts
	//     schema:
	//       "$ref": "#/definitions/ListPostsResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	params, err := extractListParamsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	posts, err := s.s.ListPosts(r.Context(), params)
	if err != nil {
		writeInternalErrorf(r.Context(), w, "failed to list posts: %s", err.Error())
		return
	}

	resp := ListPostsResponse{Posts: make([]*Post, len(posts))}
	for i, v := range posts {
		resp.Posts[i] = toAPIPost(v)
	}

	writeOK(w, http.StatusOK, resp)
}

func (s server) getPost(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /posts/{id} Posts GetPost
	//
	// Get post by id with its recent tips and active delegations.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: integer
	// responses:
	//   '200':
	//     description: Post
	//     schema:
	//       "$ref": "#/definitions/GetPostResponse"
	//   '404':
	//     description: post not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	id, err := extractPostID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.s.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeInternalErrorf(r.Context(), w, "failed to get post: %s", err.Error())
		return
	}

	resp := GetPostResponse{
		Post:        *toAPIPost(&p.Post),
		RecentTips:  make([]*Tip, len(p.RecentTips)),
		Delegations: make([]*Delegation, len(p.Delegations)),
	}
	for i, v := range p.RecentTips {
		resp.RecentTips[i] = toAPITip(v)
	}
	for i, v := range p.Delegations {
		resp.Delegations[i] = toAPIDelegation(v)
	}

	writeOK(w, http.StatusOK, resp)
}

func (s server) listRecentTips(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /posts/{id}/tips Posts ListRecentTips
	//
	// Return the post's recent tips, newest first.
	//
	// ---
	// responses:
	//   '200':
	//     description: Tips
	//   '500':
	//     description: internal server error

	id, err := extractPostID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit, err := extractLimit(r.URL.Query(), defaultLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tips, err := s.s.ListRecentTips(r.Context(), id, limit)
	if err != nil {
		writeInternalErrorf(r.Context(), w, "failed to list tips: %s", err.Error())
		return
	}

	out := make([]*Tip, len(tips))
	for i, v := range tips {
		out[i] = toAPITip(v)
	}

	writeOK(w, http.StatusOK, out)
}

func (s server) listActiveDelegations(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /posts/{id}/delegations Posts ListActiveDelegations
	//
	// Return the post's active auto-tip delegations.
	//
	// ---
	// responses:
	//   '200':
	//     description: Delegations
	//   '500':
	//     description: internal server error

	id, err := extractPostID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dd, err := s.s.ListActiveDelegations(r.Context(), id)
	if err != nil {
		writeInternalErrorf(r.Context(), w, "failed to list delegations: %s", err.Error())
		return
	}

	out := make([]*Delegation, len(dd))
	for i, v := range dd {
		out[i] = toAPIDelegation(v)
	}

	writeOK(w, http.StatusOK, out)
}

func (s server) addEngagement(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /posts/{id}/engagement Posts AddEngagement
	//
	// Increment the post's engagement counter.
	//
	// ---
	// responses:
	//   '200':
	//     description: ok
	//   '404':
	//     description: post not found
	//   '500':
	//     description: internal server error

	id, err := extractPostID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	delta := uint32(1)
	if v := r.URL.Query().Get("delta"); v != "" {
		d, err := strconv.ParseUint(v, 10, 32)
		if err != nil || d == 0 {
			writeError(w, http.StatusBadRequest, "invalid delta")
			return
		}
		delta = uint32(d)
	}

	if err := s.s.AddEngagement(r.Context(), id, delta); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeInternalErrorf(r.Context(), w, "failed to add engagement: %s", err.Error())
		return
	}

	writeOK(w, http.StatusOK, struct{}{})
}

func (s server) getCreator(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /creators/{address} Creators GetCreator
	//
	// Get creator earnings and activity by address.
	//
	// ---
	// responses:
	//   '200':
	//     description: Creator
	//     schema:
	//       "$ref": "#/definitions/Creator"
	//   '404':
	//     description: creator not found
	//   '500':
	//     description: internal server error

	address := chi.URLParam(r, "address")
	if address == "" {
		writeError(w, http.StatusBadRequest, "invalid address")
		return
	}

	c, err := s.s.GetCreator(r.Context(), address)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "creator not found")
			return
		}
		writeInternalErrorf(r.Context(), w, "failed to get creator: %s", err.Error())
		return
	}

	writeOK(w, http.StatusOK, Creator{
		Address:       c.Address,
		TotalEarnings: c.TotalEarnings,
		PostCount:     c.PostCount,
		TipCount:      c.TipCount,
	})
}

func (s server) listTopCreators(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /leaderboard Creators ListTopCreators
	//
	// Return creator leaderboard by earnings or sent tips count.
	//
	// ---
	// parameters:
	// - name: metric
	//   in: query
	//   required: false
	//   default: earnings
	//   type: string
	//   enum: [earnings, tips_sent]
	// - name: limit
	//   in: query
	//   required: false
	//   default: 10
	//   maximum: 100
	// - name: days
	//   description: limits the leaderboard to a trailing time window
	//   in: query
	//   required: false
	// responses:
	//   '200':
	//     description: Leaderboard
	//     schema:
	//       "$ref": "#/definitions/LeaderboardResponse"
	//   '400':
	//     description: bad request
	//   '500':
	//     description: internal server error

	params, err := extractLeaderboardParamsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rr, err := s.s.ListTopCreators(r.Context(), params)
	if err != nil {
		writeInternalErrorf(r.Context(), w, "failed to list top creators: %s", err.Error())
		return
	}

	resp := LeaderboardResponse{Creators: make([]*CreatorRank, len(rr))}
	for i, v := range rr {
		resp.Creators[i] = &CreatorRank{
			Address:  v.Address,
			TipCount: v.TipCount,
			Amount:   v.Amount,
		}
	}

	writeOK(w, http.StatusOK, resp)
}

func (s server) getPlatformStats(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /stats Stats GetPlatformStats
	//
	// Returns all-time platform stats.
	//
	// ---
	// responses:
	//   '200':
	//     description: Stats
	//     schema:
	//       "$ref": "#/definitions/PlatformStats"
	//   '500':
	//     description: internal server error

	st, err := s.s.GetPlatformStats(r.Context())
	if err != nil {
		writeInternalErrorf(r.Context(), w, "failed to get platform stats: %s", err.Error())
		return
	}

	writeOK(w, http.StatusOK, PlatformStats{
		Posts:       st.Posts,
		Tips:        st.Tips,
		Creators:    st.Creators,
		TotalTipped: st.TotalTipped,
	})
}

func (s server) getDailyStats(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /stats/daily Stats GetDailyStats
	//
	// Returns per-day post or tip counts over a trailing window.
	//
	// ---
	// parameters:
	// - name: entity
	//   in: query
	//   required: false
	//   default: posts
	//   type: string
	//   enum: [posts, tips]
	// - name: days
	//   in: query
	//   required: false
	//   default: 7
	//   maximum: 90
	// responses:
	//   '200':
	//     description: Stats
	//     schema:
	//       "$ref": "#/definitions/DailyStatsResponse"
	//   '400':
	//     description: bad request
	//   '500':
	//     description: internal server error

	entity := storage.PostsEntity
	switch r.URL.Query().Get("entity") {
	case "", "posts":
	case "tips":
		entity = storage.TipsEntity
	default:
		writeError(w, http.StatusBadRequest, "invalid entity")
		return
	}

	days := uint16(defaultStatsDays)
	if v := r.URL.Query().Get("days"); v != "" {
		d, err := strconv.ParseUint(v, 10, 16)
		if err != nil || d == 0 || d > maxStatsDays {
			writeError(w, http.StatusBadRequest, "invalid days")
			return
		}
		days = uint16(d)
	}

	ss, err := s.s.GetDailyStats(r.Context(), entity, days)
	if err != nil {
		writeInternalErrorf(r.Context(), w, "failed to get daily stats: %s", err.Error())
		return
	}

	resp := DailyStatsResponse{Stats: make([]DailyStat, len(ss))}
	for i, v := range ss {
		resp.Stats[i] = DailyStat{
			Date:   v.Date,
			Count:  v.Count,
			Volume: v.Volume,
		}
	}

	writeOK(w, http.StatusOK, resp)
}

func extractPostID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid post id", errInvalidRequest)
	}

	return id, nil
}

func extractLimit(q url.Values, def uint16) (uint16, error) {
	if s := q.Get("limit"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: failed to parse limit", errInvalidRequest)
		}

		if v == 0 || v > maxLimit {
			return 0, fmt.Errorf("%w: invalid limit", errInvalidRequest)
		}

		return uint16(v), nil
	}

	return def, nil
}

func extractListParamsFromQuery(q url.Values) (*storage.ListPostsParams, error) {
	out := storage.ListPostsParams{
		SortBy:  storage.CreatedAtSortType,
		OrderBy: storage.DescendingOrder,
		Limit:   defaultLimit,
	}

	switch q.Get("sortBy") {
	case "createdAt", "":
	case "tips":
		out.SortBy = storage.TipsSortType
	case "engagement":
		out.SortBy = storage.EngagementSortType
	default:
		return nil, fmt.Errorf("%w: invalid sortBy", errInvalidRequest)
	}

	orderBy := storage.OrderType(q.Get("orderBy"))
	switch orderBy {
	case storage.AscendingOrder, storage.DescendingOrder:
		out.OrderBy = orderBy
	case "":
	default:
		return nil, fmt.Errorf("%w: invalid orderBy", errInvalidRequest)
	}

	limit, err := extractLimit(q, defaultLimit)
	if err != nil {
		return nil, err
	}
	out.Limit = limit

	if s := q.Get("creator"); s != "" {
		out.Creator = &s
	}

	if s := q.Get("after"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse after", errInvalidRequest)
		}

		out.After = &v
	}

	if s := q.Get("from"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse from", errInvalidRequest)
		}

		out.From = &v
	}

	if s := q.Get("to"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse to", errInvalidRequest)
		}

		out.To = &v
	}

	return &out, nil
}

func extractLeaderboardParamsFromQuery(q url.Values) (*storage.LeaderboardParams, error) {
	out := storage.LeaderboardParams{
		Metric: storage.EarningsMetric,
		Limit:  defaultLeaderboardLimit,
	}

	switch q.Get("metric") {
	case "", "earnings":
	case "tips_sent":
		out.Metric = storage.TipsSentMetric
	default:
		return nil, fmt.Errorf("%w: invalid metric", errInvalidRequest)
	}

	limit, err := extractLimit(q, defaultLeaderboardLimit)
	if err != nil {
		return nil, err
	}
	out.Limit = limit

	if s := q.Get("days"); s != "" {
		v, err := strconv.ParseUint(s, 10, 16)
		if err != nil || v == 0 {
			return nil, fmt.Errorf("%w: failed to parse days", errInvalidRequest)
		}

		from := time.Now().UTC().AddDate(0, 0, -int(v))
		out.From = &from
	}

	return &out, nil
}

func toAPIPost(p *entities.Post) *Post {
	if p == nil {
		return nil
	}

	return &Post{
		ID:         p.ID,
		Creator:    p.Creator,
		Content:    p.Content,
		CreatedAt:  uint64(p.CreatedAt.Unix()),
		TotalTips:  p.TotalTips,
		TipCount:   p.TipCount,
		Engagement: p.Engagement,
	}
}

func toAPITip(t *entities.Tip) *Tip {
	if t == nil {
		return nil
	}

	return &Tip{
		ID:        t.ID,
		PostID:    t.PostID,
		Tipper:    t.Tipper,
		Creator:   t.Creator,
		Amount:    t.Amount,
		CreatedAt: uint64(t.CreatedAt.Unix()),
	}
}

func toAPIDelegation(d *entities.Delegation) *Delegation {
	if d == nil {
		return nil
	}

	return &Delegation{
		ID:        d.ID,
		PostID:    d.PostID,
		Tipper:    d.Tipper,
		Threshold: d.Threshold,
		Amount:    d.Amount,
		Active:    d.Active,
		CreatedAt: uint64(d.CreatedAt.Unix()),
	}
}
