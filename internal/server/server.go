// Package server Midas
//
// The Midas is an off-chain service which provides access to social-tipping
// projections (posts, tips, delegations, creator earnings).
//
//     Schemes: https
//     BasePath: /v1
//     Version: 1.0.0
//
//     Produces:
//     - application/json
//     Consumes:
//     - application/json
//
// swagger:meta
package server

import (
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	mm "github.com/tipnet/midas/internal/middleware"
	"github.com/tipnet/midas/internal/service"
)

type server struct {
	s service.Service
}

// SetupRouter setups handlers to chi router.
func SetupRouter(s service.Service, r chi.Router, timeout time.Duration) {
	r.Use(
		requestIDMiddleware,
		loggerMiddleware,
		middleware.StripSlashes,
		cors.AllowAll().Handler,
		recovererMiddleware,
		middleware.Timeout(timeout),
	)

	srv := server{
		s: s,
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/posts", srv.listPosts)
		r.Get("/posts/{id}", srv.getPost)
		r.Get("/posts/{id}/tips", srv.listRecentTips)
		r.Get("/posts/{id}/delegations", srv.listActiveDelegations)
		r.Post("/posts/{id}/engagement", srv.addEngagement)
		r.Get("/creators/{address}", srv.getCreator)
		r.Get("/leaderboard", mm.Cached(time.Minute, srv.listTopCreators))
		r.Get("/stats", mm.Cached(10*time.Minute, srv.getPlatformStats))
		r.Get("/stats/daily", mm.Cached(time.Minute, srv.getDailyStats))
	})
}
