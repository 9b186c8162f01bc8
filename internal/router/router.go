package router

import (
	"net/http"

	"github.com/senyabanana/trek-market/internal/config"
	"github.com/senyabanana/trek-market/internal/handlers"
	identity "github.com/senyabanana/trek-market/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// InitRoutes собирает роутер со всеми маршрутами ядра.
func InitRoutes(cfg *config.Config, requestHandler *handlers.RequestHandler, bidHandler *handlers.BidHandler, assignmentHandler *handlers.AssignmentHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))
	r.Use(identity.Identity)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", handlers.PingHandler)

		r.Route("/requests", func(r chi.Router) {
			r.Post("/", requestHandler.CreateRequest)
			r.Get("/", requestHandler.ListOpenRequests)
			r.Get("/my", requestHandler.ListMyRequests)
			r.Get("/{requestId}", requestHandler.GetRequest)
			r.Put("/{requestId}", requestHandler.UpdateRequest)
			r.Delete("/{requestId}", requestHandler.DeleteRequest)
			r.Get("/{requestId}/bids", bidHandler.ListRequestBids)
		})

		r.Route("/bids", func(r chi.Router) {
			r.Post("/", bidHandler.CreateBid)
			r.Put("/{bidId}", bidHandler.UpdateBid)
			r.Delete("/{bidId}", bidHandler.CancelBid)
			r.Post("/{bidId}/accept", bidHandler.AcceptBid)
		})

		r.Get("/bidders/{bidderId}/bids", bidHandler.ListBidderBids)

		r.Get("/assignments/my", assignmentHandler.ListMyAssignments)
	})

	return r
}
