package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/SodiqOgundairo/condolence-backend/internal/config"
	authsvc "github.com/SodiqOgundairo/condolence-backend/internal/services/auth"
	gallerysvc "github.com/SodiqOgundairo/condolence-backend/internal/services/gallery"
	giftsvc "github.com/SodiqOgundairo/condolence-backend/internal/services/gifts"
	ratesvc "github.com/SodiqOgundairo/condolence-backend/internal/services/rate"
	tributesvc "github.com/SodiqOgundairo/condolence-backend/internal/services/tributes"
	"github.com/SodiqOgundairo/condolence-backend/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService    *authsvc.Service
	TributeService *tributesvc.Service
	GalleryService *gallerysvc.Service
	GiftService    *giftsvc.Service
	RateLimiter    *ratesvc.Limiter
	Logger         *zap.Logger
	Config         config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	messagesHandler := handlers.NewMessagesHandler(deps.TributeService, deps.Config.Site.MaxUploadBytes)
	photosHandler := handlers.NewPhotosHandler(deps.GalleryService, deps.Config.Site.MaxUploadBytes)
	giftsHandler := handlers.NewGiftsHandler(deps.GiftService)
	adminHandler := handlers.NewAdminHandler(deps.TributeService, deps.GalleryService, deps.GiftService)

	authMW := AuthMiddleware(deps.AuthService, deps.Logger)
	submitMW := SubmissionRateLimitMiddleware(deps.RateLimiter, deps.Logger)

	r.Get("/healthz", healthHandler.Handle)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/messages", messagesHandler.ListPublic)
		r.With(submitMW).Post("/messages", messagesHandler.Create)
		r.With(submitMW).Post("/messages/voice", messagesHandler.CreateVoice)

		r.Get("/photos", photosHandler.ListPublic)
		r.With(submitMW).Post("/photos", photosHandler.Create)

		r.With(submitMW).Post("/gifts", giftsHandler.Create)
		r.Post("/gifts/webhook", giftsHandler.Webhook)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.With(authMW).Post("/logout", authHandler.Logout)

		r.With(authMW).Get("/messages", adminHandler.ListMessages)
		r.With(authMW).Get("/photos", adminHandler.ListPhotos)
		r.With(authMW).Get("/gifts", adminHandler.ListGifts)
	})
}
