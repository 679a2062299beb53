package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Kaifateg/RelateHub/internal/config"
	authsvc "github.com/Kaifateg/RelateHub/internal/services/auth"
	contactsvc "github.com/Kaifateg/RelateHub/internal/services/contacts"
	discoversvc "github.com/Kaifateg/RelateHub/internal/services/discover"
	gallerysvc "github.com/Kaifateg/RelateHub/internal/services/gallery"
	matchessvc "github.com/Kaifateg/RelateHub/internal/services/matches"
	profilesvc "github.com/Kaifateg/RelateHub/internal/services/profiles"
	swipesvc "github.com/Kaifateg/RelateHub/internal/services/swipes"
	userssvc "github.com/Kaifateg/RelateHub/internal/services/users"
	"github.com/Kaifateg/RelateHub/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService     *authsvc.Service
	UserService     *userssvc.Service
	ProfileService  *profilesvc.Service
	SwipeService    *swipesvc.Service
	MatchService    *matchessvc.Service
	ContactService  *contactsvc.Service
	DiscoverService *discoversvc.Service
	GalleryService  *gallerysvc.Service
	Logger          *zap.Logger
	Config          config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.UserService)
	profileHandler := handlers.NewProfileHandler(deps.ProfileService)
	swipeHandler := handlers.NewSwipeHandler(deps.SwipeService)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchService, deps.SwipeService)
	contactsHandler := handlers.NewContactsHandler(deps.ContactService)
	discoverHandler := handlers.NewDiscoverHandler(deps.DiscoverService)
	galleryHandler := handlers.NewGalleryHandler(deps.GalleryService)
	authMW := AuthMiddleware(deps.AuthService, deps.Logger)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.With(authMW).Post("/logout", authHandler.Logout)
		r.With(authMW).Post("/logout_all", authHandler.LogoutAll)
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(authMW)

		r.Get("/profile/me", profileHandler.Me)
		r.Put("/profile/me", profileHandler.Update)
		r.Get("/profile/{userID}", profileHandler.Get)

		r.Post("/swipes", swipeHandler.Create)

		r.Get("/matches", matchesHandler.List)
		r.Get("/matches/liked", matchesHandler.Liked)
		r.Get("/matches/disliked", matchesHandler.Disliked)
		r.Get("/matches/history", matchesHandler.History)
		r.Get("/matches/likers", matchesHandler.Likers)
		r.Post("/matches/invite", matchesHandler.Invite)
		r.Get("/matches/invites", matchesHandler.Invites)

		r.Get("/discover", discoverHandler.List)

		r.Post("/contact-requests", contactsHandler.Create)
		r.Get("/contact-requests", contactsHandler.List)
		r.Get("/contact-requests/{requestID}", contactsHandler.Get)
		r.Patch("/contact-requests/{requestID}/accept", contactsHandler.Accept)
		r.Patch("/contact-requests/{requestID}/decline", contactsHandler.Decline)

		r.Post("/gallery/photos", galleryHandler.Upload)
		r.Get("/gallery/photos", galleryHandler.List)
		r.Patch("/gallery/photos/{photoID}/main", galleryHandler.SetMain)
		r.Delete("/gallery/photos/{photoID}", galleryHandler.Delete)
	})
}
