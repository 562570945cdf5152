package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/amandanordqvist/datingapp/internal/config"
	authsvc "github.com/amandanordqvist/datingapp/internal/services/auth"
	chatsvc "github.com/amandanordqvist/datingapp/internal/services/chats"
	decksvc "github.com/amandanordqvist/datingapp/internal/services/deck"
	mediasvc "github.com/amandanordqvist/datingapp/internal/services/media"
	momentsvc "github.com/amandanordqvist/datingapp/internal/services/moments"
	prefsvc "github.com/amandanordqvist/datingapp/internal/services/prefs"
	profilesvc "github.com/amandanordqvist/datingapp/internal/services/profiles"
	"github.com/amandanordqvist/datingapp/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService    *authsvc.Service
	DeckService    *decksvc.Service
	MomentsService *momentsvc.Service
	ViewerSessions *momentsvc.ViewerSessions
	ChatsService   *chatsvc.Service
	ProfileService *profilesvc.Service
	PrefsService   *prefsvc.Service
	MediaService   *mediasvc.Service
	Logger         *zap.Logger
	Config         config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	deckHandler := handlers.NewDeckHandler(deps.DeckService)
	momentsHandler := handlers.NewMomentsHandler(deps.MomentsService, deps.ViewerSessions)
	chatsHandler := handlers.NewChatsHandler(deps.ChatsService)
	profileHandler := handlers.NewProfileHandler(deps.ProfileService)
	prefsHandler := handlers.NewPrefsHandler(deps.PrefsService)
	mediaHandler := handlers.NewMediaHandler(deps.MediaService)
	healthHandler := handlers.NewHealthHandler()
	authMW := AuthMiddleware(deps.AuthService, deps.Logger)

	r.Get("/healthz", healthHandler.Health)

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.With(authMW).Post("/logout", authHandler.Logout)
		r.With(authMW).Post("/logout_all", authHandler.LogoutAll)
	})

	r.Route("/v1", func(r chi.Router) {
		r.With(authMW).Get("/deck", deckHandler.State)
		r.With(authMW).Post("/deck/open", deckHandler.Open)
		r.With(authMW).Post("/deck/drag", deckHandler.Drag)
		r.With(authMW).Post("/deck/release", deckHandler.Release)
		r.With(authMW).Post("/deck/superlike", deckHandler.SuperLike)
		r.With(authMW).Post("/deck/tap-image", deckHandler.TapImage)
		r.With(authMW).Post("/deck/reset", deckHandler.Reset)
		r.With(authMW).Post("/deck/close", deckHandler.Close)

		r.With(authMW).Get("/moments", momentsHandler.List)
		r.With(authMW).Get("/moments/mine", momentsHandler.Mine)
		r.With(authMW).Post("/moments", momentsHandler.Create)
		r.With(authMW).Post("/moments/{id}/like", momentsHandler.ToggleLike)
		r.With(authMW).Post("/moments/{id}/reply", momentsHandler.Reply)

		r.With(authMW).Get("/moments/viewer", momentsHandler.ViewerState)
		r.With(authMW).Post("/moments/viewer/open", momentsHandler.ViewerOpen)
		r.With(authMW).Post("/moments/viewer/next", momentsHandler.ViewerNext)
		r.With(authMW).Post("/moments/viewer/prev", momentsHandler.ViewerPrev)
		r.With(authMW).Post("/moments/viewer/close", momentsHandler.ViewerClose)

		r.With(authMW).Get("/chats", chatsHandler.List)
		r.With(authMW).Get("/chats/{id}/messages", chatsHandler.Messages)
		r.With(authMW).Post("/chats/{id}/messages", chatsHandler.Send)
		r.With(authMW).Post("/chats/{id}/read", chatsHandler.MarkRead)

		r.With(authMW).Get("/profiles", profileHandler.List)
		r.With(authMW).Get("/profiles/{id}", profileHandler.Get)
		r.With(authMW).Get("/me/profile", profileHandler.Me)
		r.With(authMW).Put("/me/profile", profileHandler.UpdateMe)

		r.With(authMW).Get("/prefs/theme", prefsHandler.Theme)
		r.With(authMW).Put("/prefs/theme", prefsHandler.SetTheme)

		r.With(authMW).Post("/media/photo", mediaHandler.PhotoUpload)
	})
}
