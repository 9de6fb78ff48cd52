package handlers

import (
	"os"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {

		// public routes
		r.Get("/health", h.HealthHandler)
		r.Post("/users/register", h.Register)
		r.Post("/users/login", h.Login)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/users/payment-handles", h.GetPaymentHandles)
			r.Put("/users/payment-handles", h.UpdatePaymentHandles)

			r.Post("/games", h.CreateGame)
			r.Get("/games", h.ListUpcomingGames)
			r.Get("/games/mine", h.MyGames)
			r.Get("/games/{gameID}", h.GetGame)
			r.Patch("/games/{gameID}/status", h.UpdateGameStatus)
			r.Post("/games/join", h.RequestToJoin)
			r.Patch("/games/{gameID}/join-requests/{requestID}", h.ProcessJoinRequest)

			r.Post("/games/{gameID}/buy-ins", h.PlaceBuyIn)
			r.Patch("/games/{gameID}/buy-ins/{buyInID}/approve", h.ApproveBuyIn)
			r.Post("/games/{gameID}/cash-outs", h.RecordCashOut)

			r.Get("/leaderboard", h.GetLeaderboard)
			r.Get("/stats/me", h.MyStats)

			r.Get("/chat", h.GetChatHistory)
			r.Post("/chat", h.PostChatMessage)
		})
	})
}

func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)
}

// issueToken encodes a week-long session token for the given user.
func (h *Handler) issueToken(userID int64) (string, error) {
	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()

	_, tokenString, err := h.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"exp":     expirationTime,
	})
	return tokenString, err
}
