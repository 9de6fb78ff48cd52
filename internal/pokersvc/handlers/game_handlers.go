package handlers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

type createGameRequest struct {
	ScheduledTime time.Time       `json:"scheduled_time" validate:"required"`
	Location      string          `json:"location" validate:"required,max=120"`
	BigBlind      decimal.Decimal `json:"big_blind"`
}

type updateGameStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed canceled"`
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	var req createGameRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.CreateError(w, err)
		return
	}

	game, err := h.games.CreateGame(r.Context(), userID, req.ScheduledTime, req.Location, req.BigBlind)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "game created",
		Code:    http.StatusCreated,
		Data:    game,
	})
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := urlParamInt64(r, "gameID")
	if err != nil {
		h.CreateError(w, err)
		return
	}

	game, err := h.games.GetGameByID(r.Context(), gameID)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Code: http.StatusOK,
		Data: game,
	})
}

// ListUpcomingGames supports ?host=<name> filtering and ?sort=date|host.
func (h *Handler) ListUpcomingGames(w http.ResponseWriter, r *http.Request) {
	hostName := r.URL.Query().Get("host")
	sortBy := r.URL.Query().Get("sort")

	games, err := h.games.GetUpcomingGames(r.Context(), hostName, sortBy)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Code: http.StatusOK,
		Data: games,
	})
}

func (h *Handler) MyGames(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	games, err := h.games.GetGamesForUser(r.Context(), userID)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Code: http.StatusOK,
		Data: games,
	})
}

func (h *Handler) UpdateGameStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	gameID, err := urlParamInt64(r, "gameID")
	if err != nil {
		h.CreateError(w, err)
		return
	}

	var req updateGameStatusRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.CreateError(w, err)
		return
	}

	game, err := h.games.UpdateStatus(r.Context(), gameID, userID, req.Status)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "game " + game.Status,
		Code:    http.StatusOK,
		Data:    game,
	})
}

// RequestToJoin files a pending join request via ?code=<invite code>.
func (h *Handler) RequestToJoin(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.CreateError(w, errInviteCodeRequired)
		return
	}

	jr, err := h.joinRequests.RequestToJoin(r.Context(), code, userID)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "join request submitted",
		Code:    http.StatusCreated,
		Data:    jr,
	})
}
