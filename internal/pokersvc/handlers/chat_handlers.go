package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/unipoker/poker-services/internal/apperr"
	"github.com/unipoker/poker-services/internal/pokersvc/ratelimit"
)

type chatPostRequest struct {
	Content string `json:"content" validate:"required,max=500"`
}

// GetChatHistory pages through the room with ?limit= and ?cursor=. Pages
// come back oldest-first.
func (h *Handler) GetChatHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			h.CreateError(w, apperr.Validationf("invalid limit"))
			return
		}
		limit = v
	}
	cursor := r.URL.Query().Get("cursor")

	page, err := h.chat.History(r.Context(), cursor, limit)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Code: http.StatusOK,
		Data: page,
	})
}

func (h *Handler) PostChatMessage(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	var req chatPostRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.CreateError(w, err)
		return
	}

	msg, res, err := h.chat.Post(r.Context(), userID, user.DisplayName, req.Content)
	if err != nil {
		setRateLimitHeaders(w, res)
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Kind == apperr.RateLimit {
			w.Header().Set("Retry-After", strconv.Itoa(res.RetryAfterSeconds(time.Now())))
		}
		h.CreateError(w, err)
		return
	}

	setRateLimitHeaders(w, res)
	h.CreateResponse(w, Response{
		Message: "message sent",
		Code:    http.StatusCreated,
		Data:    msg,
	})
}

// setRateLimitHeaders echoes limiter metadata so clients can self-throttle.
func setRateLimitHeaders(w http.ResponseWriter, res ratelimit.Result) {
	if res.Limit == 0 {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
}
