package handlers

import (
	"net/http"

	"github.com/unipoker/poker-services/internal/apperr"
)

var errInviteCodeRequired = apperr.Validationf("invite code is required")

type joinRequestActionRequest struct {
	Action string `json:"action" validate:"required,oneof=approve denied"`
}

// ProcessJoinRequest lets a host approve or deny a pending join request.
func (h *Handler) ProcessJoinRequest(w http.ResponseWriter, r *http.Request) {
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
	requestID, err := urlParamInt64(r, "requestID")
	if err != nil {
		h.CreateError(w, err)
		return
	}

	var req joinRequestActionRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.CreateError(w, err)
		return
	}

	message, err := h.joinRequests.Process(r.Context(), gameID, requestID, req.Action, userID)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: message,
		Code:    http.StatusOK,
	})
}
