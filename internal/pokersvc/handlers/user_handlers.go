package handlers

import (
	"net/http"

	"github.com/unipoker/poker-services/internal/pokersvc/models"
)

type registerRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=3,max=32"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

type paymentHandleInput struct {
	Type   string `json:"type" validate:"required,oneof=venmo paypal zelle cashapp"`
	Handle string `json:"handle" validate:"required,max=64"`
}

type paymentHandlesRequest struct {
	PaymentHandles []paymentHandleInput `json:"payment_handles" validate:"required,dive"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.CreateError(w, err)
		return
	}

	user, err := h.users.Register(r.Context(), req.DisplayName, req.Password)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	token, err := h.issueToken(user.UserID)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "account created",
		Code:    http.StatusCreated,
		Data: map[string]interface{}{
			"user":  user,
			"token": token,
		},
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.CreateError(w, err)
		return
	}

	user, err := h.users.Login(r.Context(), req.DisplayName, req.Password)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	token, err := h.issueToken(user.UserID)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "logged in",
		Code:    http.StatusOK,
		Data: map[string]interface{}{
			"user":  user,
			"token": token,
		},
	})
}

func (h *Handler) GetPaymentHandles(w http.ResponseWriter, r *http.Request) {
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

	h.CreateResponse(w, Response{
		Code: http.StatusOK,
		Data: user.PaymentHandles,
	})
}

func (h *Handler) UpdatePaymentHandles(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	var req paymentHandlesRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.CreateError(w, err)
		return
	}

	handles := make([]models.PaymentHandle, 0, len(req.PaymentHandles))
	for _, ph := range req.PaymentHandles {
		handles = append(handles, models.PaymentHandle{Type: ph.Type, Handle: ph.Handle})
	}

	if err := h.users.UpdatePaymentHandles(r.Context(), userID, handles); err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "payment handles updated",
		Code:    http.StatusOK,
		Data:    handles,
	})
}
