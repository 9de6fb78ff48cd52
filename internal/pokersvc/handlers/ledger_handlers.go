package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) PlaceBuyIn(w http.ResponseWriter, r *http.Request) {
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

	var req amountRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.CreateError(w, err)
		return
	}

	buyIn, err := h.ledger.PlaceBuyIn(r.Context(), gameID, userID, req.Amount)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "buy-in recorded, pending host approval",
		Code:    http.StatusCreated,
		Data:    buyIn,
	})
}

func (h *Handler) ApproveBuyIn(w http.ResponseWriter, r *http.Request) {
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
	buyInID, err := urlParamInt64(r, "buyInID")
	if err != nil {
		h.CreateError(w, err)
		return
	}

	buyIn, err := h.ledger.ApproveBuyIn(r.Context(), gameID, buyInID, userID)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "buy-in approved",
		Code:    http.StatusOK,
		Data:    buyIn,
	})
}

func (h *Handler) RecordCashOut(w http.ResponseWriter, r *http.Request) {
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

	var req amountRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.CreateError(w, err)
		return
	}

	cashOut, err := h.ledger.RecordCashOut(r.Context(), gameID, userID, req.Amount)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "cash-out recorded",
		Code:    http.StatusCreated,
		Data:    cashOut,
	})
}
