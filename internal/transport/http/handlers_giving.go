package http

import (
	"net/http"

	"churchapp/internal/dto"
	"churchapp/internal/service"
)

type givingHandler struct {
	giving service.GivingService
}

func (h *givingHandler) donate(w http.ResponseWriter, r *http.Request) {
	var req dto.DonationRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.giving.Donate(r.Context(), userFrom(r.Context()).ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *givingHandler) history(w http.ResponseWriter, r *http.Request) {
	page, err := h.giving.History(r.Context(), userFrom(r.Context()).ID, queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
