package http

import (
	"net/http"
	"strconv"

	"churchapp/internal/dto"
	"churchapp/internal/service"
	"churchapp/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type churchHandler struct {
	church service.ChurchService
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Error{Error: "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}

func (h *churchHandler) createBranch(w http.ResponseWriter, r *http.Request) {
	var req dto.BranchRequest
	if !decode(w, r, &req) {
		return
	}
	br, err := h.church.CreateBranch(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, br)
}

func (h *churchHandler) getBranch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	br, err := h.church.GetBranch(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, br)
}

func (h *churchHandler) listBranches(w http.ResponseWriter, r *http.Request) {
	page, err := h.church.ListBranches(r.Context(), queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *churchHandler) updateBranch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.BranchRequest
	if !decode(w, r, &req) {
		return
	}
	br, err := h.church.UpdateBranch(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, br)
}

func (h *churchHandler) deleteBranch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.church.DeleteBranch(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *churchHandler) createEvent(w http.ResponseWriter, r *http.Request) {
	var req dto.EventRequest
	if !decode(w, r, &req) {
		return
	}
	ev, err := h.church.CreateEvent(r.Context(), userFrom(r.Context()).ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

func (h *churchHandler) getEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ev, err := h.church.GetEvent(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (h *churchHandler) listEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.church.ListEvents(r.Context(), store.EventFilter{
		Status: q.Get("status"),
		Search: q.Get("search"),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *churchHandler) updateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.EventRequest
	if !decode(w, r, &req) {
		return
	}
	ev, err := h.church.UpdateEvent(r.Context(), id, userFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (h *churchHandler) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.church.DeleteEvent(r.Context(), id, userFrom(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *churchHandler) createSermon(w http.ResponseWriter, r *http.Request) {
	var req dto.SermonRequest
	if !decode(w, r, &req) {
		return
	}
	sm, err := h.church.CreateSermon(r.Context(), userFrom(r.Context()).ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sm)
}

func (h *churchHandler) getSermon(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	sm, err := h.church.GetSermon(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sm)
}

func (h *churchHandler) listSermons(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.church.ListSermons(r.Context(), store.SermonFilter{
		Search: q.Get("search"),
		Series: q.Get("series"),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *churchHandler) updateSermon(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.SermonRequest
	if !decode(w, r, &req) {
		return
	}
	sm, err := h.church.UpdateSermon(r.Context(), id, userFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sm)
}

func (h *churchHandler) deleteSermon(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.church.DeleteSermon(r.Context(), id, userFrom(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
