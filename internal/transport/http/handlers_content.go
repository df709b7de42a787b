package http

import (
	"net/http"

	"churchapp/internal/dto"
	"churchapp/internal/service"
	"churchapp/internal/store"
)

type contentHandler struct {
	content service.ContentService
}

func (h *contentHandler) createTag(w http.ResponseWriter, r *http.Request) {
	var req dto.TagRequest
	if !decode(w, r, &req) {
		return
	}
	tag, err := h.content.CreateTag(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

func (h *contentHandler) listTags(w http.ResponseWriter, r *http.Request) {
	page, err := h.content.ListTags(r.Context(), queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *contentHandler) deleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.content.DeleteTag(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// The post and media handlers are closed over the kind so one set of
// routes serves /articles/, /blogposts/, /images/, /videos/, and
// /documents/.

func (h *contentHandler) createPost(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.PostRequest
		if !decode(w, r, &req) {
			return
		}
		p, err := h.content.CreatePost(r.Context(), kind, userFrom(r.Context()).ID, req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

func (h *contentHandler) getPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.content.GetPost(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *contentHandler) listPosts(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, err := h.content.ListPosts(r.Context(), store.PostFilter{
			Kind:   kind,
			Search: q.Get("search"),
			Tag:    q.Get("tag"),
			Limit:  queryInt(r, "limit"),
			Offset: queryInt(r, "offset"),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func (h *contentHandler) updatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.PostRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := h.content.UpdatePost(r.Context(), id, userFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *contentHandler) deletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.content.DeletePost(r.Context(), id, userFrom(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *contentHandler) createMedia(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.MediaRequest
		if !decode(w, r, &req) {
			return
		}
		m, err := h.content.CreateMedia(r.Context(), kind, userFrom(r.Context()).ID, req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

func (h *contentHandler) getMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	m, err := h.content.GetMedia(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *contentHandler) listMedia(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, err := h.content.ListMedia(r.Context(), store.MediaFilter{
			Kind:   kind,
			Search: q.Get("search"),
			Tag:    q.Get("tag"),
			Limit:  queryInt(r, "limit"),
			Offset: queryInt(r, "offset"),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func (h *contentHandler) updateMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.MediaRequest
	if !decode(w, r, &req) {
		return
	}
	m, err := h.content.UpdateMedia(r.Context(), id, userFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *contentHandler) deleteMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.content.DeleteMedia(r.Context(), id, userFrom(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
