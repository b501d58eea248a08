package httpserver

import (
	"net/http"

	"stayhub/internal/app"
	"stayhub/internal/domain"
)

func reviewFilter(r *http.Request) (app.ReviewFilter, error) {
	limit, offset, err := paging(r)
	if err != nil {
		return app.ReviewFilter{}, err
	}
	q := r.URL.Query()
	return app.ReviewFilter{
		HotelID:   q.Get("hotelId"),
		UserID:    q.Get("userId"),
		MinRating: q.Get("minRating"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		Limit:     limit,
		Offset:    offset,
	}, nil
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	f, err := reviewFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Reviews.GetAll(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) getReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Reviews.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var in domain.ReviewInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Reviews.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (h *Handlers) updateReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in domain.ReviewInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Reviews.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Reviews.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
