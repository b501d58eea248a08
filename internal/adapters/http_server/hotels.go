package httpserver

import (
	"net/http"

	"stayhub/internal/app"
	"stayhub/internal/domain"
)

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := paging(r)
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	out, err := h.Hotels.GetAll(r.Context(), app.HotelFilter{
		Destination: q.Get("destination"),
		MinPrice:    q.Get("minPrice"),
		MaxPrice:    q.Get("maxPrice"),
		StarRatings: multi(r, "starRating"),
		MinRating:   q.Get("rating"),
		SortBy:      q.Get("sortBy"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) featuredHotels(w http.ResponseWriter, r *http.Request) {
	out, err := h.Hotels.GetFeatured(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	out, err := h.Hotels.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Hotels.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var in domain.HotelInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Hotels.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (h *Handlers) createHotels(w http.ResponseWriter, r *http.Request) {
	var in []domain.HotelInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Hotels.CreateMany(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in domain.HotelInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Hotels.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Hotels.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) hotelAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	out, err := h.Hotels.CheckAvailability(r.Context(), id, q.Get("checkIn"), q.Get("checkOut"))
	if err != nil {
		writeError(w, err)
		return
	}
	// availability is randomized per call; never let clients revalidate it
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) hotelReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	f, err := reviewFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Reviews.GetByHotel(r.Context(), id, f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) hotelReviewStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Reviews.HotelStats(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}
