package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"stayhub/internal/app"
	"stayhub/internal/domain"
)

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := paging(r)
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	out, err := h.Bookings.GetAll(r.Context(), app.BookingFilter{
		UserID: q.Get("userId"),
		Status: q.Get("status"),
		SortBy: q.Get("sortBy"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) bookingsByStatus(w http.ResponseWriter, r *http.Request) {
	out, err := h.Bookings.GetByStatus(r.Context(), chi.URLParam(r, "status"), r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) upcomingBookings(w http.ResponseWriter, r *http.Request) {
	out, err := h.Bookings.GetUpcoming(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) recentBookings(w http.ResponseWriter, r *http.Request) {
	limit, _, err := paging(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Bookings.GetRecent(r.Context(), r.URL.Query().Get("userId"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Bookings.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var in domain.BookingInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Bookings.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (h *Handlers) updateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in domain.BookingUpdate
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Bookings.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Bookings.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) deleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Bookings.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
