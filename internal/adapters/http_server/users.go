package httpserver

import (
	"net/http"
	"strconv"

	"stayhub/internal/app"
	"stayhub/internal/domain"
)

func (h *Handlers) currentUser(w http.ResponseWriter, r *http.Request) {
	out, err := h.Users.GetCurrent(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) createUser(w http.ResponseWriter, r *http.Request) {
	var in domain.UserInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Users.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (h *Handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in domain.ProfileUpdate
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Users.UpdateProfile(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) updatePreferences(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in domain.PreferencesUpdate
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Users.UpdatePreferences(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in struct {
		AvatarURL string `json:"avatarUrl"`
	}
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Users.UploadAvatar(r.Context(), id, in.AvatarURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) userReviews(w http.ResponseWriter, r *http.Request) {
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
	out, err := h.Reviews.GetByUser(r.Context(), id, f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) userBookings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	limit, offset, err := paging(r)
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	out, err := h.Bookings.GetAll(r.Context(), app.BookingFilter{
		UserID: strconv.FormatInt(id, 10),
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
