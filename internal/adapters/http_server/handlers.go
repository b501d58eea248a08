package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stayhub/internal/app"
	"stayhub/internal/domain"
	"stayhub/internal/query"
)

const maxLimit = 200

type Handlers struct {
	Hotels   *app.HotelService
	Reviews  *app.ReviewService
	Bookings *app.BookingService
	Users    *app.UserService
}

type problem struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status"`
	Detail   string                 `json:"detail,omitempty"`
	Failures []domain.RecordFailure `json:"failures,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1/hotels", func(r chi.Router) {
		r.Get("/", h.listHotels)
		r.Post("/", h.createHotel)
		r.Post("/batch", h.createHotels)
		r.Get("/featured", h.featuredHotels)
		r.Get("/search", h.searchHotels)
		r.Get("/{id}", h.getHotel)
		r.Patch("/{id}", h.updateHotel)
		r.Delete("/{id}", h.deleteHotel)
		r.Get("/{id}/availability", h.hotelAvailability)
		r.Get("/{id}/reviews", h.hotelReviews)
		r.Get("/{id}/review-stats", h.hotelReviewStats)
	})
	s.mux.Route("/v1/reviews", func(r chi.Router) {
		r.Get("/", h.listReviews)
		r.Post("/", h.createReview)
		r.Get("/{id}", h.getReview)
		r.Patch("/{id}", h.updateReview)
		r.Delete("/{id}", h.deleteReview)
	})
	s.mux.Route("/v1/bookings", func(r chi.Router) {
		r.Get("/", h.listBookings)
		r.Post("/", h.createBooking)
		r.Get("/upcoming", h.upcomingBookings)
		r.Get("/recent", h.recentBookings)
		r.Get("/status/{status}", h.bookingsByStatus)
		r.Get("/{id}", h.getBooking)
		r.Patch("/{id}", h.updateBooking)
		r.Post("/{id}/cancel", h.cancelBooking)
		r.Delete("/{id}", h.deleteBooking)
	})
	s.mux.Route("/v1/users", func(r chi.Router) {
		r.Post("/", h.createUser)
		r.Get("/me", h.currentUser)
		r.Get("/{id}", h.getUser)
		r.Patch("/{id}/profile", h.updateProfile)
		r.Patch("/{id}/preferences", h.updatePreferences)
		r.Put("/{id}/avatar", h.uploadAvatar)
		r.Get("/{id}/reviews", h.userReviews)
		r.Get("/{id}/bookings", h.userBookings)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemDoc(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemDoc(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps service errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	var (
		batch   *domain.BatchError
		backend *domain.BackendError
	)
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeProblem(w, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.As(err, &batch):
		writeProblemDoc(w, problem{
			Type: "about:blank", Title: "Backend rejected records", Status: http.StatusBadGateway,
			Detail: batch.Error(), Failures: batch.Failures,
		})
	case errors.As(err, &backend):
		writeProblem(w, http.StatusBadGateway, "Backend error", backend.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeProblem(w, http.StatusGatewayTimeout, "Timeout", "backend did not answer in time")
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeProblem(w, http.StatusInternalServerError, "Internal error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON writes v. GET responses carry an ETag and honour If-None-Match.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal error", "could not encode response")
		return
	}
	if r.Method == http.MethodGet && etag != "" {
		if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
			w.Header().Set("ETag", etag) // include ETag on 304
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &domain.ValidationError{Field: "body", Reason: err.Error()}
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	return query.ParseID("id", chi.URLParam(r, "id"))
}

// paging reads limit/offset. Missing limit means no paging.
func paging(r *http.Request) (limit, offset int, err error) {
	q := r.URL.Query()
	if s := q.Get("limit"); s != "" {
		l, err := strconv.Atoi(s)
		if err != nil || l <= 0 || l > maxLimit {
			return 0, 0, &domain.ValidationError{Field: "limit", Value: s, Reason: fmt.Sprintf("must be an integer between 1 and %d", maxLimit)}
		}
		limit = l
	}
	if s := q.Get("offset"); s != "" {
		o, err := strconv.Atoi(s)
		if err != nil || o < 0 {
			return 0, 0, &domain.ValidationError{Field: "offset", Value: s, Reason: "must be a non-negative integer"}
		}
		offset = o
	}
	return limit, offset, nil
}

// multi accepts both ?k=a&k=b and ?k=a,b.
func multi(r *http.Request, key string) []string {
	var out []string
	for _, v := range r.URL.Query()[key] {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
