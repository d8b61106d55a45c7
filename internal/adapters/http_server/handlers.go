package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"travelers/internal/adapters/mapbox"
	"travelers/internal/app"
	"travelers/internal/domain"
)

// MapState is the capability flag for the map collaborator, decided once at
// startup (token shape check plus optional remote probe).
type MapState struct {
	Enabled bool
	Message string
}

type Handlers struct {
	Q        *app.QueryService
	Trips    *app.TripService
	Bookings *app.BookingService
	Map      MapState
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/items", h.listItems)
	s.mux.Get("/v1/items/{id}", h.getItem)
	s.mux.Get("/v1/items/{id}/reviews", h.listReviews)
	s.mux.Get("/v1/items/{id}/similar", h.listSimilar)
	s.mux.Get("/v1/items/{id}/nearby", h.listNearby)
	s.mux.Get("/v1/destinations", h.listDestinations)
	s.mux.Get("/v1/testimonials", h.listTestimonials)
	s.mux.Get("/v1/regions", h.listRegions)
	s.mux.Get("/v1/map", h.mapView)

	s.mux.Get("/v1/trip", h.getTrip)
	s.mux.Post("/v1/trip/items", h.addTripItem)
	s.mux.Delete("/v1/trip/items/{id}", h.removeTripItem)
	s.mux.Delete("/v1/trip", h.clearTrip)

	s.mux.Post("/v1/bookings", h.beginBooking)
	s.mux.Post("/v1/bookings/{id}/confirm", h.confirmBooking)
	s.mux.Get("/v1/bookings/{id}", h.getBooking)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
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

// writeCacheable serves v with an ETag, short-circuiting to 304 when the
// client already holds the current version.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func filterFromQuery(r *http.Request) domain.Filter {
	q := r.URL.Query()
	return domain.Filter{
		Search: q.Get("search"),
		Type:   q.Get("type"),
		Region: q.Get("region"),
		Budget: q.Get("budget"),
		Rating: q.Get("rating"),
	}
}

func intParam(r *http.Request, name string, def, max int) (int, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > max {
		return 0, false
	}
	return n, true
}

// sessionID identifies the client context owning the trip cart. Carts are
// strictly per session; there is no cross-session state.
func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sid := r.Header.Get("X-Session-ID")
	if sid == "" {
		writeProblem(w, http.StatusBadRequest, "Missing session", "X-Session-ID header is required")
		return "", false
	}
	return sid, true
}

// ---- catalog ----

func (h *Handlers) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Q.Explore(r.Context(), filterFromQuery(r))
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Query failed", err.Error())
		return
	}
	writeCacheable(w, r, items)
}

func (h *Handlers) getItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.Q.Item(chi.URLParam(r, "id"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "item not found")
		return
	}
	writeCacheable(w, r, item)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	reviews, ok := h.Q.Reviews(chi.URLParam(r, "id"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "item not found")
		return
	}
	writeCacheable(w, r, reviews)
}

func (h *Handlers) listSimilar(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(r, "limit", 4, 50)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 50")
		return
	}
	writeCacheable(w, r, h.Q.Similar(chi.URLParam(r, "id"), limit))
}

func (h *Handlers) listNearby(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(r, "limit", 4, 50)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 50")
		return
	}
	radius := 100.0
	if rs := r.URL.Query().Get("radius"); rs != "" {
		f, err := strconv.ParseFloat(rs, 64)
		if err != nil || f <= 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid radius", "radius must be a positive number of km")
			return
		}
		radius = f
	}
	writeCacheable(w, r, h.Q.Nearby(chi.URLParam(r, "id"), radius, limit))
}

func (h *Handlers) listDestinations(w http.ResponseWriter, r *http.Request) {
	writeCacheable(w, r, h.Q.Destinations(r.URL.Query().Get("search")))
}

func (h *Handlers) listTestimonials(w http.ResponseWriter, r *http.Request) {
	writeCacheable(w, r, h.Q.Testimonials())
}

func (h *Handlers) listRegions(w http.ResponseWriter, r *http.Request) {
	writeCacheable(w, r, h.Q.Regions())
}

func (h *Handlers) mapView(w http.ResponseWriter, r *http.Request) {
	items, err := h.Q.Explore(r.Context(), filterFromQuery(r))
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Query failed", err.Error())
		return
	}
	view := mapbox.BuildView(items, r.URL.Query().Get("selected"), h.Map.Enabled, h.Map.Message)
	writeCacheable(w, r, view)
}

// ---- trip cart ----

type tripResponse struct {
	Items      []domain.TripItem `json:"items"`
	TotalPrice float64           `json:"totalPrice"`
	Recovered  bool              `json:"recovered,omitempty"`
}

func (h *Handlers) cart(w http.ResponseWriter, r *http.Request) (*app.Cart, bool) {
	sid, ok := sessionID(w, r)
	if !ok {
		return nil, false
	}
	cart, err := h.Trips.Cart(r.Context(), sid)
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Trip storage unavailable", err.Error())
		return nil, false
	}
	return cart, true
}

func (h *Handlers) getTrip(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.cart(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, tripResponse{Items: cart.Items(), TotalPrice: cart.TotalPrice(), Recovered: cart.Recovered()})
}

func (h *Handlers) addTripItem(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.cart(w, r)
	if !ok {
		return
	}
	var item domain.TripItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil || item.ID == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid trip item", "body must be a trip item with an id")
		return
	}
	cart.Add(r.Context(), item)
	writeJSON(w, http.StatusCreated, tripResponse{Items: cart.Items(), TotalPrice: cart.TotalPrice()})
}

func (h *Handlers) removeTripItem(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.cart(w, r)
	if !ok {
		return
	}
	cart.Remove(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, tripResponse{Items: cart.Items(), TotalPrice: cart.TotalPrice()})
}

func (h *Handlers) clearTrip(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.cart(w, r)
	if !ok {
		return
	}
	cart.Clear(r.Context())
	writeJSON(w, http.StatusOK, tripResponse{Items: []domain.TripItem{}, TotalPrice: 0})
}

// ---- booking ----

type beginBookingRequest struct {
	Item string `json:"item,omitempty"`
}

func (h *Handlers) beginBooking(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req beginBookingRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid body", "body must be JSON")
			return
		}
	}
	b, err := h.Bookings.Begin(r.Context(), sid, req.Item)
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Booking unavailable", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handlers) confirmBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Bookings.Confirm(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, app.ErrBookingNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "booking not found")
	case errors.Is(err, app.ErrBookingState):
		writeProblem(w, http.StatusConflict, "Invalid state", "booking cannot be confirmed from its current state")
	case err != nil:
		writeProblem(w, http.StatusInternalServerError, "Confirm failed", err.Error())
	default:
		writeJSON(w, http.StatusOK, b)
	}
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	b, ok := h.Bookings.Get(chi.URLParam(r, "id"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "booking not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}
