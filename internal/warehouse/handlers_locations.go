package warehouse

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type LocationHTTP struct{ svc *Service }

func NewLocationHTTP(s *Service) *LocationHTTP { return &LocationHTTP{svc: s} }

func (h *LocationHTTP) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/groups/{id}/locations", h.byGroup).Methods(http.MethodGet)
	api.HandleFunc("/layouts/{id}/locations", h.byLayout).Methods(http.MethodGet)

	// occupancy toggle from the visualization view
	api.HandleFunc("/locations/{id}", h.updateLocation).Methods(http.MethodPatch, http.MethodPut)
	api.HandleFunc("/locations/{id}", h.deleteLocation).Methods(http.MethodDelete)
}

func (h *LocationHTTP) byGroup(w http.ResponseWriter, r *http.Request) {
	locs, err := h.svc.LocationsByGroup(pathID(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(locs)
}

func (h *LocationHTTP) byLayout(w http.ResponseWriter, r *http.Request) {
	locs, err := h.svc.LocationsByLayout(pathID(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(locs)
}

func (h *LocationHTTP) updateLocation(w http.ResponseWriter, r *http.Request) {
	var in struct {
		IsOccupied *bool `json:"isOccupied"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.IsOccupied == nil {
		http.Error(w, "invalid json: isOccupied required", 400)
		return
	}
	loc, err := h.svc.SetOccupied(pathID(r, "id"), *in.IsOccupied)
	if err != nil {
		fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(loc)
}

func (h *LocationHTTP) deleteLocation(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteLocation(pathID(r, "id")); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
