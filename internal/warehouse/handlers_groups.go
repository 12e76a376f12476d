package warehouse

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type GroupHTTP struct{ svc *Service }

func NewGroupHTTP(s *Service) *GroupHTTP { return &GroupHTTP{svc: s} }

func (h *GroupHTTP) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api/v1").Subrouter()

	// group creation generates the full location grid in one unit
	api.HandleFunc("/layouts/{id}/groups", h.createGroup).Methods(http.MethodPost)
	api.HandleFunc("/layouts/{id}/groups", h.listGroups).Methods(http.MethodGet)
	api.HandleFunc("/groups/{id}", h.deleteGroup).Methods(http.MethodDelete)
}

func (h *GroupHTTP) createGroup(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name          string `json:"name"`
		Column        int    `json:"column"`
		Row           int    `json:"row"`
		Rows          int    `json:"rows"`
		Columns       int    `json:"columns"`
		AddressFormat string `json:"addressFormat"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json", 400)
		return
	}
	g, err := h.svc.CreateGroup(pathID(r, "id"), GroupSpec{
		Name:          in.Name,
		Column:        in.Column,
		Row:           in.Row,
		Rows:          in.Rows,
		Columns:       in.Columns,
		AddressFormat: AddressFormat(in.AddressFormat),
	})
	if err != nil {
		fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(g)
}

func (h *GroupHTTP) listGroups(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.Groups(pathID(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(gs)
}

func (h *GroupHTTP) deleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteGroup(pathID(r, "id")); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
