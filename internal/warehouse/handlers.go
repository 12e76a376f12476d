package warehouse

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"depot/internal/logs"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type HTTP struct{ svc *Service }

func NewHTTP(s *Service) *HTTP { return &HTTP{svc: s} }

func (h *HTTP) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api/v1").Subrouter()

	// layouts
	api.HandleFunc("/layouts", h.createLayout).Methods(http.MethodPost)
	api.HandleFunc("/layouts", h.listLayouts).Methods(http.MethodGet)
	api.HandleFunc("/layouts/{id}", h.getLayout).Methods(http.MethodGet)
	api.HandleFunc("/layouts/{id}", h.deleteLayout).Methods(http.MethodDelete)

	// on-demand orphan scan
	api.HandleFunc("/integrity", h.integrity).Methods(http.MethodGet)
}

// pathID parses the {id} route variable.
func pathID(r *http.Request, name string) uint {
	id, _ := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	return uint(id)
}

// fail maps service errors onto the HTTP surface: validation -> 400,
// missing rows -> 404, storage failures -> 500 (logged, not retried).
func fail(w http.ResponseWriter, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		http.Error(w, ve.Error(), 400)
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "not found", 404)
	default:
		logs.Logger.Errorf("warehouse: %v", err)
		http.Error(w, err.Error(), 500)
	}
}

func (h *HTTP) createLayout(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name    string `json:"name"`
		Rows    int    `json:"rows"`
		Columns int    `json:"columns"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json", 400)
		return
	}
	l, err := h.svc.CreateLayout(in.Name, in.Rows, in.Columns)
	if err != nil {
		fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(l)
}

func (h *HTTP) listLayouts(w http.ResponseWriter, _ *http.Request) {
	ls, err := h.svc.Layouts()
	if err != nil {
		fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ls)
}

func (h *HTTP) getLayout(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Layout(pathID(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(l)
}

func (h *HTTP) deleteLayout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteLayout(pathID(r, "id")); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTP) integrity(w http.ResponseWriter, _ *http.Request) {
	rep, err := h.svc.Integrity()
	if err != nil {
		fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rep)
}
