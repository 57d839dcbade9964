package history

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"Orthos/internal/auth"
	"Orthos/internal/repo"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type Handler struct {
	Repo repo.Repository
}

// List returns the signed-in user's analyses, newest first. The page size
// comes from ?limit=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := DefaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, MaxLimit)
	}

	list, err := h.Repo.ListAnalyses(r.Context(), userID, limit)
	if err != nil {
		log.Printf("ListAnalyses error: %v", err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []repo.Analysis{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	a, err := h.Repo.GetAnalysis(r.Context(), userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("GetAnalysis error: %v", err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}
