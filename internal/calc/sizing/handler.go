package sizing

import (
	"encoding/json"
	"net/http"

	"Orthos/internal/calc"
	"Orthos/internal/config"
)

type Handler struct {
	Materials config.Materials
}

func (h *Handler) Plate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Size(input, h.Materials)
	if err != nil {
		calc.Fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
