package hole

import (
	"encoding/json"
	"net/http"

	"Orthos/internal/calc"
	"Orthos/internal/config"
)

type Handler struct {
	Materials config.Materials
}

func (h *Handler) PSC(w http.ResponseWriter, r *http.Request) {
	var input StrengthInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Strength(input)
	if err != nil {
		calc.Fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) Boundary(w http.ResponseWriter, r *http.Request) {
	var input BoundaryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Boundary(input, h.Materials)
	if err != nil {
		calc.Fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
