package buckling

import (
	"encoding/json"
	"net/http"

	"Orthos/internal/calc"
)

type Handler struct {
	Recorder calc.Recorder
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		calc.Fail(w, err)
		return
	}
	calc.Record(r, h.Recorder, "plate/buckling", input, res)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
