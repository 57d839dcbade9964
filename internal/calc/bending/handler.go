package bending

import (
	"encoding/json"
	"net/http"

	"Orthos/internal/calc"
	"Orthos/internal/config"
	"Orthos/internal/diagram"
)

type Handler struct {
	Materials config.Materials
	Recorder  calc.Recorder
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input, h.Materials)
	if err != nil {
		calc.Fail(w, err)
		return
	}
	calc.Record(r, h.Recorder, "plate/bending", input, res)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) Laminate(w http.ResponseWriter, r *http.Request) {
	var input Stack
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Describe(input, h.Materials)
	if err != nil {
		calc.Fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// Map responds with a PNG heat map of the deflection field.
func (h *Handler) Map(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	sol, err := Solve(input, h.Materials)
	if err != nil {
		calc.Fail(w, err)
		return
	}
	p, err := diagram.DeflectionMap(sol.Field, "")
	if err != nil {
		calc.Fail(w, err)
		return
	}
	img, err := diagram.PNG(p)
	if err != nil {
		calc.Fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(img)
}
