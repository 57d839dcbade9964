package fatigue

import (
	"encoding/json"
	"net/http"

	"Orthos/internal/calc"
	"Orthos/internal/diagram"
)

type Handler struct{}

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
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// Chart responds with the S-N curve as a PNG over 1e3..1e7 cycles.
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	var c Curve
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	img, err := Chart(c)
	if err != nil {
		calc.Fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(img)
}

// Chart plots the curve in MPa on a log cycle axis.
func Chart(c Curve) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	cycles, strength, err := c.Points(DefaultNMin, DefaultNMax, DefaultPoints)
	if err != nil {
		return nil, err
	}
	for i := range strength {
		strength[i] /= 1e6
	}
	p, err := diagram.Curves("S-N curve", "Cycles to failure (N)", "Stress amplitude (MPa)", true,
		diagram.Series{X: cycles, Y: strength})
	if err != nil {
		return nil, err
	}
	return diagram.PNG(p)
}
