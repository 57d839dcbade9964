package micromech

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

// Scan returns the volume fraction scan as JSON, or as a PNG chart when the
// request has ?format=png.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	var input ScanInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Scan(input)
	if err != nil {
		calc.Fail(w, err)
		return
	}
	if r.URL.Query().Get("format") != "png" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(res)
		return
	}

	img, err := Chart(res)
	if err != nil {
		calc.Fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(img)
}

// Chart plots E1 and E2 in GPa against the volume fraction.
func Chart(res ScanResult) ([]byte, error) {
	gpa := func(v []float64) []float64 {
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = x / 1e9
		}
		return out
	}
	p, err := diagram.Curves("Micromechanics: rule of mixtures vs Halpin-Tsai",
		"Fibre volume fraction", "Modulus (GPa)", false,
		diagram.Series{Name: "E1 (rule of mixtures)", X: res.Vf, Y: gpa(res.E1)},
		diagram.Series{Name: "E2 (Halpin-Tsai)", X: res.Vf, Y: gpa(res.E2)},
	)
	if err != nil {
		return nil, err
	}
	return diagram.PNG(p)
}
