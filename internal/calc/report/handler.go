package report

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"Orthos/internal/calc"
	"Orthos/internal/config"
)

type Handler struct {
	Materials config.Materials
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	pdf, err := Build(input, h.Materials, time.Now())
	if err != nil {
		calc.Fail(w, err)
		return
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	w.Write(buf.Bytes())
}
