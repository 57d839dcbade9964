package importer

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/xuri/excelize/v2"

	"Orthos/internal/calc"
	"Orthos/internal/calc/bending"
	"Orthos/internal/config"
)

const maxUpload = 10 << 20

type Handler struct {
	Materials config.Materials
}

// Import solves the plates of an uploaded workbook (form field "file").
// With ?format=xlsx the results come back as a workbook.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := ReadRows(file)
	if err != nil {
		calc.Fail(w, err)
		return
	}
	res, err := Import(rows, h.Materials)
	if err != nil {
		calc.Fail(w, err)
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		f, err := ResultsWorkbook(res)
		if err != nil {
			calc.Fail(w, err)
			return
		}
		writeWorkbook(w, f, "results.xlsx")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// Export solves one plate and responds with its workbook.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var input bending.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	sol, err := bending.Solve(input, h.Materials)
	if err != nil {
		calc.Fail(w, err)
		return
	}
	f, err := Workbook(input, sol)
	if err != nil {
		calc.Fail(w, err)
		return
	}
	writeWorkbook(w, f, "deflection.xlsx")
}

func writeWorkbook(w http.ResponseWriter, f *excelize.File, name string) {
	defer f.Close()
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
	if err := f.Write(w); err != nil {
		log.Printf("writing %s: %v", name, err)
	}
}
