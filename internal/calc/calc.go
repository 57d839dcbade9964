// Package calc holds what the calculation handlers share: input errors,
// mapping of domain errors to HTTP status codes, and recording of analyses
// for signed-in users.
package calc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"

	"Orthos/internal/auth"
	"Orthos/internal/laminate"
	"Orthos/internal/plate"
	"Orthos/internal/repo"
)

var (
	// ErrInvalidInput is returned for request values outside a formula's domain.
	ErrInvalidInput = errors.New("calc: invalid input")

	// ErrOutOfRange is returned when a valid input gives a result that
	// cannot be represented.
	ErrOutOfRange = errors.New("calc: result out of range")
)

// CheckFinite returns ErrOutOfRange naming what when any of vals is NaN or
// infinite. Such values cannot be encoded as JSON.
func CheckFinite(what string, vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrOutOfRange, what)
		}
	}
	return nil
}

// Recorder stores a finished analysis.
type Recorder interface {
	SaveAnalysis(ctx context.Context, a repo.Analysis) (int, error)
}

// Status maps a calculation error to an HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, laminate.ErrInvalidMaterial),
		errors.Is(err, plate.ErrUnsupportedMethod),
		errors.Is(err, plate.ErrInvalidMode),
		errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, plate.ErrNumericDegeneracy),
		errors.Is(err, ErrOutOfRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Fail writes err with the status chosen by Status.
func Fail(w http.ResponseWriter, err error) {
	code := Status(err)
	if code == http.StatusInternalServerError {
		log.Printf("calculation error: %v", err)
		http.Error(w, "Calculation error", code)
		return
	}
	http.Error(w, err.Error(), code)
}

// Record saves in and out under kind when rec is set and the request carries
// a signed-in user. Storage failures are logged, not returned.
func Record(r *http.Request, rec Recorder, kind string, in, out any) {
	if rec == nil {
		return
	}
	userID, ok := auth.UserID(r.Context())
	if !ok {
		return
	}
	input, err := json.Marshal(in)
	if err != nil {
		log.Printf("record %s: %v", kind, err)
		return
	}
	result, err := json.Marshal(out)
	if err != nil {
		log.Printf("record %s: %v", kind, err)
		return
	}
	a := repo.Analysis{UserID: userID, Kind: kind, Input: input, Result: result}
	if _, err := rec.SaveAnalysis(r.Context(), a); err != nil {
		log.Printf("record %s for user %d: %v", kind, userID, err)
	}
}
