package batch

import (
	"fmt"

	"Orthos/internal/calc"
	"Orthos/internal/calc/bending"
	"Orthos/internal/config"
)

// MaxItems caps the plates evaluated in one request.
const MaxItems = 100

type Input struct {
	Items []bending.Input `json:"items"`
}

// Item is the outcome for one plate: a result or the reason it failed.
// Row is the spreadsheet row for imported plates and the 1-based position
// otherwise.
type Item struct {
	Row    int             `json:"row"`
	Result *bending.Result `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type Result struct {
	Count   int    `json:"count"`
	Failed  int    `json:"failed"`
	Results []Item `json:"results"`
}

// Evaluate solves each plate independently. A failing plate is reported
// in its item and does not stop the others.
func Evaluate(items []bending.Input, rows []int, mats config.Materials) Result {
	out := Result{Results: make([]Item, 0, len(items))}
	for i, in := range items {
		item := Item{Row: i + 1}
		if rows != nil {
			item.Row = rows[i]
		}
		res, err := bending.Calculate(in, mats)
		if err != nil {
			item.Error = err.Error()
			out.Failed++
		} else {
			item.Result = &res
			out.Count++
		}
		out.Results = append(out.Results, item)
	}
	return out
}

func Calculate(in Input, mats config.Materials) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("%w: no items", calc.ErrInvalidInput)
	}
	if len(in.Items) > MaxItems {
		return Result{}, fmt.Errorf("%w: %d items exceed the limit of %d", calc.ErrInvalidInput, len(in.Items), MaxItems)
	}
	return Evaluate(in.Items, nil, mats), nil
}
