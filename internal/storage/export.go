package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/minseo-dev/kinsim/internal/kinet"
)

// WriteCSV streams the time series in tabular form: one row per time
// step, a time column followed by one column per species.
func WriteCSV(w io.Writer, species []string, result *kinet.Result) error {
	cw := csv.NewWriter(w)

	header := append([]string{"time"}, species...)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(species)+1)
	for i, t := range result.Times {
		row[0] = strconv.FormatFloat(t, 'g', -1, 64)
		for j := range species {
			v := 0.0
			if j < len(result.States[i]) {
				v = result.States[i][j]
			}
			row[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportData is the JSON export shape consumed by external tooling.
type ExportData struct {
	Name        string             `json:"name"`
	Dt          float64            `json:"dt"`
	TEnd        float64            `json:"t_end"`
	Temperature float64            `json:"temperature"`
	Integrator  string             `json:"integrator"`
	Species     []string           `json:"species"`
	Equations   []string           `json:"equations"`
	Steps       int                `json:"steps"`
	Times       []float64          `json:"times"`
	States      [][]float64        `json:"states"`
	Warnings    int                `json:"warnings"`
	Metrics     map[string]float64 `json:"metrics"`
}

// WriteJSON streams the full run, metadata included, as indented JSON.
func WriteJSON(w io.Writer, meta RunMetadata, result *kinet.Result) error {
	data := ExportData{
		Name:        meta.Name,
		Dt:          meta.Dt,
		TEnd:        meta.TEnd,
		Temperature: meta.Temperature,
		Integrator:  meta.Integrator,
		Species:     meta.Species,
		Equations:   meta.Equations,
		Steps:       len(result.Times),
		Times:       result.Times,
		States:      make([][]float64, len(result.States)),
		Warnings:    len(result.Warnings),
		Metrics:     result.Metrics,
	}
	for i, s := range result.States {
		data.States[i] = s
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
