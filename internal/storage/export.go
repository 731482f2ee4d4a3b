package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/gravsim/internal/sim"
)

type ExportData struct {
	Run      RunMetadata  `json:"run"`
	Time     []float64    `json:"time"`
	Bodies   []int        `json:"bodies"`
	Kinetic  []float64    `json:"kinetic"`
	Momentum [][2]float64 `json:"momentum"`
}

// ExportJSON writes a run's metadata and telemetry columns as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, samples []sim.Sample) error {
	data := ExportData{
		Run:      meta,
		Time:     make([]float64, len(samples)),
		Bodies:   make([]int, len(samples)),
		Kinetic:  make([]float64, len(samples)),
		Momentum: make([][2]float64, len(samples)),
	}
	for i, sm := range samples {
		data.Time[i] = sm.Time
		data.Bodies[i] = sm.Bodies
		data.Kinetic[i] = sm.Kinetic
		data.Momentum[i] = [2]float64{sm.Momentum.X, sm.Momentum.Y}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
