package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/deformsim/internal/session"
)

type ExportData struct {
	Organ    string             `json:"organ"`
	Mode     string             `json:"mode"`
	Rule     string             `json:"rule"`
	Falloff  string             `json:"falloff"`
	Force    float64            `json:"force"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Times    []float64          `json:"times"`
	Contacts []bool             `json:"contacts"`
	MaxDisp  []float64          `json:"max_disp"`
	Probe    [][3]float64       `json:"probe"`
	Metrics  map[string]float64 `json:"metrics"`
}

func buildExport(meta RunMetadata, result *session.Result) ExportData {
	data := ExportData{
		Organ:    meta.Organ,
		Mode:     meta.Mode,
		Rule:     meta.Rule,
		Falloff:  meta.Falloff,
		Force:    meta.Force,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Steps:    len(result.Times),
		Times:    result.Times,
		Contacts: result.Contacts,
		MaxDisp:  result.MaxDisp,
		Probe:    make([][3]float64, len(result.ProbePos)),
		Metrics:  result.Metrics,
	}
	for i, p := range result.ProbePos {
		data.Probe[i] = [3]float64{p.X, p.Y, p.Z}
	}
	return data
}

func writeExport(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, meta RunMetadata, result *session.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, buildExport(meta, result))
}

func ExportJSONStdout(meta RunMetadata, result *session.Result) error {
	return writeExport(os.Stdout, buildExport(meta, result))
}
