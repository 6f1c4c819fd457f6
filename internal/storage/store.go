package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/deformsim/internal/session"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Organ     string             `json:"organ"`
	Mode      string             `json:"mode"`
	Rule      string             `json:"rule"`
	Falloff   string             `json:"falloff"`
	Timestamp time.Time          `json:"timestamp"`
	Force     float64            `json:"force"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Vertices  int                `json:"vertices"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Frame is one row of a stored run trace.
type Frame struct {
	Time    float64
	Contact bool
	MaxDisp float64
	ProbeX  float64
	ProbeY  float64
	ProbeZ  float64
}

// Save writes a run directory with metadata.json and frames.csv and
// returns the run ID.
func (s *Store) Save(meta RunMetadata, result *session.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Organ, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Metrics = result.Metrics

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "frames.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time", "contact", "max_disp", "probe_x", "probe_y", "probe_z"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range result.Times {
		contact := "0"
		if result.Contacts[i] {
			contact = "1"
		}
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			contact,
			strconv.FormatFloat(result.MaxDisp[i], 'f', 6, 64),
			strconv.FormatFloat(result.ProbePos[i].X, 'f', 6, 64),
			strconv.FormatFloat(result.ProbePos[i].Y, 'f', 6, 64),
			strconv.FormatFloat(result.ProbePos[i].Z, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]Frame, error) {
	csvPath := filepath.Join(s.baseDir, runID, "frames.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 6

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []Frame{}, nil
	}

	frames := make([]Frame, 0, len(records)-1)
	for _, record := range records[1:] {
		vals := make([]float64, 6)
		ok := true
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		frames = append(frames, Frame{
			Time:    vals[0],
			Contact: vals[1] != 0,
			MaxDisp: vals[2],
			ProbeX:  vals[3],
			ProbeY:  vals[4],
			ProbeZ:  vals[5],
		})
	}

	return frames, nil
}
