package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/magnify-ai/fluidmesh/internal/sim"
)

var ErrRunNotFound = errors.New("storage: run not found")

var traceHeader = []string{"frame", "time", "mean", "peak", "moved"}

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
	ID              string             `json:"id"`
	Page            string             `json:"page"`
	Preset          string             `json:"preset,omitempty"`
	Timestamp       time.Time          `json:"timestamp"`
	Seed            int64              `json:"seed"`
	Width           float64            `json:"width"`
	Height          float64            `json:"height"`
	Columns         int                `json:"columns"`
	Rows            int                `json:"rows"`
	Speed           float64            `json:"speed"`
	NoiseScale      float64            `json:"noise_scale"`
	MaxDisplacement float64            `json:"max_displacement"`
	Frames          int                `json:"frames"`
	Metrics         map[string]float64 `json:"metrics"`
}

// Save writes one run under a fresh directory and returns its ID. ID and
// Timestamp are filled in when empty; Frames and Metrics always come from
// the result.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Page, meta.Timestamp.UnixNano())
	}
	meta.Frames = len(result.Frames)
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(traceHeader); err != nil {
		return "", err
	}
	for _, f := range result.Frames {
		row := []string{
			strconv.Itoa(f.Frame),
			strconv.FormatFloat(f.Time, 'f', 6, 64),
			strconv.FormatFloat(f.MeanDisplacement, 'f', 6, 64),
			strconv.FormatFloat(f.PeakDisplacement, 'f', 6, 64),
			strconv.Itoa(f.Moved),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every readable run, oldest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrace reads back the per-frame statistics of a run. Malformed rows are
// skipped.
func (s *Store) LoadTrace(runID string) ([]sim.FrameStats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.FrameStats{}, nil
	}

	trace := make([]sim.FrameStats, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(traceHeader) {
			continue
		}
		frame, err1 := strconv.Atoi(record[0])
		t, err2 := strconv.ParseFloat(record[1], 64)
		mean, err3 := strconv.ParseFloat(record[2], 64)
		peak, err4 := strconv.ParseFloat(record[3], 64)
		moved, err5 := strconv.Atoi(record[4])
		if err := errors.Join(err1, err2, err3, err4, err5); err != nil {
			continue
		}
		trace = append(trace, sim.FrameStats{
			Frame:            frame,
			Time:             t,
			MeanDisplacement: mean,
			PeakDisplacement: peak,
			Moved:            moved,
		})
	}
	return trace, nil
}
