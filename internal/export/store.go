package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Store writes recording runs under a base directory: one directory per run
// holding metadata.json and samples.csv.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Visualizer string             `json:"visualizer"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       uint64             `json:"seed"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	FPS        int                `json:"fps"`
	Frames     int                `json:"frames"`
	Params     any                `json:"params,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Sample is one frame of a run.
type Sample struct {
	Frame      int
	Population int
	Metrics    []float64
}

// Save writes meta and samples. names labels the Metrics columns of each
// sample. It returns the run ID.
func (s *Store) Save(meta RunMetadata, names []string, samples []Sample) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	runDir, err := s.claim(&meta)
	if err != nil {
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

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	header := append([]string{"frame", "population"}, names...)
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, sm := range samples {
		row := []string{strconv.Itoa(sm.Frame), strconv.Itoa(sm.Population)}
		for i := range names {
			v := 0.0
			if i < len(sm.Metrics) {
				v = sm.Metrics[i]
			}
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
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

// claim creates the run directory. A generated ID is
// <visualizer>_<unix seconds>_<seed>, with a counter appended when another
// run already holds it. A caller supplied ID is reused as is.
func (s *Store) claim(meta *RunMetadata) (string, error) {
	if meta.ID != "" {
		dir := filepath.Join(s.baseDir, meta.ID)
		return dir, os.MkdirAll(dir, 0755)
	}
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}
	base := fmt.Sprintf("%s_%d_%d", meta.Visualizer, meta.Timestamp.Unix(), meta.Seed)
	for n := 1; ; n++ {
		id := base
		if n > 1 {
			id = fmt.Sprintf("%s_%d", base, n)
		}
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		meta.ID = id
		return dir, nil
	}
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSamples reads samples.csv back. Malformed rows are skipped.
func (s *Store) LoadSamples(runID string) ([]string, []Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, []Sample{}, nil
	}

	names := records[0][min(2, len(records[0])):]
	samples := make([]Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		frame, err1 := strconv.Atoi(rec[0])
		pop, err2 := strconv.Atoi(rec[1])
		if err1 != nil || err2 != nil {
			continue
		}
		sm := Sample{Frame: frame, Population: pop}
		for _, v := range rec[2:] {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				f = 0
			}
			sm.Metrics = append(sm.Metrics, f)
		}
		samples = append(samples, sm)
	}
	return names, samples, nil
}
