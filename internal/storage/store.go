package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/oscillab/internal/oscillator"
	"github.com/san-kum/oscillab/internal/solver"
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
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	Mass      float64 `json:"mass"`
	Damping   float64 `json:"damping"`
	Stiffness float64 `json:"stiffness"`
	Amplitude float64 `json:"amplitude"`
	Omega     float64 `json:"omega"`
	Position  float64 `json:"x0"`
	Velocity  float64 `json:"v0"`
	Duration  float64 `json:"duration"`
	Points    int     `json:"points"`

	NaturalFrequency float64 `json:"natural_frequency"`
	DampingRatio     float64 `json:"damping_ratio"`
	Regime           string  `json:"regime"`

	Steps   int                `json:"steps"`
	Metrics map[string]float64 `json:"metrics"`
}

func (s *Store) Save(p oscillator.Params, f oscillator.Forcing, init oscillator.Initial, spec solver.Spec, result *solver.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:               runID,
		Timestamp:        time.Now(),
		Mass:             p.Mass,
		Damping:          p.Damping,
		Stiffness:        p.Stiffness,
		Amplitude:        f.Amplitude,
		Omega:            f.Omega,
		Position:         init.Position,
		Velocity:         init.Velocity,
		Duration:         spec.Duration,
		Points:           spec.Points,
		NaturalFrequency: p.NaturalFrequency(),
		DampingRatio:     p.DampingRatio(),
		Regime:           p.Regime().String(),
		Steps:            result.Steps,
		Metrics:          result.Metrics,
	}

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

	csvPath := filepath.Join(runDir, "trajectory.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "position", "velocity"}); err != nil {
		return "", err
	}

	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Position[i], 'g', -1, 64),
			strconv.FormatFloat(result.Velocity[i], 'g', -1, 64),
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

func (s *Store) LoadTrajectory(runID string) (times, position, velocity []float64, err error) {
	csvPath := filepath.Join(s.baseDir, runID, "trajectory.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		x, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}

		times = append(times, t)
		position = append(position, x)
		velocity = append(velocity, v)
	}

	return times, position, velocity, nil
}
