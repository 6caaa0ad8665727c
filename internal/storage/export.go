package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/oscillab/internal/laplace"
)

type ExportData struct {
	Meta     RunMetadata `json:"meta"`
	Times    []float64   `json:"times"`
	Position []float64   `json:"position"`
	Velocity []float64   `json:"velocity"`
}

func ExportJSON(w io.Writer, meta RunMetadata, times, position, velocity []float64) error {
	data := ExportData{
		Meta:     meta,
		Times:    times,
		Position: position,
		Velocity: velocity,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteBodeCSV streams a frequency response as CSV rows of
// frequency, magnitude (dB) and phase (degrees).
func WriteBodeCSV(w io.Writer, resp *laplace.FrequencyResponse) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"frequency_rad_s", "magnitude_db", "phase_deg"}); err != nil {
		return err
	}

	for i := range resp.Frequencies {
		row := []string{
			strconv.FormatFloat(resp.Frequencies[i], 'g', -1, 64),
			strconv.FormatFloat(resp.MagnitudeDB[i], 'g', -1, 64),
			strconv.FormatFloat(resp.PhaseDeg[i], 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}
