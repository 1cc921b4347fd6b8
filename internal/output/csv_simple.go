package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/savings-projector/internal/domain"
)

// CSVSeriesExporter writes the plottable balance series, one row per simulated year.
type CSVSeriesExporter struct{}

func (c CSVSeriesExporter) Name() string { return "csv" }

func (c CSVSeriesExporter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"age", "balance", "phase"}); err != nil {
		return nil, err
	}
	for _, pt := range report.Series {
		if err := w.Write([]string{intToString(pt.Age), pt.Balance.StringFixed(2), string(pt.Phase)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
