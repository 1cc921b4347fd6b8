package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVDetailedExporter adds the yearly change and withdrawal to each series row.
// Withdrawals are the amounts actually drawn, so rows after depletion show zero.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "csv-detailed" }

func (c CSVDetailedExporter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Age", "Phase", "StartBalance", "Withdrawal", "EndBalance", "Change"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	withdrawals := report.Result.Withdrawals()
	prev := report.Profile.CurrentSavings
	for i, pt := range report.Series {
		withdrawal := decimal.Zero
		if j := i - report.Result.AccumulationYears; j >= 0 && j < len(withdrawals) {
			withdrawal = withdrawals[j]
		}
		row := []string{
			intToString(i + 1),
			intToString(pt.Age),
			string(pt.Phase),
			prev.StringFixed(2),
			withdrawal.StringFixed(2),
			pt.Balance.StringFixed(2),
			pt.Balance.Sub(prev).StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
		prev = pt.Balance
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
