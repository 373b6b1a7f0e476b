package attendance

import (
	"time"

	"github.com/pkg/errors"

	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

// MonthlyReport extracts the attendance rows for one calendar month.
type MonthlyReport struct {
	ledger model.LedgerStore
}

// NewMonthlyReport creates a MonthlyReport over the passed ledger.
func NewMonthlyReport(ledger model.LedgerStore) *MonthlyReport {
	return &MonthlyReport{ledger: ledger}
}

// Extract returns the joined rows whose timestamp falls within the given
// month and year (UTC), newest first. Out-of-range month or year values
// yield an empty report rather than an error; the extractor never re-sorts
// the ledger's natural order.
func (m *MonthlyReport) Extract(month, year int) ([]model.AttendanceRecord, error) {
	if month < 1 || month > 12 || year < 1 {
		return []model.AttendanceRecord{}, nil
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	// Events are stored with second precision, so the last included instant
	// is one second before the first instant of the next month.
	to := from.AddDate(0, 1, 0).Add(-time.Second)
	rows, err := m.ledger.QueryRange(from, to)
	if err != nil {
		return nil, errors.Wrap(err, "report: range query failed")
	}
	if rows == nil {
		rows = []model.AttendanceRecord{}
	}
	return rows, nil
}
