package adminapi

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

// registerAttendance wires the attendance log view, the monthly report and
// the CSV export.
func registerAttendance(r fiber.Router, ledger model.LedgerStore, reports ReportExtractor) {
	g := r.Group("/attendance")

	g.Get(
		"/", func(c *fiber.Ctx) error {
			rows, err := ledger.ListJoined()
			if err != nil {
				return errorServer(c, err)
			}
			return c.JSON(rows)
		},
	)

	g.Get(
		"/report", func(c *fiber.Ctx) error {
			month := c.QueryInt("month")
			year := c.QueryInt("year")
			rows, err := reports.Extract(month, year)
			if err != nil {
				return errorServer(c, err)
			}
			return c.JSON(rows)
		},
	)

	g.Get(
		"/export", func(c *fiber.Ctx) error {
			month := c.QueryInt("month")
			year := c.QueryInt("year")
			rows, err := reports.Extract(month, year)
			if err != nil {
				return errorServer(c, err)
			}
			data, err := encodeCSV(rows)
			if err != nil {
				return errorServer(c, err)
			}
			c.Set(fiber.HeaderContentType, "text/csv")
			c.Set(
				fiber.HeaderContentDisposition,
				fmt.Sprintf(`attachment; filename="attendance_%d_%d.csv"`, month, year),
			)
			return c.Send(data)
		},
	)
}

// encodeCSV renders report rows with the conventional header.
func encodeCSV(rows []model.AttendanceRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Name", "Card ID", "Timestamp"}); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{
			row.Name,
			row.BadgeCode,
			row.Timestamp.UTC().Format(model.TimestampLayout),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
