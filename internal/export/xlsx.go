package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/bfqc/courtres/internal/models"
)

var columns = []string{"ID", "Date", "Time", "Name", "Contact", "Coaching"}

// Sheet is one named tab of reservations.
type Sheet struct {
	Name string
	Rows []models.Reservation
}

// WriteReservations renders each sheet with a bold header row and writes the
// workbook to w.
func WriteReservations(w io.Writer, sheets ...Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, s := range sheets {
		name := s.Name
		// Excel limit
		if len(name) > 31 {
			name = name[:31]
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}

		if err := writeRow(f, name, 1, toAny(columns)); err != nil {
			return err
		}
		end, err := excelize.CoordinatesToCellName(len(columns), 1)
		if err != nil {
			return fmt.Errorf("header range: %w", err)
		}
		if err := f.SetCellStyle(name, "A1", end, bold); err != nil {
			return fmt.Errorf("style header %s: %w", name, err)
		}

		for j, r := range s.Rows {
			coaching := "no"
			if r.WithCoaching {
				coaching = "yes"
			}
			row := []any{r.ID, r.DateISO(), r.TimeSlot, r.Name, r.ContactNumber, coaching}
			if err := writeRow(f, name, j+2, row); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
