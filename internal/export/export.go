// Package export renders a MonthlySchedule as a downloadable employee x day
// grid, grounded on the teacher's generic tabular report renderer
// (internal/service/report.go's generateReportXLSX/generateReportPDF).
package export

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/nightshift-health/shiftplan/internal/model"
)

// grid is the employee x day table shared by both renderers: headers are
// "Employee" followed by one column per day of the month, values are the
// recovered ShiftCode (or a rest/holiday marker) for that (employee, date).
type grid struct {
	headers []string
	rows    [][]string
}

func buildGrid(schedule *model.MonthlySchedule) grid {
	daysInMonth := time.Date(schedule.Year, time.Month(schedule.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()

	byEmployee := make(map[uuid.UUID]map[int]model.AIShift, len(schedule.Shifts))
	names := make(map[uuid.UUID]string)
	for _, s := range schedule.Shifts {
		if _, ok := byEmployee[s.EmployeeID]; !ok {
			byEmployee[s.EmployeeID] = make(map[int]model.AIShift, daysInMonth)
		}
		byEmployee[s.EmployeeID][s.Date.Day()] = s
		names[s.EmployeeID] = s.EmployeeName
	}

	ids := make([]uuid.UUID, 0, len(byEmployee))
	for id := range byEmployee {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return names[ids[i]] < names[ids[j]] })

	headers := make([]string, 0, daysInMonth+1)
	headers = append(headers, "Employee")
	for day := 1; day <= daysInMonth; day++ {
		headers = append(headers, fmt.Sprintf("%d", day))
	}

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		row := make([]string, 0, daysInMonth+1)
		row = append(row, names[id])
		for day := 1; day <= daysInMonth; day++ {
			shift, ok := byEmployee[id][day]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, string(shift.Code()))
		}
		rows = append(rows, row)
	}

	return grid{headers: headers, rows: rows}
}

// XLSX renders the schedule as a .xlsx workbook.
func XLSX(schedule *model.MonthlySchedule) ([]byte, error) {
	data := buildGrid(schedule)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheetName := "Schedule"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if sheetName != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	for i, h := range data.headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}
	for rowIdx, row := range data.rows {
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheetName, cell, val)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PDF renders the schedule as a landscape A4 PDF.
func PDF(schedule *model.MonthlySchedule) ([]byte, error) {
	data := buildGrid(schedule)
	title := fmt.Sprintf("%s — %d/%02d", schedule.ServiceName, schedule.Year, schedule.Month)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	numCols := len(data.headers)
	pageWidth := 277.0
	colWidth := pageWidth / float64(numCols)
	if colWidth > 30 {
		colWidth = 30
	}

	pdf.SetFont("Helvetica", "B", 7)
	for i, h := range data.headers {
		w := colWidth
		if i == 0 {
			w = colWidth * 2
		}
		pdf.CellFormat(w, 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 6)
	for _, row := range data.rows {
		for i, val := range row {
			w := colWidth
			if i == 0 {
				w = colWidth * 2
			}
			pdf.CellFormat(w, 6, val, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
