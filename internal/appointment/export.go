package appointment

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportHeader = []string{"id", "time_slot", "name", "identity_number", "address", "phone"}

func exportRow(a Appointment) []string {
	return []string{strconv.Itoa(a.ID), a.TimeSlot, a.Name, a.IdentityNumber, a.Address, a.Phone}
}

// ExportDay renders the day sheet as CSV ("csv") or a workbook (anything
// else). A day with no bookings still yields the header row.
func (s *AppointmentService) ExportDay(date, format string) (contentType, filename string, out []byte, err error) {
	day, err := NormalizeDate(date)
	if err != nil {
		return "", "", nil, err
	}
	schedule := s.ScheduleForDate(day)

	if format == "csv" {
		out, err = buildCSV(schedule)
		if err != nil {
			return "", "", nil, err
		}
		return contentTypeCSV, "appointments-" + day + ".csv", out, nil
	}

	out, err = buildXLSX(schedule)
	if err != nil {
		return "", "", nil, err
	}
	return contentTypeXLSX, "appointments-" + day + ".xlsx", out, nil
}

func buildCSV(schedule *DaySchedule) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}

	for a, err := range schedule.All() {
		if err != nil {
			return nil, err
		}
		if err := w.Write(exportRow(a)); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func buildXLSX(schedule *DaySchedule) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := schedule.Date()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E2E8F0"}},
	})

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return nil, err
	}

	header := make([]interface{}, 0, len(exportHeader))
	for _, h := range exportHeader {
		header = append(header, excelize.Cell{Value: h, StyleID: headerStyle})
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, err
	}

	rowNum := 2
	for a, err := range schedule.All() {
		if err != nil {
			return nil, err
		}
		values := []interface{}{a.ID, a.TimeSlot, a.Name, a.IdentityNumber, a.Address, a.Phone}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := sw.SetRow(cell, values); err != nil {
			return nil, err
		}
		rowNum++
	}

	if err := sw.Flush(); err != nil {
		return nil, err
	}

	b, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
