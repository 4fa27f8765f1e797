// Package export renders parsed TLE records into spreadsheet form.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kawamurakazushi/tle-parser/internal/tle"
)

// SheetName is the worksheet holding the records.
const SheetName = "TLE"

// Columns lists the header row, in the same order and naming as the JSON
// encoding of tle.TLE.
var Columns = []string{
	"name",
	"satellite_number",
	"classification",
	"international_designator",
	"epoch",
	"first_derivative_mean_motion",
	"second_derivative_mean_motion",
	"drag_term",
	"ephemeris_type",
	"element_number",
	"inclination",
	"right_ascension",
	"eccentricity",
	"argument_of_perigee",
	"mean_anomaly",
	"mean_motion",
	"revolution_number",
}

func row(t tle.TLE) []any {
	return []any{
		t.Name,
		t.SatelliteNumber,
		t.Classification.String(),
		t.InternationalDesignator,
		t.Epoch,
		t.FirstDerivativeMeanMotion,
		t.SecondDerivativeMeanMotion,
		t.DragTerm,
		t.EphemerisType,
		t.ElementNumber,
		t.Inclination,
		t.RightAscension,
		t.Eccentricity,
		t.ArgumentOfPerigee,
		t.MeanAnomaly,
		t.MeanMotion,
		t.RevolutionNumber,
	}
}

// WriteXLSX writes records as an .xlsx workbook with a bold header row.
// Numeric fields are stored as numbers; the epoch stays text.
func WriteXLSX(w io.Writer, records []tle.TLE) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	last, _ := excelize.ColumnNumberToName(len(Columns))
	if err := f.SetCellStyle(SheetName, "A1", last+"1", style); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, r := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := row(r)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	// Approximate auto-fit from the header width.
	for i, c := range Columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		width := float64(len(c) + 2)
		if width < 12 {
			width = 12
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("sizing column %s: %w", col, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
