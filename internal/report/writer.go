package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// defaultSheet is created by excelize.NewFile; it is renamed to the first
// report sheet so a report sheet may reuse the name
const defaultSheet = "Sheet1"

// Properties are written to the workbook's document properties
type Properties struct {
	RunID     string
	Creator   string
	Generated time.Time
}

// Write saves the report as an .xlsx workbook at path
func Write(rep *Report, path string, props Properties) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if len(rep.Sheets) > 0 {
		if err := f.SetSheetName(defaultSheet, rep.Sheets[0].Name); err != nil {
			return fmt.Errorf("renaming default sheet: %w", err)
		}
	}

	for _, sheet := range rep.Sheets {
		if err := writeSheet(f, sheet, bold); err != nil {
			return fmt.Errorf("writing sheet %s: %w", sheet.Name, err)
		}
	}

	if len(rep.Sheets) > 0 {
		idx, err := f.GetSheetIndex(rep.Sheets[0].Name)
		if err != nil {
			return fmt.Errorf("locating first sheet: %w", err)
		}
		f.SetActiveSheet(idx)
	}

	if err := f.SetDocProps(docProps(rep, props)); err != nil {
		return fmt.Errorf("setting document properties: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// writeSheet fills the named sheet, creating it unless it already exists
func writeSheet(f *excelize.File, sheet Sheet, headerStyle int) error {
	if _, err := f.NewSheet(sheet.Name); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheet.Name)
	if err != nil {
		return err
	}

	if len(sheet.Header) > 0 {
		if err := sw.SetColWidth(1, len(sheet.Header), 14); err != nil {
			return err
		}
	}

	header := make([]interface{}, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: headerStyle}); err != nil {
		return err
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}

	return sw.Flush()
}

func docProps(rep *Report, props Properties) *excelize.DocProperties {
	generated := props.Generated
	if generated.IsZero() {
		generated = time.Now()
	}
	creator := props.Creator
	if creator == "" {
		creator = "tk8-stats"
	}

	return &excelize.DocProperties{
		Title:       rep.Title,
		Subject:     "Match statistics " + rep.Range.String(),
		Creator:     creator,
		Identifier:  props.RunID,
		Created:     generated.UTC().Format(time.RFC3339),
		Description: fmt.Sprintf("Matches from %s to %s", rep.Range.Start.Format("2006-01-02"), rep.Range.End.Format("2006-01-02")),
	}
}
