// Package report renders tabular workbooks: a title, optional subtitle
// lines, a header row and body rows, with optional per-cell style
// overrides. Every export in the bot goes through it.
package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Style is a per-cell override keyed by body row/column.
type Style struct {
	TextColor string // hex RGB, e.g. "FF0000"
	Bold      bool
}

// CellRef addresses a body cell, zero-based.
type CellRef struct {
	Row, Col int
}

type Report struct {
	Title      string
	Subtitles  []string
	Header     []string
	Rows       [][]string
	CellStyles map[CellRef]Style
}

// Build renders the workbook and returns the file bytes. Any failure is
// wrapped; callers report a generic message and drop the file.
func (r Report) Build() ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	row := 1

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, fmt.Errorf("title style: %w", err)
	}
	if err := f.SetCellStr(sheet, "A1", r.Title); err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", titleStyle); err != nil {
		return nil, fmt.Errorf("title style: %w", err)
	}
	row++

	for _, sub := range r.Subtitles {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("subtitle cell: %w", err)
		}
		if err := f.SetCellStr(sheet, cell, sub); err != nil {
			return nil, fmt.Errorf("subtitle: %w", err)
		}
		row++
	}
	row++ // пустая строка перед таблицей

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E0E0E0"}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	headerRow := row
	header := make([]interface{}, len(r.Header))
	for i, h := range r.Header {
		header[i] = h
	}
	cell, err := excelize.CoordinatesToCellName(1, headerRow)
	if err != nil {
		return nil, fmt.Errorf("header cell: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &header); err != nil {
		return nil, fmt.Errorf("header row: %w", err)
	}
	if len(r.Header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(r.Header), headerRow)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, last, headerStyle); err != nil {
			return nil, fmt.Errorf("header style: %w", err)
		}
	}
	row++

	bodyStart := row
	for _, bodyRow := range r.Rows {
		values := make([]interface{}, len(bodyRow))
		for i, v := range bodyRow {
			values[i] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("body cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("body row: %w", err)
		}
		row++
	}

	for ref, style := range r.CellStyles {
		cell, err := excelize.CoordinatesToCellName(ref.Col+1, bodyStart+ref.Row)
		if err != nil {
			return nil, fmt.Errorf("style cell: %w", err)
		}
		id, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: style.Bold, Color: style.TextColor},
		})
		if err != nil {
			return nil, fmt.Errorf("cell style: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, id); err != nil {
			return nil, fmt.Errorf("cell style: %w", err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
