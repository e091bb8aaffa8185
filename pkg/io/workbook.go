package io

import (
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	qerrors "github.com/desvart/qsnap/pkg/errors"
	"github.com/desvart/qsnap/pkg/table"
)

// Sheets lists the sheet names of a workbook in tab order.
func Sheets(path string) ([]string, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// ReadWorkbook reads a metric table from one sheet of an .xlsx workbook. An
// empty sheet name selects the first sheet.
func ReadWorkbook(path, sheet string) (*table.Table, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheet == "" {
		if len(sheets) == 0 {
			return nil, qerrors.New(qerrors.ErrCodeSheetNotFound, "workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}
	if !slices.Contains(sheets, sheet) {
		return nil, qerrors.New(qerrors.ErrCodeSheetNotFound, "sheet %q not found in %s (have %s)",
			sheet, path, strings.Join(sheets, ", "))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, qerrors.Wrap(qerrors.ErrCodeInvalidInput, err, "read sheet %q", sheet)
	}
	return parseRows(sheet, rows)
}

func openWorkbook(path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, openError(path, err)
	}
	return f, nil
}

// parseRows converts sheet rows into a table. The header's first cell names
// the category column; blank rows are skipped.
func parseRows(sheet string, rows [][]string) (*table.Table, error) {
	header := -1
	for i, r := range rows {
		if !blank(r) {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, qerrors.New(qerrors.ErrCodeInvalidSchema, "sheet %q is empty", sheet)
	}

	head := trimAll(rows[header])
	if head[0] != table.CategoryColumn {
		return nil, qerrors.New(qerrors.ErrCodeInvalidSchema,
			"sheet %q: first header cell is %q, want %q", sheet, head[0], table.CategoryColumn)
	}
	years := head[1:]
	for len(years) > 0 && years[len(years)-1] == "" {
		years = years[:len(years)-1]
	}

	var out []table.Row
	for i, r := range rows[header+1:] {
		if blank(r) {
			continue
		}
		cells := trimAll(r)
		rowNum := header + i + 2
		values := make([]float64, len(years))
		for k, year := range years {
			cell := ""
			if k+1 < len(cells) {
				cell = cells[k+1]
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, qerrors.New(qerrors.ErrCodeInvalidSchema,
					"sheet %q row %d, year %s: %q is not a number", sheet, rowNum, year, cell)
			}
			values[k] = v
		}
		out = append(out, table.Row{Category: cells[0], Values: values})
	}
	return table.New(years, out...)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
