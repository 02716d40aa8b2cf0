package chart

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Veraticus/tradepost/internal/common"
	"github.com/Veraticus/tradepost/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName  = "Prices"
	timeLayout = "2006-01-02 15:04:05"
)

func header(table *AlignedTable, catalog model.Catalog) []string {
	h := make([]string, 0, len(table.Keys)+1)
	h = append(h, "timestamp")
	for _, key := range table.Keys {
		h = append(h, Label(catalog, key))
	}
	return h
}

// WriteCSV writes the table with one column per key. Gaps are empty fields.
func WriteCSV(w io.Writer, table *AlignedTable, catalog model.Catalog) error {
	if table.Empty() {
		return common.ErrEmptySelection
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header(table, catalog)); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range table.Rows {
		record := make([]string, 0, len(table.Keys)+1)
		record = append(record, time.UnixMilli(row.Timestamp).Format(timeLayout))
		for _, key := range table.Keys {
			if c, ok := row.Cells[key]; ok {
				record = append(record, strconv.FormatFloat(c.Value, 'f', -1, 64))
			} else {
				record = append(record, "")
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the table to a single-sheet workbook. Gaps are blank cells.
func WriteXLSX(w io.Writer, table *AlignedTable, catalog model.Catalog) error {
	if table.Empty() {
		return common.ErrEmptySelection
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for col, title := range header(table, catalog) {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, row := range table.Rows {
		line := i + 2
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, time.UnixMilli(row.Timestamp).Format(timeLayout)); err != nil {
			return fmt.Errorf("failed to write timestamp: %w", err)
		}
		for col, key := range table.Keys {
			c, ok := row.Cells[key]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+2, line)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, c.Value); err != nil {
				return fmt.Errorf("failed to write value: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
