package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/bridgeplans/internal/common"
	"github.com/joseph-ayodele/bridgeplans/internal/entity"
)

// DefaultSheet is the sheet name used when none is configured.
const DefaultSheet = "Sheet1"

// maxCellChars is the Excel limit for one cell.
const maxCellChars = 32767

// Headers of the summary sheet, in column order.
var Headers = []string{"file_name", "job_number", "proposed_work", "date"}

// BuildXLSX renders rows into an XLSX workbook with one header row.
func BuildXLSX(rows []entity.ResultRow, sheet string) ([]byte, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}
	f := excelize.NewFile()
	defer f.Close()

	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			return nil, fmt.Errorf("name sheet: %w", err)
		}
	}

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		cells := r.Cells()
		for j, c := range cells {
			if s, ok := c.(string); ok {
				cells[j] = truncate(s, maxCellChars)
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 32) // file name
	_ = f.SetColWidth(sheet, "B", "B", 20) // job numbers
	_ = f.SetColWidth(sheet, "C", "C", 60) // proposed work
	_ = f.SetColWidth(sheet, "D", "D", 24) // date / error

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteXLSX writes the workbook to path, creating its directory. Any failure
// is ErrBatchIO.
func WriteXLSX(rows []entity.ResultRow, path, sheet string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	b, err := BuildXLSX(rows, sheet)
	if err != nil {
		return common.BatchIOError("build spreadsheet", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return common.BatchIOError("create output dir", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return common.BatchIOError("write spreadsheet", err)
	}

	logger.Info("export.xlsx.ok",
		"path", path,
		"rows", len(rows),
		"bytes", len(b),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
