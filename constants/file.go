package constants

import (
	"path/filepath"
	"strings"
)

// PDFExt is the only extension the batch picks up, compared case-insensitively.
const PDFExt = "pdf"

const (
	OutputDirName  = "output"
	OutputFileName = "bridge_work_summary.xlsx"
)

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsPDF reports whether name carries a .pdf extension in any letter case.
func IsPDF(name string) bool {
	return NormalizeExt(filepath.Ext(name)) == PDFExt
}

// DefaultOutputPath is <dir>/output/bridge_work_summary.xlsx.
func DefaultOutputPath(dir string) string {
	return filepath.Join(dir, OutputDirName, OutputFileName)
}
