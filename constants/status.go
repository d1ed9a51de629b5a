package constants

// DocumentStatus is the outcome of one PDF in a batch run.
type DocumentStatus string

const (
	DocumentStatusOK     DocumentStatus = "OK"
	DocumentStatusFailed DocumentStatus = "FAILED" // row carries the error text in its date column
)

// Extraction methods reported by the text extractor.
const (
	MethodPDFText   = "pdf-text"   // poppler text layer
	MethodPDFNative = "pdf-native" // in-process text layer
	MethodPDFOCR    = "pdf-ocr"    // rasterized page run through OCR
)

// Pipeline stage names, used in logs and error messages.
const (
	StageExtractTitleSheetText = "extract_title_sheet_text"
	StageFilterTargetSection   = "filter_target_section"
	StageExtractFields         = "extract_fields"
)
