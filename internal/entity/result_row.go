package entity

import (
	"strings"

	"github.com/joseph-ayodele/bridgeplans/constants"
)

// ResultRow is one spreadsheet row. Status is internal and never exported.
type ResultRow struct {
	FileName     string                   `json:"file_name"`
	JobNumber    string                   `json:"job_number"`
	ProposedWork string                   `json:"proposed_work"`
	Date         string                   `json:"date"`
	Status       constants.DocumentStatus `json:"-"`
}

// ToRow renders a successful record; proposed work is joined with ", ".
func (r BridgeWorkRecord) ToRow(fileName string) ResultRow {
	return ResultRow{
		FileName:     fileName,
		JobNumber:    r.JobNumber,
		ProposedWork: strings.Join(r.ProposedWork, ", "),
		Date:         r.Date,
		Status:       constants.DocumentStatusOK,
	}
}

// FailureRow carries the error description in the date column.
func FailureRow(fileName string, err error) ResultRow {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return ResultRow{
		FileName: fileName,
		Date:     "Error: " + msg,
		Status:   constants.DocumentStatusFailed,
	}
}

// Cells returns the exported columns in header order.
func (r ResultRow) Cells() []any {
	return []any{r.FileName, r.JobNumber, r.ProposedWork, r.Date}
}
