package entity

// BridgeWorkRecord is the metadata extracted from one title sheet.
type BridgeWorkRecord struct {
	JobNumber    string   `json:"job_number"`
	ProposedWork []string `json:"proposed_work"`
	Date         string   `json:"date"`
}
