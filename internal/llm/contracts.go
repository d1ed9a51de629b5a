package llm

import "context"

// BridgeWorkFields is the shape we want back from the model.
type BridgeWorkFields struct {
	JobNumber    string   `json:"job_number"`    // comma-separated, six digits plus optional letter each
	ProposedWork []string `json:"proposed_work"` // scope-of-work items, unique, in order
	Date         string   `json:"date"`          // as printed on the sheet; "" when absent
}

type ExtractRequest struct {
	// Text is the normalized title-block text; it may be empty.
	Text     string
	FileName string
}

// FieldExtractor is the interface our pipeline depends on.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, req ExtractRequest) (BridgeWorkFields, []byte /*rawJSON*/, error)
}
