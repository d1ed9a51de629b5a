package llm

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/joseph-ayodele/bridgeplans/internal/entity"
	"github.com/joseph-ayodele/bridgeplans/internal/normalize"
)

// SanitizeBridgeWork builds the record from parsed model fields:
// - trims every string
// - de-duplicates job numbers and re-joins them with ", "
// - drops empty and repeated proposed-work items, keeping first-seen order
// Job-number tokens that do not look like job numbers are kept but logged.
func SanitizeBridgeWork(f BridgeWorkFields, logger *slog.Logger) entity.BridgeWorkRecord {
	if logger == nil {
		logger = slog.Default()
	}

	ids := normalize.SplitJobNumbers(f.JobNumber)
	var odd []string
	for _, id := range ids {
		if !normalize.IsJobNumber(id) {
			odd = append(odd, id)
		}
	}
	if len(odd) > 0 {
		logger.Warn("llm.sanitize.unexpected_job_number", "values", odd)
	}

	work := make([]string, 0, len(f.ProposedWork))
	for _, w := range f.ProposedWork {
		work = append(work, strings.Join(strings.Fields(w), " "))
	}
	work = normalize.Dedupe(work)
	if dropped := len(f.ProposedWork) - len(work); dropped > 0 {
		logger.Debug("llm.sanitize.proposed_work", "dropped", dropped)
	}

	return entity.BridgeWorkRecord{
		JobNumber:    normalize.JoinJobNumbers(ids),
		ProposedWork: slices.Clip(work),
		Date:         strings.TrimSpace(f.Date),
	}
}
