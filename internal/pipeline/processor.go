package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joseph-ayodele/bridgeplans/constants"
	"github.com/joseph-ayodele/bridgeplans/internal/common"
	"github.com/joseph-ayodele/bridgeplans/internal/entity"
	"github.com/joseph-ayodele/bridgeplans/internal/llm"
	"github.com/joseph-ayodele/bridgeplans/internal/normalize"
	"github.com/joseph-ayodele/bridgeplans/internal/ocr"
)

// TextExtractor is the part of ocr.Extractor the processor needs.
type TextExtractor interface {
	Extract(ctx context.Context, path string, region *ocr.Region) (ocr.ExtractionResult, error)
}

// Processor coordinates text extraction, normalization and LLM field extraction
// for one plan PDF. The stages always run in that order.
type Processor struct {
	Logger    *slog.Logger
	Text      TextExtractor
	Region    *ocr.Region // from the active template profile; nil = full page
	Extractor llm.FieldExtractor
}

func NewProcessor(logger *slog.Logger, text TextExtractor, region *ocr.Region, fe llm.FieldExtractor) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Text: text, Region: region, Extractor: fe}
}

// ProcessFile extracts the title-block text of path, normalizes it and asks
// the model for the bridge-work fields. Errors carry the failing stage name.
func (p *Processor) ProcessFile(ctx context.Context, path string) (entity.BridgeWorkRecord, error) {
	start := time.Now()
	name := filepath.Base(path)
	ctx = common.WithDocument(ctx, name)
	log := common.LoggerFrom(ctx, p.Logger)

	// 1) extract_title_sheet_text
	res, err := p.Text.Extract(ctx, path, p.Region)
	if err != nil {
		log.Error("processor.extract.failed", "stage", constants.StageExtractTitleSheetText, "err", err)
		return entity.BridgeWorkRecord{}, fmt.Errorf("%s: %w", constants.StageExtractTitleSheetText, err)
	}
	log.Info("processor.extract.ok",
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
		"confidence", res.Confidence,
		"warnings", len(res.Warnings),
	)

	// 2) filter_target_section
	text := normalize.Normalize(res.Text)
	log.Debug("processor.normalize.ok", "stage", constants.StageFilterTargetSection, "chars", len(text))

	// 3) extract_fields
	fields, _, err := p.Extractor.ExtractFields(ctx, llm.ExtractRequest{Text: text, FileName: name})
	if err != nil {
		log.Error("processor.fields.failed", "stage", constants.StageExtractFields, "err", err)
		return entity.BridgeWorkRecord{}, fmt.Errorf("%s: %w", constants.StageExtractFields, err)
	}
	rec := llm.SanitizeBridgeWork(fields, log)

	if missing := missingJobNumbers(text, rec.JobNumber); len(missing) > 0 {
		// the model's answer wins; this only flags sheets worth a second look
		log.Warn("processor.job_number.mismatch", "in_text", missing, "extracted", rec.JobNumber)
	}

	log.Info("processor.ok",
		"job_number", rec.JobNumber,
		"work_items", len(rec.ProposedWork),
		"date", rec.Date,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, nil
}

// missingJobNumbers lists job-number tokens found in text but absent from the extracted list.
func missingJobNumbers(text, extracted string) []string {
	have := normalize.SplitJobNumbers(strings.ToUpper(extracted))
	var missing []string
	for _, id := range normalize.FindJobNumbers(text) {
		if !slices.Contains(have, strings.ToUpper(id)) {
			missing = append(missing, id)
		}
	}
	return missing
}
