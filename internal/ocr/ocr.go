package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/bridgeplans/constants"
	"github.com/joseph-ayodele/bridgeplans/internal/common"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"

	DPI          int    // raster DPI, also the unit of Region; default 300
	MinTextChars int    // direct text must be longer than this after trimming; default 20
	TextBackend  string // common.BackendPdftotext | common.BackendNative
}

type ExtractionResult struct {
	Text       string
	Pages      int
	Method     string // constants.MethodPDFText | MethodPDFNative | MethodPDFOCR
	Engine     string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

// Extractor pulls the title-block text from page 1 of a plan PDF. It owns no
// per-document state and is safe to reuse across a batch.
type Extractor struct {
	cfg    Config
	runner Runner
	engine Engine
	logger *slog.Logger
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithRunner swaps the command runner, mainly for tests.
func WithRunner(r Runner) Option {
	return func(e *Extractor) { e.runner = r }
}

func NewExtractor(cfg Config, engine Engine, logger *slog.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.MinTextChars <= 0 {
		cfg.MinTextChars = 20
	}
	if cfg.TextBackend == "" {
		cfg.TextBackend = common.BackendPdftotext
	}
	e := &Extractor{cfg: cfg, runner: ExecRunner{Logger: logger}, engine: engine, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the text of page 1, clipped to region when it is non-nil.
// The PDF text layer wins when it carries more than MinTextChars; otherwise
// the page is rasterized, cropped and run through the OCR engine. Failures
// come back as errors wrapping common.ErrExtraction, never as text.
func (e *Extractor) Extract(ctx context.Context, path string, region *Region) (ExtractionResult, error) {
	start := time.Now()
	log := common.LoggerFrom(ctx, e.logger)
	log.Debug("ocr.extract.start", "path", path, "region", regionAttr(region), "backend", e.cfg.TextBackend)

	res := ExtractionResult{}
	if region != nil {
		if err := region.Validate(); err != nil {
			return res, common.ExtractionError(path, err)
		}
	}

	pages, err := pageCount(path)
	if err != nil {
		log.Error("ocr.open.failed", "path", path, "error", err)
		return res, common.ExtractionError(path, err)
	}
	res.Pages = pages

	text, method, err := e.directText(ctx, path, region)
	switch {
	case err != nil:
		res.Warnings = append(res.Warnings, fmt.Sprintf("direct text: %v", err))
		log.Warn("ocr.direct.failed", "path", path, "method", method, "error", err)
	case len(strings.TrimSpace(text)) > e.cfg.MinTextChars:
		res.Text = text
		res.Method = method
		res.Duration = time.Since(start)
		log.Info("ocr.direct.ok", "path", path, "method", method, "chars", len(text),
			"elapsed_ms", res.Duration.Milliseconds())
		return res, nil
	default:
		log.Info("ocr.direct.insufficient", "path", path, "method", method,
			"chars", len(strings.TrimSpace(text)), "min_chars", e.cfg.MinTextChars)
	}

	rec, err := e.ocrPage(ctx, path, region)
	res.Method = constants.MethodPDFOCR
	res.Duration = time.Since(start)
	if err != nil {
		log.Error("ocr.fallback.failed", "path", path, "error", err,
			"elapsed_ms", res.Duration.Milliseconds())
		return res, common.ExtractionError(path, err)
	}
	if e.engine != nil {
		res.Engine = e.engine.Name()
	}
	res.Text = rec.Text()
	res.Confidence = rec.MeanConfidence()
	if len(rec.Lines) == 0 {
		res.Warnings = append(res.Warnings, "ocr returned no lines")
	}
	log.Info("ocr.fallback.ok", "path", path, "engine", res.Engine, "lines", len(rec.Lines),
		"confidence", res.Confidence, "elapsed_ms", res.Duration.Milliseconds())
	return res, nil
}

func (e *Extractor) directText(ctx context.Context, path string, region *Region) (string, string, error) {
	if e.cfg.TextBackend == common.BackendNative {
		text, err := nativeText(path, region, e.cfg.DPI)
		return text, constants.MethodPDFNative, err
	}
	text, err := e.pdfToText(ctx, path, region)
	return text, constants.MethodPDFText, err
}

func regionAttr(r *Region) string {
	if r == nil {
		return "full-page"
	}
	return r.String()
}
