package main

import (
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/bridgeplans/internal/common"
	"github.com/joseph-ayodele/bridgeplans/internal/llm/openai"
	"github.com/joseph-ayodele/bridgeplans/internal/ocr"
)

// buildExtractor wires the OCR engine and the text extractor for the active
// profile. The returned close func releases the engine.
func buildExtractor(cfg *common.Config, logger *slog.Logger) (*ocr.Extractor, *ocr.Region, func() error, error) {
	p, err := cfg.ActiveProfile()
	if err != nil {
		return nil, nil, nil, err
	}
	region, err := ocr.RegionFromSlice(p.Region)
	if err != nil {
		return nil, nil, nil, common.NewAppError(common.CodeConfig, "profile "+cfg.Profile, fmt.Errorf("%w: %w", common.ErrConfig, err))
	}

	tessCfg := ocr.TesseractConfig{
		Binary:      cfg.OCR.Tesseract,
		Lang:        cfg.OCR.Lang,
		TessdataDir: cfg.OCR.TessdataDir,
		PSM:         cfg.OCR.PSM,
		OEM:         cfg.OCR.OEM,
		DPI:         p.DPI,
	}

	var engine ocr.Engine
	closeEngine := func() error { return nil }
	switch cfg.OCR.Engine {
	case common.EngineGosseract:
		g, err := ocr.NewGosseractEngine(tessCfg, logger)
		if err != nil {
			return nil, nil, nil, common.NewAppError(common.CodeConfig, "ocr engine gosseract", fmt.Errorf("%w: %w", common.ErrConfig, err))
		}
		engine, closeEngine = g, g.Close
	default:
		engine = ocr.NewTesseractEngine(tessCfg, nil, logger)
	}

	ex := ocr.NewExtractor(ocr.Config{
		Pdftotext:    cfg.OCR.Pdftotext,
		Pdftoppm:     cfg.OCR.Pdftoppm,
		DPI:          p.DPI,
		MinTextChars: p.MinTextChars,
		TextBackend:  p.TextBackend,
	}, engine, logger)

	logger.Info("extractor ready",
		"profile", cfg.Profile,
		"region", regionString(region),
		"dpi", p.DPI,
		"text_backend", p.TextBackend,
		"engine", engine.Name(),
	)
	return ex, region, closeEngine, nil
}

func buildModel(cfg *common.Config, logger *slog.Logger) *openai.Client {
	c := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	logger.Info("OpenAI client initialized", "model", c.Model())
	return c
}

func regionString(r *ocr.Region) string {
	if r == nil {
		return "full-page"
	}
	return r.String()
}
