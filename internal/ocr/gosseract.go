//go:build gosseract

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"strconv"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// GosseractEngine runs libtesseract in-process through cgo. Build with -tags gosseract.
type GosseractEngine struct {
	cfg    TesseractConfig
	client *gosseract.Client
	logger *slog.Logger
}

func NewGosseractEngine(cfg TesseractConfig, logger *slog.Logger) (*GosseractEngine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()

	c := gosseract.NewClient()
	if cfg.TessdataDir != "" {
		c.SetTessdataPrefix(cfg.TessdataDir)
	}
	if err := c.SetLanguage(cfg.Lang); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("set language: %w", err)
	}
	if cfg.PSM > 0 {
		if err := c.SetPageSegMode(gosseract.PageSegMode(cfg.PSM)); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("set psm: %w", err)
		}
	}
	if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), strconv.Itoa(cfg.DPI)); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("set dpi: %w", err)
	}
	return &GosseractEngine{cfg: cfg, client: c, logger: logger}, nil
}

func (e *GosseractEngine) Name() string { return "gosseract" }

// Recognize is not safe for concurrent use; the batch runs documents one at a time.
func (e *GosseractEngine) Recognize(ctx context.Context, img image.Image) (Recognition, error) {
	if err := ctx.Err(); err != nil {
		return Recognition{}, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Recognition{}, fmt.Errorf("encode crop: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return Recognition{}, fmt.Errorf("set image: %w", err)
	}
	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return Recognition{}, fmt.Errorf("recognize lines: %w", err)
	}
	rec := Recognition{Lines: make([]Line, 0, len(boxes))}
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		rec.Lines = append(rec.Lines, Line{Text: text, Confidence: float32(b.Confidence / 100.0)})
	}
	return rec, nil
}

func (e *GosseractEngine) Close() error {
	return e.client.Close()
}
