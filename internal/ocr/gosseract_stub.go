//go:build !gosseract

package ocr

import (
	"context"
	"image"
	"log/slog"
)

// GosseractEngine is a placeholder when the binary is built without -tags gosseract.
type GosseractEngine struct{}

// NewGosseractEngine reports ErrEngineUnavailable; use the tesseract engine or rebuild with the tag.
func NewGosseractEngine(cfg TesseractConfig, logger *slog.Logger) (*GosseractEngine, error) {
	return nil, ErrEngineUnavailable
}

func (e *GosseractEngine) Name() string { return "gosseract" }

func (e *GosseractEngine) Recognize(ctx context.Context, img image.Image) (Recognition, error) {
	return Recognition{}, ErrEngineUnavailable
}

func (e *GosseractEngine) Close() error { return nil }
