package ocr

import (
	"context"
	"errors"
	"image"
	"strings"
)

// ErrEngineUnavailable is returned when an OCR engine was not compiled in.
var ErrEngineUnavailable = errors.New("ocr engine not available in this build")

// Line is one recognized text line.
type Line struct {
	Text       string
	Confidence float32 // 0..1, 0 when the engine reports none
}

// Recognition is what an engine produced for one image, lines in engine order.
type Recognition struct {
	Lines []Line
}

// Text joins the line texts with newlines without re-sorting them.
func (r Recognition) Text() string {
	parts := make([]string, 0, len(r.Lines))
	for _, l := range r.Lines {
		parts = append(parts, l.Text)
	}
	return strings.Join(parts, "\n")
}

// MeanConfidence averages the line confidences that were reported.
func (r Recognition) MeanConfidence() float32 {
	var sum float32
	var n int
	for _, l := range r.Lines {
		if l.Confidence > 0 {
			sum += l.Confidence
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float32(n)
}

// Engine recognizes text in an already cropped page image. Implementations
// are built once and reused for every document of a run.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, img image.Image) (Recognition, error)
}
