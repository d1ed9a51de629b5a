package ocr

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// TesseractConfig configures both tesseract engines.
type TesseractConfig struct {
	Binary      string // binary name or absolute path; if empty -> "tesseract"
	Lang        string // default "eng"
	TessdataDir string
	PSM         int // e.g., 6 is good for uniform block of text; 0 keeps tesseract's default
	OEM         int // 1 = LSTM; leave 0 to use default
	DPI         int // hint for the crop resolution, default 300
}

func (c TesseractConfig) withDefaults() TesseractConfig {
	if c.Binary == "" {
		c.Binary = "tesseract"
	}
	if c.Lang == "" {
		c.Lang = "eng"
	}
	if c.DPI <= 0 {
		c.DPI = 300
	}
	return c
}

// TesseractEngine shells out to the tesseract CLI and reads its TSV output.
type TesseractEngine struct {
	cfg    TesseractConfig
	runner Runner
	logger *slog.Logger
}

func NewTesseractEngine(cfg TesseractConfig, runner Runner, logger *slog.Logger) *TesseractEngine {
	if logger == nil {
		logger = slog.Default()
	}
	if runner == nil {
		runner = ExecRunner{Logger: logger}
	}
	return &TesseractEngine{cfg: cfg.withDefaults(), runner: runner, logger: logger}
}

func (e *TesseractEngine) Name() string { return "tesseract" }

func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image) (Recognition, error) {
	tmpDir, err := os.MkdirTemp("", "bp-tess-*")
	if err != nil {
		return Recognition{}, err
	}
	defer func(dir string) {
		if err := os.RemoveAll(dir); err != nil {
			e.logger.Warn("failed to remove temp dir", "dir", dir, "error", err)
		}
	}(tmpDir)

	in := filepath.Join(tmpDir, "crop.png")
	if err := writePNG(in, img); err != nil {
		return Recognition{}, err
	}

	// tesseract <file> stdout -l <lang> [--psm N] [--oem N] [--tessdata-dir D] --dpi N tsv
	args := []string{in, "stdout", "-l", e.cfg.Lang}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(e.cfg.OEM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	args = append(args, "--dpi", strconv.Itoa(e.cfg.DPI), "tsv")

	out, errb, err := e.runner.Run(ctx, e.cfg.Binary, args...)
	if err != nil {
		return Recognition{}, fmt.Errorf("tesseract TSV: %w: %s", err, stderrTail(errb))
	}
	return parseTSV(string(out)), nil
}

type lineKey struct{ page, block, par, line string }

// parseTSV groups level-5 word rows into lines, keeping tesseract's order.
// Columns: level page_num block_num par_num line_num word_num left top width height conf text
func parseTSV(out string) Recognition {
	type acc struct {
		words []string
		sum   float64
		n     int
	}
	var order []lineKey
	lines := map[lineKey]*acc{}

	for i, ln := range strings.Split(out, "\n") {
		if i == 0 || ln == "" { // header row
			continue
		}
		cols := strings.Split(strings.TrimRight(ln, "\r"), "\t")
		if len(cols) < 12 || cols[0] != "5" {
			continue
		}
		word := strings.TrimSpace(cols[11])
		if word == "" {
			continue
		}
		k := lineKey{cols[1], cols[2], cols[3], cols[4]}
		a, ok := lines[k]
		if !ok {
			a = &acc{}
			lines[k] = a
			order = append(order, k)
		}
		a.words = append(a.words, word)
		if v, err := strconv.ParseFloat(cols[10], 64); err == nil && v >= 0 {
			a.sum += v
			a.n++
		}
	}

	rec := Recognition{Lines: make([]Line, 0, len(order))}
	for _, k := range order {
		a := lines[k]
		var conf float32
		if a.n > 0 {
			conf = float32(a.sum / float64(a.n) / 100.0)
		}
		rec.Lines = append(rec.Lines, Line{Text: strings.Join(a.words, " "), Confidence: conf})
	}
	return rec
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode crop: %w", err)
	}
	return f.Close()
}
