package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/image/draw"
)

var disableConfigDir sync.Once

// pageCount opens the PDF with pdfcpu so undecodable files fail before any
// external command runs.
func pageCount(path string) (int, error) {
	disableConfigDir.Do(api.DisableConfigDir)

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	n, err := api.PageCount(f, conf)
	if err != nil {
		return 0, fmt.Errorf("read pdf: %w", err)
	}
	if n < 1 {
		return 0, errors.New("pdf has no pages")
	}
	return n, nil
}

// pdfToText runs pdftotext on page 1. The crop box is given in pixels at
// cfg.DPI, the same space as the OCR raster.
func (e *Extractor) pdfToText(ctx context.Context, path string, region *Region) (string, error) {
	args := []string{"-f", "1", "-l", "1", "-layout", "-enc", "UTF-8", "-eol", "unix"}
	if region != nil {
		args = append(args,
			"-r", strconv.Itoa(e.cfg.DPI),
			"-x", strconv.Itoa(region.Left),
			"-y", strconv.Itoa(region.Top),
			"-W", strconv.Itoa(region.Width()),
			"-H", strconv.Itoa(region.Height()),
		)
	}
	args = append(args, path, "-")

	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, args...)
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w: %s", err, stderrTail(errb))
	}
	// pdftotext ends every page with a form feed
	return strings.TrimRight(string(out), "\f"), nil
}

// ocrPage rasterizes page 1, crops it to region and hands it to the engine.
func (e *Extractor) ocrPage(ctx context.Context, path string, region *Region) (Recognition, error) {
	if e.engine == nil {
		return Recognition{}, errors.New("no ocr engine configured")
	}
	img, err := e.rasterize(ctx, path)
	if err != nil {
		return Recognition{}, err
	}
	img, err = cropToRegion(img, region)
	if err != nil {
		return Recognition{}, err
	}
	rec, err := e.engine.Recognize(ctx, img)
	if err != nil {
		return Recognition{}, fmt.Errorf("%s: %w", e.engine.Name(), err)
	}
	return rec, nil
}

func (e *Extractor) rasterize(ctx context.Context, path string) (image.Image, error) {
	tmpDir, err := os.MkdirTemp("", "bp-pp-*")
	if err != nil {
		return nil, err
	}
	defer func(dir string) {
		if err := os.RemoveAll(dir); err != nil {
			e.logger.Warn("failed to remove temp dir", "dir", dir, "error", err)
		}
	}(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -f 1 -l 1 -singlefile -png <in.pdf> <tmp/page>  ->  <tmp/page>.png
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-r", strconv.Itoa(e.cfg.DPI), "-f", "1", "-l", "1", "-singlefile", "-png", path, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, stderrTail(errb))
	}

	f, err := os.Open(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("pdftoppm produced no image: %w", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode page raster: %w", err)
	}
	return img, nil
}

// cropToRegion copies the part of img inside region into a fresh RGBA image
// whose origin is (0,0). A region hanging off the page is clipped to it.
func cropToRegion(img image.Image, region *Region) (image.Image, error) {
	if region == nil {
		return img, nil
	}
	b := img.Bounds()
	rect := region.Rect().Add(b.Min).Intersect(b)
	if rect.Empty() {
		return nil, fmt.Errorf("region %s lies outside the %dx%d page raster", region, b.Dx(), b.Dy())
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Copy(dst, image.Point{}, img, rect, draw.Src, nil)
	return dst, nil
}
