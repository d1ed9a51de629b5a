package ocr

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// defaultPageHeight is US Letter in points, used when no MediaBox is found.
const defaultPageHeight = 792.0

// nativeText reads the text layer of page 1 in-process. Glyph origins are
// mapped from PDF points (bottom-left origin) to raster pixels at dpi
// (top-left origin) before being tested against region.
func nativeText(path string, region *Region, dpi int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf content: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	if r.NumPage() < 1 {
		return "", fmt.Errorf("pdf has no pages")
	}
	page := r.Page(1)
	if page.V.IsNull() {
		return "", fmt.Errorf("page 1 is missing")
	}

	height := pageHeight(page)
	scale := float64(dpi) / 72.0

	var runs []pdf.Text
	for _, t := range page.Content().Text {
		if region != nil {
			x := t.X * scale
			y := (height - t.Y) * scale
			if !region.ContainsPoint(x, y) {
				continue
			}
		}
		runs = append(runs, t)
	}
	return joinRuns(runs), nil
}

func pageHeight(p pdf.Page) float64 {
	for v := p.V; !v.IsNull(); v = v.Key("Parent") {
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() == 4 {
			return math.Abs(box.Index(3).Float64() - box.Index(1).Float64())
		}
	}
	return defaultPageHeight
}

// joinRuns rebuilds reading order: rows top to bottom, runs left to right
// within a row. Runs sharing a position keep their content-stream order.
func joinRuns(runs []pdf.Text) string {
	if len(runs) == 0 {
		return ""
	}

	type row struct {
		y    float64
		runs []pdf.Text
	}
	var rows []*row
	for _, t := range runs {
		tol := math.Max(t.FontSize/2, 1)
		var hit *row
		for _, r := range rows {
			if math.Abs(r.y-t.Y) <= tol {
				hit = r
				break
			}
		}
		if hit == nil {
			hit = &row{y: t.Y}
			rows = append(rows, hit)
		}
		hit.runs = append(hit.runs, t)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		sort.SliceStable(r.runs, func(i, j int) bool { return r.runs[i].X < r.runs[j].X })
		var b strings.Builder
		for i, t := range r.runs {
			if i > 0 {
				prev := r.runs[i-1]
				gap := t.X - (prev.X + prev.W)
				if gap > t.FontSize*0.3 && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(t.S, " ") {
					b.WriteByte(' ')
				}
			}
			b.WriteString(t.S)
		}
		if line := strings.TrimRight(b.String(), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
