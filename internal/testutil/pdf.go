// Package testutil builds small fixtures (single-page PDFs, text images) for tests.
package testutil

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// TextRun places one string on the page, X/Y in PDF points from the bottom-left corner.
type TextRun struct {
	X, Y float64
	Size float64
	Text string
}

// BuildPDF renders a one-page US Letter PDF with a Helvetica text layer.
// No runs gives a page without any text, like a scan.
func BuildPDF(runs []TextRun) []byte {
	var content strings.Builder
	for _, r := range runs {
		size := r.Size
		if size <= 0 {
			size = 12
		}
		fmt.Fprintf(&content, "BT\n/F1 %g Tf\n1 0 0 1 %g %g Tm\n(%s) Tj\nET\n", size, r.X, r.Y, escapePDFString(r.Text))
	}
	stream := content.String()

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// WritePDF writes BuildPDF(runs) to dir/name and returns the path.
func WritePDF(t testing.TB, dir, name string, runs []TextRun) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, BuildPDF(runs), 0o644); err != nil {
		t.Fatalf("write pdf fixture: %v", err)
	}
	return path
}

func escapePDFString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// TextImage draws lines in black on white with the 7x13 bitmap face and
// scales the result up so OCR engines can read it.
func TextImage(lines []string, scale int) image.Image {
	if scale < 1 {
		scale = 1
	}
	width := 20
	for _, l := range lines {
		if w := 7*len(l) + 20; w > width {
			width = w
		}
	}
	height := 20*len(lines) + 20
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Src: image.Black, Face: basicfont.Face7x13}
	for i, l := range lines {
		d.Dot = fixed.P(10, 25+20*i)
		d.DrawString(l)
	}
	if scale == 1 {
		return img
	}
	big := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	draw.NearestNeighbor.Scale(big, big.Bounds(), img, img.Bounds(), draw.Src, nil)
	return big
}

// WritePNG encodes img to path.
func WritePNG(t testing.TB, path string, img image.Image) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}
}
