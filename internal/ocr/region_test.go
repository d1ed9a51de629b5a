package ocr

import (
	"image"
	"image/color"
	"testing"
)

func TestRegionFromSlice(t *testing.T) {
	tests := []struct {
		name    string
		in      []int
		want    *Region
		wantErr bool
	}{
		{"nil is full page", nil, nil, false},
		{"title sheet default", []int{2550, 1650, 5100, 3300}, &Region{2550, 1650, 5100, 3300}, false},
		{"too few values", []int{1, 2, 3}, nil, true},
		{"inverted x", []int{100, 0, 50, 10}, nil, true},
		{"zero height", []int{0, 10, 50, 10}, nil, true},
		{"negative", []int{-1, 0, 50, 10}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RegionFromSlice(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RegionFromSlice(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.want == nil {
				if got != nil {
					t.Fatalf("RegionFromSlice(%v) = %v, want nil", tt.in, got)
				}
				return
			}
			if *got != *tt.want {
				t.Fatalf("RegionFromSlice(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRegionGeometry(t *testing.T) {
	r := Region{Left: 2550, Top: 1650, Right: 5100, Bottom: 3300}
	if r.Width() != 2550 || r.Height() != 1650 {
		t.Fatalf("size = %dx%d", r.Width(), r.Height())
	}
	if !r.ContainsPoint(2550, 1650) {
		t.Fatalf("top-left corner should be inside")
	}
	if r.ContainsPoint(5100, 2000) || r.ContainsPoint(3000, 3300) {
		t.Fatalf("right and bottom edges should be outside")
	}
	if got := r.String(); got != "(2550,1650)-(5100,3300)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestCropToRegion(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 80))
	src.Set(60, 40, color.RGBA{R: 255, A: 255})

	tests := []struct {
		name    string
		region  *Region
		wantW   int
		wantH   int
		wantErr bool
	}{
		{"nil keeps image", nil, 100, 80, false},
		{"inner box", &Region{50, 30, 90, 70}, 40, 40, false},
		{"clipped to page", &Region{50, 30, 500, 500}, 50, 50, false},
		{"outside page", &Region{200, 200, 300, 300}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cropToRegion(src, tt.region)
			if (err != nil) != tt.wantErr {
				t.Fatalf("cropToRegion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			b := got.Bounds()
			if b.Min != (image.Point{}) {
				t.Fatalf("crop origin = %v, want (0,0)", b.Min)
			}
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Fatalf("crop size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
			if tt.region != nil {
				_, _, _, a := got.At(60-tt.region.Left, 40-tt.region.Top).RGBA()
				r, _, _, _ := got.At(60-tt.region.Left, 40-tt.region.Top).RGBA()
				if r == 0 || a == 0 {
					t.Fatalf("marker pixel not carried into the crop")
				}
			}
		})
	}
}
