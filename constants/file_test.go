package constants

import (
	"path/filepath"
	"testing"
)

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"plan.pdf", true},
		{"PLAN.PDF", true},
		{"Plan.Pdf", true},
		{"plan.pdf.bak", false},
		{"plan.png", false},
		{"pdf", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPDF(tt.name); got != tt.want {
				t.Fatalf("IsPDF(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestDefaultOutputPath(t *testing.T) {
	got := DefaultOutputPath(filepath.Join("plans", "2024"))
	want := filepath.Join("plans", "2024", "output", "bridge_work_summary.xlsx")
	if got != want {
		t.Fatalf("DefaultOutputPath() = %q, want %q", got, want)
	}
}
