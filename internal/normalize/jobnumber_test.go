package normalize

import (
	"slices"
	"testing"
)

func TestIsJobNumber(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"123456", true},
		{"123456A", true},
		{"201222a", true},
		{"12345", false},
		{"1234567", false},
		{"B01-22222", false},
		{"123456AB", false},
		{" 123456", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsJobNumber(tt.in); got != tt.want {
				t.Fatalf("IsJobNumber(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFindJobNumbers(t *testing.T) {
	text := "Job Number 201222A: BRIDGE REMOVAL Job Number 201223: DECK Date 5/1/2024 ref 1234567 Job Number 201222A"
	got := FindJobNumbers(text)
	want := []string{"201222A", "201223"}
	if !slices.Equal(got, want) {
		t.Fatalf("FindJobNumbers() = %v, want %v", got, want)
	}
}

func TestSplitAndJoinJobNumbers(t *testing.T) {
	got := SplitJobNumbers(" 201222A, 201223 ,,201222a, 300100")
	want := []string{"201222A", "201223", "300100"}
	if !slices.Equal(got, want) {
		t.Fatalf("SplitJobNumbers() = %v, want %v", got, want)
	}
	if joined := JoinJobNumbers(append(got, "201223")); joined != "201222A, 201223, 300100" {
		t.Fatalf("JoinJobNumbers() = %q", joined)
	}
	if joined := JoinJobNumbers(nil); joined != "" {
		t.Fatalf("JoinJobNumbers(nil) = %q, want empty", joined)
	}
}

func TestDedupePreservesOrder(t *testing.T) {
	got := Dedupe([]string{"Bridge removal", " Epoxy overlay ", "BRIDGE REMOVAL", "", "Deck patching"})
	want := []string{"Bridge removal", "Epoxy overlay", "Deck patching"}
	if !slices.Equal(got, want) {
		t.Fatalf("Dedupe() = %v, want %v", got, want)
	}
}
