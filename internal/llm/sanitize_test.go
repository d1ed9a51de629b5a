package llm

import (
	"strings"
	"testing"
)

func TestSanitizeBridgeWork(t *testing.T) {
	tests := []struct {
		name     string
		in       BridgeWorkFields
		wantJN   string
		wantWork []string
		wantDate string
	}{
		{
			name:     "already clean",
			in:       BridgeWorkFields{JobNumber: "201222A", ProposedWork: []string{"BRIDGE REPLACEMENT"}, Date: "5/1/2024"},
			wantJN:   "201222A",
			wantWork: []string{"BRIDGE REPLACEMENT"},
			wantDate: "5/1/2024",
		},
		{
			name:     "duplicate job numbers",
			in:       BridgeWorkFields{JobNumber: "123456,123456, 654321A ,", ProposedWork: nil},
			wantJN:   "123456, 654321A",
			wantWork: []string{},
		},
		{
			name: "repeated and padded work items",
			in: BridgeWorkFields{
				JobNumber:    " 123456 ",
				ProposedWork: []string{"  Bridge  removal ", "EPOXY OVERLAY", "bridge removal", "", "   "},
				Date:         "  JUNE 2023 ",
			},
			wantJN:   "123456",
			wantWork: []string{"Bridge removal", "EPOXY OVERLAY"},
			wantDate: "JUNE 2023",
		},
		{
			name:     "unexpected job number kept",
			in:       BridgeWorkFields{JobNumber: "12345"},
			wantJN:   "12345",
			wantWork: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeBridgeWork(tt.in, nil)
			if got.JobNumber != tt.wantJN {
				t.Errorf("JobNumber = %q, want %q", got.JobNumber, tt.wantJN)
			}
			if got.Date != tt.wantDate {
				t.Errorf("Date = %q, want %q", got.Date, tt.wantDate)
			}
			if strings.Join(got.ProposedWork, "|") != strings.Join(tt.wantWork, "|") {
				t.Errorf("ProposedWork = %q, want %q", got.ProposedWork, tt.wantWork)
			}
		})
	}
}
