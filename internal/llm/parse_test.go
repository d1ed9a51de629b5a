package llm

import (
	"errors"
	"strings"
	"testing"

	"github.com/joseph-ayodele/bridgeplans/internal/common"
)

func TestParseBridgeWork(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    BridgeWorkFields
	}{
		{
			name:    "plain object",
			content: `{"job_number":"201222A","proposed_work":["BRIDGE REPLACEMENT"],"date":"5/1/2024"}`,
			want:    BridgeWorkFields{JobNumber: "201222A", ProposedWork: []string{"BRIDGE REPLACEMENT"}, Date: "5/1/2024"},
		},
		{
			name:    "fenced",
			content: "```json\n{\"job_number\":\"123456\",\"proposed_work\":[],\"date\":\"\"}\n```",
			want:    BridgeWorkFields{JobNumber: "123456", ProposedWork: []string{}},
		},
		{
			name:    "surrounding prose",
			content: "Here you go:\n{\"job_number\":\"\",\"proposed_work\":[\"EPOXY OVERLAY\"],\"date\":\"\"}\nThanks",
			want:    BridgeWorkFields{ProposedWork: []string{"EPOXY OVERLAY"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, raw, err := ParseBridgeWork(tt.content)
			if err != nil {
				t.Fatalf("ParseBridgeWork() error = %v", err)
			}
			if len(raw) == 0 {
				t.Fatalf("ParseBridgeWork() returned no raw JSON")
			}
			if got.JobNumber != tt.want.JobNumber || got.Date != tt.want.Date {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			if strings.Join(got.ProposedWork, "|") != strings.Join(tt.want.ProposedWork, "|") {
				t.Fatalf("proposed_work = %v, want %v", got.ProposedWork, tt.want.ProposedWork)
			}
		})
	}
}

func TestParseBridgeWorkRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"prose only", "I could not find a job number."},
		{"truncated", `{"job_number":"123456","proposed_work":["A"`},
		{"missing date", `{"job_number":"123456","proposed_work":[]}`},
		{"wrong type", `{"job_number":123456,"proposed_work":[],"date":""}`},
		{"work not a list", `{"job_number":"123456","proposed_work":"BRIDGE","date":""}`},
		{"extra key", `{"job_number":"123456","proposed_work":[],"date":"","notes":"x"}`},
		{"null field", `{"job_number":null,"proposed_work":[],"date":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseBridgeWork(tt.content)
			if err == nil {
				t.Fatalf("ParseBridgeWork(%q) error = nil", tt.content)
			}
			if !errors.Is(err, common.ErrSchemaParse) {
				t.Fatalf("ParseBridgeWork() error = %v, want ErrSchemaParse", err)
			}
		})
	}
}

func TestValidateJSONAgainstSchema(t *testing.T) {
	schema := BuildBridgeWorkJSONSchema()
	if err := ValidateJSONAgainstSchema(schema, []byte(`{"job_number":"","proposed_work":[],"date":""}`)); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}
	if err := ValidateJSONAgainstSchema(schema, []byte(`{"job_number":""}`)); err == nil {
		t.Fatalf("incomplete document accepted")
	}
	if err := ValidateJSONAgainstSchema(schema, []byte(`not json`)); err == nil {
		t.Fatalf("non-JSON accepted")
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"```json\n{}\n```", "{}"},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"```json\n{}", "{}"},
		{"{}", ""},
		{"```", ""},
	}
	for _, tt := range tests {
		if got := stripCodeFences(tt.in); got != tt.want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
