package normalize

import (
	"strings"
	"testing"
)

var sampleSheets = []string{
	"TITLE SHEET\nJN 201222A\nCONTRACTFORBRIDGEREPLACEMENTANDAPPROACHRECONSTRUCTION\nINKSTER ROAD OVER ROUGE RIVER\nB01-82022\nDATE 5/1/2024",
	"CONTRACT  FOR:  Epoxy overlay\nJN 123456 , 654321B\nS09-3 of 22222  C03 of 22222",
	"DRAWING  DESIGN UNIT\n\n\nJN 201222A: BRIDGE REMOVAL\nJN 201223: DECK REPLACEMENT\nV01-21022",
	"B01-22222 JN 123456",
	"CONTRACTFORBRIDGEREPLACEMENT",
	"JN 201222A CONTRACTFOR BRIDGE REPLACEMENT DATE 5/1/2024",
	"Contract for deck patching\tjn 300100\n\nI-96 Over CSX RR",
	"   plain   text   ",
	"",
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "full title block",
			in:   sampleSheets[0],
			want: "Job Number 201222A\nCONTRACT FOR: BRIDGEREPLACEMENTANDAPPROACHRECONSTRUCTION\nINKSTER ROAD OVER ROUGE RIVER Date 5/1/2024",
		},
		{
			name: "split contract marker and structure ranges",
			in:   sampleSheets[1],
			want: "CONTRACT FOR: Epoxy overlay Job Number 123456 , 654321B",
		},
		{
			name: "boilerplate and per-job labels",
			in:   sampleSheets[2],
			want: "UNIT Job Number 201222A: BRIDGE REMOVAL Job Number 201223: DECK REPLACEMENT",
		},
		{
			name: "structure number next to job number",
			in:   sampleSheets[3],
			want: "Job Number 123456",
		},
		{
			name: "squished contract for",
			in:   sampleSheets[4],
			want: "CONTRACT FOR: BRIDGEREPLACEMENT",
		},
		{
			name: "spaced scope is left alone",
			in:   sampleSheets[5],
			want: "Job Number 201222A CONTRACT FOR BRIDGE REPLACEMENT Date 5/1/2024",
		},
		{
			name: "lower case markers",
			in:   sampleSheets[6],
			want: "CONTRACT FOR deck patching Job Number 300100 I-96 Over CSX RR",
		},
		{
			name: "whitespace only collapse",
			in:   sampleSheets[7],
			want: "plain text",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q)\n got: %q\nwant: %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, in := range sampleSheets {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q:\n once: %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestNormalizeNoDoubleSpaces(t *testing.T) {
	inputs := append([]string{
		"JN   JN",
		"DATE\t\tDATE",
		"A  TITLE  B",
		" \n \n ",
	}, sampleSheets...)
	for _, in := range inputs {
		if got := Normalize(in); strings.Contains(got, "  ") {
			t.Fatalf("Normalize(%q) = %q contains a double space", in, got)
		}
	}
}

func TestNormalizeRemovesBoilerplate(t *testing.T) {
	got := Normalize("Title Sheet drawing sheet TITLE design JN 111111")
	for _, tok := range []string{"TITLE", "SHEET", "DRAWING", "DESIGN"} {
		if strings.Contains(strings.ToUpper(got), tok) {
			t.Fatalf("Normalize() = %q still contains %q", got, tok)
		}
	}
	if got != "Job Number 111111" {
		t.Fatalf("Normalize() = %q, want %q", got, "Job Number 111111")
	}
}

func TestNormalizeKeepsJobNumbers(t *testing.T) {
	for _, in := range []string{
		"B01-22222 JN 123456",
		"C03 of 22222 JN 123456A",
		"S09-3 of 22222\n123456",
	} {
		got := Normalize(in)
		if !strings.Contains(got, "123456") {
			t.Fatalf("Normalize(%q) = %q dropped the job number", in, got)
		}
		for _, structure := range []string{"B01-22222", "C03 of 22222", "S09-3"} {
			if strings.Contains(got, structure) {
				t.Fatalf("Normalize(%q) = %q kept structure number %q", in, got, structure)
			}
		}
	}
}
