package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/statutecheck/statutecheck/internal/verify"
)

func sampleResult() *verify.Result {
	r := verify.NewResult()
	r.Add(verify.Finding{
		Kind:       verify.KindDeadStatute,
		Severity:   verify.SeverityError,
		StatuteID:  "s2",
		Message:    "statute \"s2\" can never apply: preconditions are unsatisfiable",
		Suggestion: "statute s2: remove or repair the contradictory preconditions",
	})
	r.Warn("reduced precision: some satisfiability queries could not be decided and were skipped")
	return r
}

func TestWriteJSON_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult()); err != nil {
		t.Fatal(err)
	}

	var out verify.Result
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Passed || len(out.Errors) != 1 || len(out.Warnings) != 1 {
		t.Fatalf("unexpected round trip: %+v", out)
	}
	if out.Errors[0].Kind != verify.KindDeadStatute {
		t.Fatalf("unexpected finding: %+v", out.Errors[0])
	}
}

func TestWriteSARIF_Shape(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSARIF(&buf, sampleResult()); err != nil {
		t.Fatal(err)
	}

	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name string `json:"name"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID string `json:"ruleId"`
				Level  string `json:"level"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid sarif: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log shape: %+v", log)
	}
	if log.Runs[0].Tool.Driver.Name != "statutecheck" {
		t.Fatalf("unexpected driver: %+v", log.Runs[0].Tool)
	}
	if len(log.Runs[0].Results) != 2 {
		t.Fatalf("one error and one warning expected, got %d results", len(log.Runs[0].Results))
	}
	if log.Runs[0].Results[0].RuleID != "dead_statute" || log.Runs[0].Results[0].Level != "error" {
		t.Fatalf("unexpected first result: %+v", log.Runs[0].Results[0])
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, sampleResult()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"# Verification FAILED", "## Errors (1)", "## Warnings (1)", "## Suggestions (1)", "dead_statute"} {
		if !strings.Contains(out, want) {
			t.Fatalf("%q missing from:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := WriteMarkdown(&buf, verify.NewResult()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "# Verification PASSED") {
		t.Fatalf("clean result must pass: %s", buf.String())
	}
}
