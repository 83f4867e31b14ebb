// Package report serializes verification results. It carries no
// analytical logic: each writer is a plain projection of the Result.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/statutecheck/statutecheck/internal/verify"
)

// WriteJSON emits the result as indented JSON.
func WriteJSON(w io.Writer, r *verify.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// sarif 2.1.0 minimal shapes: tool driver plus one result per finding.

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type sarifResult struct {
	RuleID  string       `json:"ruleId"`
	Level   string       `json:"level"`
	Message sarifMessage `json:"message"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

// WriteSARIF emits the findings as a SARIF log for IDE and CI
// consumers.
func WriteSARIF(w io.Writer, r *verify.Result) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{Name: "statutecheck", Version: "1.0.0"}},
	}
	for _, f := range r.Errors {
		run.Results = append(run.Results, sarifResult{
			RuleID:  string(f.Kind),
			Level:   sarifLevel(f.Severity),
			Message: sarifMessage{Text: f.Message},
		})
	}
	for _, wmsg := range r.Warnings {
		run.Results = append(run.Results, sarifResult{
			RuleID:  "warning",
			Level:   "warning",
			Message: sarifMessage{Text: wmsg},
		})
	}

	log := sarifLog{
		Version: "2.1.0",
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}

func sarifLevel(s verify.Severity) string {
	if s == verify.SeverityError {
		return "error"
	}
	return "warning"
}

// WriteMarkdown emits a human-readable summary.
func WriteMarkdown(w io.Writer, r *verify.Result) error {
	status := "PASSED"
	if !r.Passed {
		status = "FAILED"
	}
	if _, err := fmt.Fprintf(w, "# Verification %s\n\n", status); err != nil {
		return err
	}
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "## Errors (%d)\n\n", len(r.Errors))
		for _, f := range r.Errors {
			fmt.Fprintf(w, "- **%s** `%s`: %s\n", f.Kind, f.StatuteID, f.Message)
		}
		fmt.Fprintln(w)
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "## Warnings (%d)\n\n", len(r.Warnings))
		for _, msg := range r.Warnings {
			fmt.Fprintf(w, "- %s\n", msg)
		}
		fmt.Fprintln(w)
	}
	if len(r.Suggestions) > 0 {
		fmt.Fprintf(w, "## Suggestions (%d)\n\n", len(r.Suggestions))
		for _, msg := range r.Suggestions {
			fmt.Fprintf(w, "- %s\n", msg)
		}
	}
	return nil
}
