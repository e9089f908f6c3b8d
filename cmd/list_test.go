package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestListJSONOutput(t *testing.T) {
	cmd := newListCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", t.TempDir(), "--output", "json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var summaries []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &summaries); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(summaries) == 0 {
		t.Fatal("Expected the built-in reports to be listed")
	}

	names := make(map[string]bool)
	for _, s := range summaries {
		names[s["name"].(string)] = true
	}
	for _, expected := range []string{"Collections", "Glossary-Terms", "Digital-Products"} {
		if !names[expected] {
			t.Errorf("Expected report %q in the listing", expected)
		}
	}
}

func TestListFamilyFilter(t *testing.T) {
	cmd := newListCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", t.TempDir(), "--family", "Glossary", "--output", "json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var summaries []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &summaries); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	for _, s := range summaries {
		if s["family"] != "Glossary" {
			t.Errorf("Expected only the Glossary family, got %v", s["family"])
		}
	}
	if len(summaries) == 0 {
		t.Fatal("Expected glossary reports in the listing")
	}
}

func TestListRejectsUnknownOutput(t *testing.T) {
	cmd := newListCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", t.TempDir(), "--output", "xml"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("Expected an error for an unknown output format")
	}
	if !strings.Contains(err.Error(), "xml") {
		t.Errorf("Expected the error to name the format, got %v", err)
	}
}

func TestDescribeTextOutput(t *testing.T) {
	cmd := newDescribeCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"Terms", "--config", t.TempDir()})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	out := buf.String()
	// Terms is an alias; the description names the primary report.
	if !strings.Contains(out, "Report: Glossary-Terms") {
		t.Errorf("Expected the primary report name, got %q", out)
	}
	if !strings.Contains(out, "GlossaryManager.find_glossary_terms") {
		t.Errorf("Expected the remote operation, got %q", out)
	}
	if !strings.Contains(out, "search_string") {
		t.Errorf("Expected the required parameter, got %q", out)
	}
}

func TestDescribeUnknownReport(t *testing.T) {
	cmd := newDescribeCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"No-Such-Report", "--config", t.TempDir()})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("Expected an error for an unknown report")
	}
	if getExitCode(err) != ExitCodeUsage {
		t.Errorf("Expected usage exit code, got %d", getExitCode(err))
	}
}
