package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs, problems := sampleProblems(t)

	var buf bytes.Buffer
	opts := JSONOpts{IncludePositions: true, PathMode: PathModeBasename, Dialect: "java1.0"}
	if err := JSON(&buf, problems, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output ProblemsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 2 || len(output.Problems) != 2 {
		t.Fatalf("Expected 2 problems, got count=%d len=%d", output.Count, len(output.Problems))
	}
	if output.Dialect != "java1.0" {
		t.Errorf("Expected dialect=java1.0, got %q", output.Dialect)
	}

	p := output.Problems[0]
	if p.Rule != "no-varargs" || p.Message != "Varargs are not supported." {
		t.Errorf("unexpected first problem: %+v", p)
	}
	want := LocationJSON{File: "A.java", StartByte: 11, EndByte: 17, StartLine: 2, StartCol: 2, EndLine: 2, EndCol: 8}
	if p.Location != want {
		t.Errorf("location mismatch:\nwant %+v\ngot  %+v", want, p.Location)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs, problems := sampleProblems(t)
	out := BuildProblemsOutput(problems, fs, "", JSONOpts{Max: 1})
	if out.Count != 1 || out.Problems[0].Rule != "no-varargs" {
		t.Fatalf("expected the first problem only, got %+v", out)
	}
}

func TestJSONEmptyHasArray(t *testing.T) {
	fs, _ := sampleProblems(t)
	var buf bytes.Buffer
	if err := JSON(&buf, nil, fs, JSONOpts{}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if _, ok := raw["problems"].([]any); !ok {
		t.Fatalf("expected problems to be an empty array, got %s", buf.String())
	}
}

func TestYAMLMatchesJSON(t *testing.T) {
	fs, problems := sampleProblems(t)
	opts := JSONOpts{IncludePositions: true, PathMode: PathModeBasename}

	var buf bytes.Buffer
	if err := YAML(&buf, problems, fs, opts); err != nil {
		t.Fatalf("YAML() error: %v", err)
	}
	var got ProblemsOutput
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Invalid YAML output: %v\nOutput: %s", err, buf.String())
	}
	want := BuildProblemsOutput(problems, fs, "", opts)
	if got.Count != want.Count || len(got.Problems) != len(want.Problems) {
		t.Fatalf("count mismatch: want %d got %d", want.Count, got.Count)
	}
	for i := range want.Problems {
		if got.Problems[i] != want.Problems[i] {
			t.Fatalf("problem %d mismatch:\nwant %+v\ngot  %+v", i, want.Problems[i], got.Problems[i])
		}
	}
}
