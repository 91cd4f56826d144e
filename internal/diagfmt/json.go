package diagfmt

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"conform/internal/diag"
	"conform/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file" yaml:"file"`
	StartByte uint32 `json:"start_byte" yaml:"start_byte"`
	EndByte   uint32 `json:"end_byte" yaml:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty" yaml:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty" yaml:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty" yaml:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty" yaml:"end_col,omitempty"`
}

// ProblemJSON is one serialized problem.
type ProblemJSON struct {
	Rule     string       `json:"rule" yaml:"rule"`
	Message  string       `json:"message" yaml:"message"`
	Location LocationJSON `json:"location" yaml:"location"`
}

// ProblemsOutput is the root of JSON and YAML output.
type ProblemsOutput struct {
	Dialect  string        `json:"dialect,omitempty" yaml:"dialect,omitempty"`
	Problems []ProblemJSON `json:"problems" yaml:"problems"`
	Count    int           `json:"count" yaml:"count"`
}

func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	loc := LocationJSON{
		File:      formatPath(fs, span.File, pathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if includePositions {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildProblemsOutput формирует структуру вывода без сериализации.
// Count is the number of problems emitted, after truncation by opts.Max.
func BuildProblemsOutput(problems []diag.Problem, fs *source.FileSet, dialect string, opts JSONOpts) ProblemsOutput {
	n := len(problems)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	out := ProblemsOutput{
		Dialect:  dialect,
		Problems: make([]ProblemJSON, 0, n),
	}
	for _, p := range problems[:n] {
		out.Problems = append(out.Problems, ProblemJSON{
			Rule:     p.Rule,
			Message:  p.Message,
			Location: makeLocation(p.Span, fs, opts.PathMode, opts.IncludePositions),
		})
	}
	out.Count = len(out.Problems)
	return out
}

// JSON writes problems as an indented JSON document.
func JSON(w io.Writer, problems []diag.Problem, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildProblemsOutput(problems, fs, opts.Dialect, opts))
}

// YAML writes the same document as JSON in YAML form.
func YAML(w io.Writer, problems []diag.Problem, fs *source.FileSet, opts JSONOpts) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(BuildProblemsOutput(problems, fs, opts.Dialect, opts)); err != nil {
		return err
	}
	return enc.Close()
}
