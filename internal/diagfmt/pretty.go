package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"conform/internal/diag"
	"conform/internal/source"
)

type palette struct {
	path   *color.Color
	rule   *color.Color
	gutter *color.Color
	caret  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:   color.New(color.Bold),
		rule:   color.New(color.FgYellow, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.path, p.rule, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует проблемы в человекочитаемый вид.
// Для каждой проблемы печатает
// <path>:<line>:<col>: <rule>: <message>
// затем строку исходника с подчёркиванием ^~~~ по Span.
// Порядок входа сохраняется.
func Pretty(w io.Writer, problems []diag.Problem, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	tab := opts.TabWidth
	if tab <= 0 {
		tab = 4
	}

	for i, p := range problems {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		start, end := fs.Resolve(p.Span)
		header := fmt.Sprintf("%s:%d:%d:", formatPath(fs, p.Span.File, opts.PathMode), start.Line, start.Col)
		if _, err := fmt.Fprintf(w, "%s %s %s\n", pal.path.Sprint(header), pal.rule.Sprint(p.Rule+":"), p.Message); err != nil {
			return err
		}

		f := fs.Get(p.Span.File)
		if f == nil || start.Line == 0 {
			continue
		}
		line := f.GetLine(start.Line)
		lineNo := strconv.FormatUint(uint64(start.Line), 10)
		blank := strings.Repeat(" ", len(lineNo))

		endCol := end.Col
		if end.Line != start.Line {
			endCol = ^uint32(0) // до конца строки
		}
		pad, width := underline(line, start.Col, endCol, tab)
		caret := "^"
		if width > 1 {
			caret += strings.Repeat("~", width-1)
		}

		if _, err := fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprint(lineNo+" |"), expandTabs(line, tab)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, " %s %s%s\n", pal.gutter.Sprint(blank+" |"), strings.Repeat(" ", pad), pal.caret.Sprint(caret)); err != nil {
			return err
		}
	}
	return nil
}

// underline returns the display column where the span starts and its display
// width on line. Columns are 1-based byte offsets; the width is at least one.
func underline(line string, startCol, endCol uint32, tab int) (pad, width int) {
	from := clampCol(line, startCol)
	to := clampCol(line, endCol)
	if to < from {
		to = from
	}
	pad = displayWidth(line[:from], 0, tab)
	width = displayWidth(line[from:to], pad, tab)
	if width < 1 {
		width = 1
	}
	return pad, width
}

func clampCol(line string, col uint32) int {
	if col == 0 {
		return 0
	}
	off := int(col - 1)
	if off > len(line) {
		off = len(line)
	}
	return off
}

// displayWidth measures s in terminal cells when it starts at column offset.
func displayWidth(s string, offset, tab int) int {
	col := offset
	for _, r := range s {
		if r == '\t' {
			col += tab - col%tab
			continue
		}
		col += runewidth.RuneWidth(r)
	}
	return col - offset
}

func expandTabs(s string, tab int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tab - col%tab
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

// Short prints one line per problem.
func Short(w io.Writer, problems []diag.Problem, fs *source.FileSet, mode PathMode) error {
	out := diag.FormatShort(problems, fs, mode.String())
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}

// Render writes problems in format f.
func Render(w io.Writer, f Format, problems []diag.Problem, fs *source.FileSet, pretty PrettyOpts, jsonOpts JSONOpts) error {
	switch f {
	case FormatShort:
		return Short(w, problems, fs, pretty.PathMode)
	case FormatJSON:
		return JSON(w, problems, fs, jsonOpts)
	case FormatYAML:
		return YAML(w, problems, fs, jsonOpts)
	default:
		return Pretty(w, problems, fs, pretty)
	}
}
