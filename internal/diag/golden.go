package diag

import (
	"fmt"
	"path/filepath"
	"strings"

	"conform/internal/source"
)

// FormatShort renders problems as one line each:
//
//	<path>:<line>:<col>: <rule>: <message>
//
// Lines keep the input order; the validator already emits problems in
// document order. The result is empty when there is nothing to print.
func FormatShort(problems []Problem, fs *source.FileSet, pathMode string) string {
	if fs == nil || len(problems) == 0 {
		return ""
	}

	var b strings.Builder
	for i, p := range problems {
		path, line, col := resolveSpan(fs, p.Span, pathMode)
		fmt.Fprintf(&b, "%s:%d:%d: %s: %s", path, line, col, p.Rule, sanitizeMessage(p.Message))
		if i < len(problems)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func resolveSpan(fs *source.FileSet, span source.Span, pathMode string) (path string, line, col uint32) {
	file := fs.Get(span.File)
	if file == nil {
		return "<unknown>", 0, 0
	}
	start, _ := fs.Resolve(span)
	return normalizePath(file.FormatPath(pathMode, fs.BaseDir())), start.Line, start.Col
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
