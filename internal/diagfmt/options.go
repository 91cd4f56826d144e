package diagfmt

import "fmt"

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto prints short or relative paths as given and long absolute ones by basename.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// Format selects a problem renderer.
type Format uint8

const (
	FormatPretty Format = iota
	FormatShort
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatShort:
		return "short"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "pretty"
	}
}

// ParseFormat maps a --format value to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "pretty":
		return FormatPretty, nil
	case "short":
		return FormatShort, nil
	case "json":
		return FormatJSON, nil
	case "yaml":
		return FormatYAML, nil
	default:
		return FormatPretty, fmt.Errorf("unknown format %q (want pretty|short|json|yaml)", s)
	}
}

// PrettyOpts configures pretty-printing of problems.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	TabWidth int // 0 means 4
}

// JSONOpts configures JSON and YAML output of problems.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода
	Dialect          string
}
