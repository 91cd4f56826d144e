package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"conform/internal/ast"
	"conform/internal/source"
)

// TreeNodeOutput is the JSON form of a syntax tree node.
type TreeNodeOutput struct {
	Kind     string           `json:"kind"`
	Role     string           `json:"role,omitempty"`
	Flags    string           `json:"flags,omitempty"`
	Text     string           `json:"text,omitempty"`
	Span     string           `json:"span"`
	Children []TreeNodeOutput `json:"children,omitempty"`
}

func nodeLabel(n ast.NodeRef, fs *source.FileSet) string {
	label := n.Kind().String()
	if t := n.Text(); t != "" {
		label += fmt.Sprintf(" %q", t)
	}
	if r := n.Role(); r != ast.RoleNone {
		label += " [" + r.String() + "]"
	}
	if f := n.Flags().String(); f != "" {
		label += " {" + f + "}"
	}
	return label + " (span: " + formatSpan(n.Span(), fs) + ")"
}

// FormatTreePretty prints the tree as an indented outline, one node per line.
func FormatTreePretty(w io.Writer, tree *ast.Tree, fs *source.FileSet) error {
	root := tree.RootRef()
	if !root.Valid() {
		return fmt.Errorf("tree has no root")
	}
	if fs != nil {
		if f := fs.Get(tree.File); f != nil {
			if _, err := fmt.Fprintf(w, "%s\n", f.FormatPath("auto", fs.BaseDir())); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintf(w, "%s\n", nodeLabel(root, fs)); err != nil {
		return err
	}
	return formatChildrenPretty(w, root, fs, "")
}

func formatChildrenPretty(w io.Writer, n ast.NodeRef, fs *source.FileSet, prefix string) error {
	children := n.Children()
	for i, c := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, nodeLabel(c, fs)); err != nil {
			return err
		}
		if err := formatChildrenPretty(w, c, fs, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

// BuildTreeOutput converts the subtree under n.
func BuildTreeOutput(n ast.NodeRef, fs *source.FileSet) TreeNodeOutput {
	out := TreeNodeOutput{
		Kind:  n.Kind().String(),
		Role:  n.Role().String(),
		Flags: n.Flags().String(),
		Text:  n.Text(),
		Span:  formatSpan(n.Span(), fs),
	}
	for _, c := range n.Children() {
		out.Children = append(out.Children, BuildTreeOutput(c, fs))
	}
	return out
}

// FormatTreeJSON writes the tree as indented JSON.
func FormatTreeJSON(w io.Writer, tree *ast.Tree, fs *source.FileSet) error {
	root := tree.RootRef()
	if !root.Valid() {
		return fmt.Errorf("tree has no root")
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTreeOutput(root, fs))
}
