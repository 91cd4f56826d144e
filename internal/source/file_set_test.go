package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("Test.java", []byte("class A {}"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}
	id2 := fs.Add("Test.java", []byte("class B {}"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists := fs.GetLatest("Test.java")
	if !exists || latestID != id2 {
		t.Fatalf("GetLatest = %d, %v; want %d, true", latestID, exists, id2)
	}
	if got := string(fs.Get(id1).Content); got != "class A {}" {
		t.Errorf("first content = %q", got)
	}
	if fs.Get(FileID(42)) != nil {
		t.Errorf("expected nil for unknown file id")
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("A.java", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 3}}, // сам '\n'
		{3, LineCol{Line: 2, Col: 1}},
		{4, LineCol{Line: 2, Col: 2}},
		{6, LineCol{Line: 3, Col: 1}},
		{7, LineCol{Line: 4, Col: 1}},
		{8, LineCol{Line: 4, Col: 2}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLineAndText(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("A.java", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	if got := f.GetLine(2); got != "second" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Errorf("GetLine(3) = %q", got)
	}
	if got := f.GetLine(9); got != "" {
		t.Errorf("GetLine(9) = %q, want empty", got)
	}
	if got := fs.Text(Span{File: id, Start: 6, End: 12}); got != "second" {
		t.Errorf("Text = %q", got)
	}
	if got := fs.Text(Span{File: id, Start: 16, End: 100}); got != "rd" {
		t.Errorf("Text clamps to content, got %q", got)
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Crlf.java")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("class A {\r\n}\r\n")...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "class A {\n}\n" {
		t.Fatalf("content not normalized: %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", f.Flags)
	}
	if got := f.FormatPath("relative", dir); got != "Crlf.java" {
		t.Fatalf("relative path = %q", got)
	}
}

func TestAddFlagsNonNFCContent(t *testing.T) {
	fs := NewFileSet()
	// "e" + combining acute accent is NFD, not NFC
	id := fs.AddVirtual("N.java", []byte("String s = \"e\u0301\";"))
	if fs.Get(id).Flags&FileNotNFC == 0 {
		t.Fatalf("expected FileNotNFC flag")
	}
	id = fs.AddVirtual("M.java", []byte("String s = \"\u00e9\";"))
	if fs.Get(id).Flags&FileNotNFC != 0 {
		t.Fatalf("unexpected FileNotNFC flag for NFC content")
	}
}
