package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("check.go", []byte("version 1"), 0)
	id2 := fs.Add("check.go", []byte("version 2"), 0)
	if id1 == id2 {
		t.Fatal("expected a new FileID for the second Add")
	}

	latest, ok := fs.GetLatest("check.go")
	if !ok || latest != id2 {
		t.Errorf("GetLatest = %d, %v; want %d, true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "version 1" {
		t.Errorf("old version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestGetUnknownID(t *testing.T) {
	fs := NewFileSet()
	if fs.Get(3) != nil {
		t.Error("expected nil for unknown id")
	}
	if fs.Get(NoFile) != nil {
		t.Error("expected nil for NoFile")
	}
}

// TestAddVirtualLineIdx проверяет правильность построения LineIdx для AddVirtual
func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("a.go", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("LineIdx length = %d, want %d", len(file.LineIdx), len(expected))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], val)
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag to be set")
	}
}

func TestPosition(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("p.go", []byte("ab\n\ncd\n")))

	tests := []struct {
		off       int
		line, col int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{2, 0, 2}, // the newline belongs to its own line
		{3, 1, 0},
		{4, 2, 0},
		{5, 2, 1},
		{7, 3, 0},
	}
	for _, tt := range tests {
		line, col := file.Position(tt.off)
		if line != tt.line || col != tt.col {
			t.Errorf("Position(%d) = (%d, %d), want (%d, %d)", tt.off, line, col, tt.line, tt.col)
		}
	}
}

func TestOffset(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("o.go", []byte("ab\ncd\n")))

	tests := []struct {
		line, col int
		want      int
		ok        bool
	}{
		{1, 1, 0, true},
		{1, 3, 2, true},
		{2, 2, 4, true},
		{3, 1, 6, true},
		{4, 1, 0, false},
		{0, 1, 0, false},
	}
	for _, tt := range tests {
		got, ok := file.Offset(tt.line, tt.col)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("Offset(%d, %d) = %d, %v; want %d, %v", tt.line, tt.col, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSlice(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("s.go", []byte("hello world")))
	if got := file.Slice(6, 11); got != "world" {
		t.Errorf("Slice = %q", got)
	}
	if got := file.Slice(-3, 100); got != "hello world" {
		t.Errorf("clamped Slice = %q", got)
	}
	if got := file.Slice(5, 2); got != "" {
		t.Errorf("inverted Slice = %q", got)
	}
}

// TestResolveUTF8 проверяет разрешение позиций в UTF-8 тексте
func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("u.go", []byte("α\n"))

	start, end := fs.Resolve(Span{File: id, Start: 0, End: 1})
	if start != (LineCol{Line: 1, Col: 1}) {
		t.Errorf("start = %+v", start)
	}
	if end != (LineCol{Line: 1, Col: 2}) {
		t.Errorf("end = %+v", end)
	}
}

func TestLoadNormalizes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		flag FileFlags
	}{
		{"plain", "a\nb\n", 0},
		{"bom", "\xEF\xBB\xBFa\nb\n", FileHadBOM},
		{"crlf", "a\r\nb\r\n", FileNormalizedCRLF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "in.go")
			if err := os.WriteFile(path, []byte(tt.raw), 0o600); err != nil {
				t.Fatal(err)
			}
			fs := NewFileSet()
			id, err := fs.Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			file := fs.Get(id)
			if string(file.Content) != "a\nb\n" {
				t.Errorf("content = %q", file.Content)
			}
			if file.Flags != tt.flag {
				t.Errorf("flags = %b, want %b", file.Flags, tt.flag)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	fs := NewFileSet()
	id, err := fs.Load(filepath.Join(t.TempDir(), "missing.go"))
	if err == nil {
		t.Fatal("expected error")
	}
	if id != NoFile {
		t.Errorf("id = %d, want NoFile", id)
	}
}

func TestSpanValidity(t *testing.T) {
	if NoSpan.IsValid() {
		t.Error("NoSpan must not be valid")
	}
	if NoSpan.String() != "-" {
		t.Errorf("NoSpan.String() = %q", NoSpan.String())
	}
	sp := Span{File: 0, Start: 4, End: 9}.Cover(Span{File: 0, Start: 2, End: 6})
	if sp.Start != 2 || sp.End != 9 {
		t.Errorf("Cover = %v", sp)
	}
}
