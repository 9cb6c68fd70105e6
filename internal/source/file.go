package source

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

type SourceFile struct {
	// Path the file was loaded from
	Path string
	// Text is the full contents of the file
	Text string
	// StartPos is the global offset of the first byte of Text
	StartPos uint32

	// file-relative byte offsets of every '\n'
	lines []uint32
}

func newSourceFile(path, text string, startPos uint32) *SourceFile {
	lines := make([]uint32, 0, strings.Count(text, "\n"))
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, uint32(i))
		}
	}

	return &SourceFile{
		Path:     path,
		Text:     text,
		StartPos: startPos,
		lines:    lines,
	}
}

// EndPos returns the global offset one past the last byte of the file.
func (f *SourceFile) EndPos() uint32 {
	return f.StartPos + uint32(len(f.Text))
}

// Contains reports whether pos falls inside the file, including its end offset.
func (f *SourceFile) Contains(pos uint32) bool {
	return pos >= f.StartPos && pos <= f.EndPos()
}

// LineNumber returns the 1-based line that the file-relative offset is on.
// A newline character belongs to the line it terminates.
func (f *SourceFile) LineNumber(offset uint32) int {
	idx, _ := slices.BinarySearchFunc(f.lines, offset, func(nl, off uint32) int {
		if nl < off {
			return -1
		}
		return 1
	})

	return idx + 1
}

func (f *SourceFile) LineCount() int {
	return len(f.lines) + 1
}

// lineStart returns the file-relative offset of the first byte of a 1-based line.
func (f *SourceFile) lineStart(line int) uint32 {
	if line <= 1 {
		return 0
	}
	return f.lines[line-2] + 1
}

// Line returns the text of a 1-based line without its terminator.
func (f *SourceFile) Line(line int) (string, error) {
	if line < 1 || line > f.LineCount() {
		return "", fmt.Errorf("line %d out of range", line)
	}

	start := f.lineStart(line)
	end := uint32(len(f.Text))
	if line-1 < len(f.lines) {
		end = f.lines[line-1]
	}

	return strings.TrimSuffix(f.Text[start:end], "\r"), nil
}

// Location returns the 1-based line and byte column of a file-relative offset.
func (f *SourceFile) Location(offset uint32) (line, col int) {
	line = f.LineNumber(offset)
	col = int(offset-f.lineStart(line)) + 1
	return
}
