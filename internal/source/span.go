package source

import "fmt"

// Span addresses Len bytes starting at the global offset Lo. It only has
// meaning relative to the SourceMap that produced the offsets.
type Span struct {
	Lo, Len uint32
}

func NewSpan(lo, len uint32) Span {
	return Span{Lo: lo, Len: len}
}

// Hi returns the exclusive end offset.
func (s Span) Hi() uint32 {
	return s.Lo + s.Len
}

func (s Span) IsEmpty() bool {
	return s.Len == 0
}

// Compare orders spans by Lo, then by Len.
func (s Span) Compare(o Span) int {
	switch {
	case s.Lo < o.Lo:
		return -1
	case s.Lo > o.Lo:
		return 1
	case s.Len < o.Len:
		return -1
	case s.Len > o.Len:
		return 1
	}

	return 0
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Lo, s.Hi())
}
