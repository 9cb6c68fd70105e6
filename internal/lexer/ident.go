package lexer

import "unicode"

// The Unicode XID_Start and XID_Continue properties, derived as in UAX #31:
// ID_Start and ID_Continue are built from the general categories plus the
// stability extensions, minus pattern characters. The XID variants then drop
// the code points whose NFKC form is not itself an identifier.

var (
	idStart = []*unicode.RangeTable{
		unicode.L,
		unicode.Nl,
		unicode.Other_ID_Start,
	}
	idContinue = []*unicode.RangeTable{
		unicode.L,
		unicode.Nl,
		unicode.Other_ID_Start,
		unicode.Mn,
		unicode.Mc,
		unicode.Nd,
		unicode.Pc,
		unicode.Other_ID_Continue,
	}
	idExcluded = []*unicode.RangeTable{
		unicode.Pattern_Syntax,
		unicode.Pattern_White_Space,
	}

	// in ID_Continue but not XID_Continue, and so not XID_Start either
	nfkcContinueExcluded = &unicode.RangeTable{
		R16: []unicode.Range16{
			{Lo: 0x037a, Hi: 0x037a, Stride: 1},
			{Lo: 0x309b, Hi: 0x309c, Stride: 1},
			{Lo: 0xfc5e, Hi: 0xfc63, Stride: 1},
			{Lo: 0xfdfa, Hi: 0xfdfb, Stride: 1},
			{Lo: 0xfe70, Hi: 0xfe7e, Stride: 2},
		},
	}

	// in ID_Start but only XID_Continue: they may follow an identifier's
	// first character but never be it
	nfkcStartExcluded = &unicode.RangeTable{
		R16: []unicode.Range16{
			{Lo: 0x0e33, Hi: 0x0e33, Stride: 1},
			{Lo: 0x0eb3, Hi: 0x0eb3, Stride: 1},
			{Lo: 0xff9e, Hi: 0xff9f, Stride: 1},
		},
	}
)

func isIDStart(r rune) bool {
	if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
		return true
	}
	if r < 0x80 {
		return false
	}

	return unicode.In(r, idStart...) &&
		!unicode.In(r, idExcluded...) &&
		!unicode.Is(nfkcContinueExcluded, r) &&
		!unicode.Is(nfkcStartExcluded, r)
}

func isIDContinue(r rune) bool {
	if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
		return true
	}
	if r < 0x80 {
		return false
	}

	return unicode.In(r, idContinue...) &&
		!unicode.In(r, idExcluded...) &&
		!unicode.Is(nfkcContinueExcluded, r)
}

func isWhitespace(r rune) bool {
	return unicode.IsSpace(r)
}

// isPunct reports whether r can start or continue one of the fixed tokens.
func isPunct(r rune) bool {
	switch r {
	case '"', '/', '|', ',', ':', ';', '(', '[', '{', ')', ']', '}',
		'+', '-', '*', '=', '.', '%', '<', '>':
		return true
	}

	return false
}

func isUnknown(r rune) bool {
	return !(isWhitespace(r) || isIDContinue(r) || isPunct(r))
}
