package parsegen

import "unicode"

// foldCaseWorkaround pins U+017F (long s) and U+212A (Kelvin sign) to
// themselves. Left to unicode.SimpleFold, both would otherwise fold into
// the plain ASCII 'S'/'K' equivalence class, so a CILiteral built from
// one of these runes would also match the ASCII letter it merely
// resembles. Pinning them keeps each rune in its own class.
var foldCaseWorkaround = map[rune]rune{
	'ſ': 'ſ',
	'K': 'K',
}

// foldRune returns the canonical case-fold representative of r: walk
// unicode.SimpleFold's orbit down to its lowest member so that any two
// runes in the same case-fold equivalence class compare equal after
// folding.
func foldRune(r rune) rune {
	if w, ok := foldCaseWorkaround[r]; ok {
		return w
	}
	r0 := unicode.SimpleFold(r)
	if r0 == r {
		return r
	}
	for r0 > r {
		r0 = unicode.SimpleFold(r0)
	}
	return r0
}

// foldByte is the ASCII-only fold used when CILiteral is built over a
// Buffer[byte]: full Unicode case folding needs rune decoding (not all
// byte sequences are UTF-8), so byte-buffer case-insensitivity is
// intentionally limited to the ASCII range, same as the common
// "bytes.EqualFold on raw bytes" shortcut.
func foldByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
