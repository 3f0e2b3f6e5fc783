package lexer

import (
	"bytes"

	"golang.org/x/text/unicode/norm"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// Normalize performs input normalization at the lexer boundary: it strips a
// UTF-8 BOM if present and applies Unicode NFC normalization, so that
// lexically equivalent source text produces identical token streams
// regardless of encoding variations. Only ASCII is lexically meaningful
// (spec §6): string literals and comments pass through whatever Unicode
// the source contains, while a non-ASCII byte anywhere else lexes as an
// unknown character.
func Normalize(src []byte) []byte {
	src = bytes.TrimPrefix(src, bomUTF8)
	if !norm.NFC.IsNormal(src) {
		src = norm.NFC.Bytes(src)
	}
	return src
}
