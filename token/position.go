package token

// Position converts a byte offset into a 1-based line and column pair.
// Columns count bytes, not runes; tools that render carets should take
// this into account for multi-byte characters.
func Position(src []byte, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	line, col = 1, 1
	for _, b := range src[:offset] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
