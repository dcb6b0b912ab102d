package toml

// Parse parses TOML source into a Document. Every byte of the input,
// including whitespace and comments, is retained in the document, so an
// unmutated document serializes back to exactly the input.
//
// Parsing is fail-fast: the first grammar or semantic violation returns
// a *ParseError and no document.
func Parse(input []byte) (*Document, error) {
	return newParser(input).parse()
}
