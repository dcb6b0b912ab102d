/*
Package toml parses and serializes TOML documents without losing their
formatting. Whitespace, comments, key ordering, quoting styles and the
exact spelling of numeric literals all survive a parse/serialize round
trip, which makes the package suitable for tools that edit configuration
files in place and must not clobber what the user wrote.

Parsing produces a Document:

	doc, err := toml.Parse(input)
	if err != nil {
		// handle error
	}

The Document is a mutable model. Navigation and mutation go through key
paths:

	item := doc.Get("server", "port")
	err := doc.Insert([]string{"server", "port"}, toml.NewInteger(8080))
	removed := doc.Remove("server", "debug")

Mutations touch only the items they name: inserting or removing a key
leaves the formatting of every other line exactly as it was, and new
items are written with canonical minimal formatting at the end of their
table. Serialization is a method of the document itself:

	output := doc.String()

For an unmutated document, output is byte-identical to the input.

Errors from Parse are *ParseError values carrying an ErrorKind and the
byte span of the offending source, so callers can render their own
diagnostics. The package itself never prints anything.
*/
package toml
