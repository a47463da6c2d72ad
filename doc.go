/*
Package ronfmt formats RON (Rusty Object Notation) documents into one
canonical layout and decodes them into Go values.

Formatting keeps every comment, every #![enable(...)] extension header and
the document's newline convention, and never changes the decoded value of
the document. There are no style options: lists, maps and structs put one
item per line with a trailing comma, tuples do so when they have two or more
fields, and indentation is four spaces.

Example:

	out, err := ronfmt.Format([]byte(`Config(name:"app",ports:[80,443])`))
	if err != nil {
		// handle error
	}
	// out:
	// Config(
	//     name: "app",
	//     ports: [
	//         80,
	//         443,
	//     ],
	// )

The syntax tree returned by Parse is loss-less: every space and comment is
kept, and Document.String reproduces the source byte for byte. A tree can be
inspected or edited and then rendered again with FormatDocument.

For reading RON data, Decode returns a generic value (see package value) and
Unmarshal stores a document into a Go value, matching struct fields by name
or by a `ron:"name"` tag:

	type Config struct {
		Name  string `ron:"name"`
		Ports []int  `ron:"ports"`
	}

	var cfg Config
	if err := ronfmt.Unmarshal(data, &cfg); err != nil {
		// handle error
	}

Types can take over their own decoding by implementing Unmarshaler, or
encoding.TextUnmarshaler for string values.
*/
package ronfmt
