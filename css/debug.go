// +build debug

package css

import (
	"fmt"
	"os"
)

const debug = true

// kindNames is indexed by Kind, for the dumper below only.
var kindNames = [...]string{
	"Ident", "AtKeyword", "String", "BadString", "Hash", "Number",
	"Percentage", "Dimension", "URL", "BadURL", "Function", "Delim",
	"Colon", "Semicolon", "Comma", "CurlyBraceOpen", "CurlyBraceClose",
	"ParenOpen", "ParenClose", "BracketOpen", "BracketClose",
	"Whitespace", "Comment", "CDO", "CDC", "EOF",
}

// dumpTokens tokenizes source and prints one token per line.
func dumpTokens(source string) {
	var output = os.Stderr

	tok := NewTokenizer(source)
	for {
		t := tok.Next()
		switch t.Kind {
		case Ident, AtKeyword, String, BadString, Hash, Function, URL:
			fmt.Fprintf(output, "%s(%q)\n", kindNames[t.Kind], t.Value.String())
		case Number, Percentage:
			fmt.Fprintf(output, "%s(%v)\n", kindNames[t.Kind], t.Num.Value)
		case Dimension:
			fmt.Fprintf(output, "%s(%v, %q)\n", kindNames[t.Kind], t.Num.Value, t.Unit.String())
		case Delim:
			fmt.Fprintf(output, "Delim(%q)\n", t.Delim)
		default:
			fmt.Fprintf(output, "%s\n", kindNames[t.Kind])
		}
		if t.Kind == EOF {
			return
		}
	}
}
