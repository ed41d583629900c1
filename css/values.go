package css

// Length is a single <length> or <percentage> value, the unit CSS box
// properties like margin and padding are expressed in. This package parses
// only as much of the value grammar as the four-sided shorthand combinator
// needs to be exercised; a full value grammar belongs to the properties
// that consume it.
type Length struct {
	Value      float64
	Unit       InternedString // zero InternedString for a bare percentage
	Percentage bool
}

// parseLength consumes a single Dimension or Percentage token as a Length.
func parseLength(p *Parser) (Length, error) {
	switch tok := p.peekToken(0); tok.Kind {
	case Dimension:
		p.nextToken()
		return Length{Value: tok.Num.Value, Unit: tok.Unit}, nil
	case Percentage:
		p.nextToken()
		return Length{Value: tok.Num.Value, Percentage: true}, nil
	default:
		return Length{}, errParse
	}
}

// ParseFourSidedLength parses a margin/padding/border-width-style shorthand
// value ("1px", "1px 2px", "1px 2px 3px", or "1px 2px 3px 4px") into its
// four expanded sides.
func ParseFourSidedLength(source string) (Sides[Length], error) {
	p := NewParser(source)
	return parseFourSidedProperty(p, parseLength)
}

// ParseLengthList parses a comma-separated list of one or more lengths,
// e.g. "1px, 2em, 50%".
func ParseLengthList(source string) ([]Length, error) {
	p := NewParser(source)
	return parseNonemptyCommaSeparatedList(p, parseLength)
}

// ParseLengths parses a whitespace-separated run of one or more lengths.
func ParseLengths(source string) ([]Length, error) {
	lengths := parseAnyNumberOf(NewParser(source), func(p *Parser) (Length, error) {
		return parseNonEmpty(p, func(p *Parser) (Length, error) {
			p.skipWhitespace()
			return parseLength(p)
		})
	})
	if len(lengths) == 0 {
		return nil, errParse
	}
	return lengths, nil
}
