package css

// maxLookahead bounds the parser's token queue, matching the CSS combinator
// layer's 16-token lookahead window.
const maxLookahead = 16

// maxIterations bounds the combinator loops below so that a malformed or
// adversarial input can never spin the parser forever; each capped loop
// behaves as if the list had simply ended early.
const maxIterations = 128

// Parser consumes a Tokenizer's output through a buffer that collapses
// consecutive whitespace tokens into one, then layers the recursive-descent
// combinators used by the rule and declaration grammar on top of it.
type Parser struct {
	tok    *Tokenizer
	tokens []Token // every token read so far, with whitespace runs collapsed
	pos    int     // index into tokens of the next unconsumed token
	eof    bool    // tokens ends with the EOF token
}

// NewParser returns a Parser reading tokens from source.
func NewParser(source string) *Parser {
	return &Parser{tok: NewTokenizer(source)}
}

// State is an opaque snapshot of a Parser's position, for backtracking.
// Tokens already pulled from the tokenizer stay buffered on the Parser, so
// restoring is just rewinding an index.
type State struct {
	pos int
}

// SaveState captures p's current position.
func (p *Parser) SaveState() State {
	return State{pos: p.pos}
}

// RestoreState rewinds p to a previously saved position.
func (p *Parser) RestoreState(s State) {
	p.pos = s.pos
}

// fillQueue ensures tokens holds at least n+1 unconsumed tokens (or ends in
// EOF), collapsing any run of consecutive Whitespace tokens produced by the
// tokenizer into a single one as it goes — the parser never needs to see
// more than one Whitespace token in a row.
func (p *Parser) fillQueue(n int) {
	for !p.eof && len(p.tokens) <= p.pos+n {
		tok := p.tok.Next()
		if tok.IsWhitespace() && len(p.tokens) > 0 && p.tokens[len(p.tokens)-1].IsWhitespace() {
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == EOF {
			p.eof = true
		}
	}
}

// peekToken returns the nth not-yet-consumed token without consuming it.
// Lookahead is bounded at maxLookahead tokens.
func (p *Parser) peekToken(n int) Token {
	if n > maxLookahead {
		n = maxLookahead
	}
	p.fillQueue(n)
	if p.pos+n >= len(p.tokens) {
		return Token{Kind: EOF}
	}
	return p.tokens[p.pos+n]
}

// nextToken consumes and returns the next token.
func (p *Parser) nextToken() Token {
	tok := p.peekToken(0)
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expectToken consumes the next token and reports whether its Kind matched.
func (p *Parser) expectToken(kind Kind) (Token, bool) {
	tok := p.nextToken()
	return tok, tok.Kind == kind
}

// skipWhitespace consumes tokens while the next one is Whitespace.
func (p *Parser) skipWhitespace() {
	for p.peekToken(0).Kind == Whitespace {
		p.nextToken()
	}
}

// expectIdentifier consumes an Ident token and returns its interned value.
func (p *Parser) expectIdentifier() (InternedString, bool) {
	tok, ok := p.expectToken(Ident)
	if !ok {
		return 0, false
	}
	return tok.Value, true
}

// parseOptional runs parse and restores the parser's position if it fails,
// reporting the zero value and false instead of propagating the error.
func parseOptional[T any](p *Parser, parse func(*Parser) (T, error)) (T, bool) {
	state := p.SaveState()
	v, err := parse(p)
	if err != nil {
		p.RestoreState(state)
		var zero T
		return zero, false
	}
	return v, true
}

// parseNonEmpty runs parse and fails it if the parser's position did not
// advance, preventing zero-width matches from looping a caller forever.
func parseNonEmpty[T any](p *Parser, parse func(*Parser) (T, error)) (T, error) {
	before := p.SaveState()
	v, err := parse(p)
	if err != nil {
		var zero T
		return zero, err
	}
	if p.pos == before.pos {
		var zero T
		return zero, errParse
	}
	return v, nil
}

// parseAnyNumberOf repeatedly applies parse, collecting results until it
// fails, capping at maxIterations so a parser that never fails but never
// advances cannot spin forever.
func parseAnyNumberOf[T any](p *Parser, parse func(*Parser) (T, error)) []T {
	var out []T
	for i := 0; i < maxIterations; i++ {
		v, ok := parseOptional(p, parse)
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

// parseCommaSeparatedList parses a comma-separated, possibly-empty list of
// items, skipping whitespace around each comma.
func parseCommaSeparatedList[T any](p *Parser, parse func(*Parser) (T, error)) []T {
	var out []T
	for i := 0; i < maxIterations; i++ {
		p.skipWhitespace()
		v, ok := parseOptional(p, parse)
		if !ok {
			break
		}
		out = append(out, v)
		p.skipWhitespace()
		if p.peekToken(0).Kind != Comma {
			break
		}
		p.nextToken()
	}
	return out
}

// parseNonemptyCommaSeparatedList is parseCommaSeparatedList, failing if the
// list turned out to be empty.
func parseNonemptyCommaSeparatedList[T any](p *Parser, parse func(*Parser) (T, error)) ([]T, error) {
	out := parseCommaSeparatedList(p, parse)
	if len(out) == 0 {
		return nil, errParse
	}
	return out, nil
}

// Sides is the result of parseFourSidedProperty, naming the four edges of a
// CSS box-shorthand property (e.g. margin, padding, border-width).
type Sides[T any] struct {
	Top, Right, Bottom, Left T
}

// parseFourSidedProperty applies CSS's shorthand expansion rule for
// properties like margin: one value sets all four sides, two values set
// top/bottom then left/right, three set top, left/right, then bottom, and
// four set top, right, bottom, left in that order.
func parseFourSidedProperty[T any](p *Parser, parse func(*Parser) (T, error)) (Sides[T], error) {
	var values []T
	for i := 0; i < 4; i++ {
		if i > 0 {
			p.skipWhitespace()
		}
		v, ok := parseOptional(p, parse)
		if !ok {
			break
		}
		values = append(values, v)
	}

	switch len(values) {
	case 1:
		return Sides[T]{Top: values[0], Right: values[0], Bottom: values[0], Left: values[0]}, nil
	case 2:
		return Sides[T]{Top: values[0], Bottom: values[0], Right: values[1], Left: values[1]}, nil
	case 3:
		return Sides[T]{Top: values[0], Right: values[1], Left: values[1], Bottom: values[2]}, nil
	case 4:
		return Sides[T]{Top: values[0], Right: values[1], Bottom: values[2], Left: values[3]}, nil
	default:
		return Sides[T]{}, errParse
	}
}
