package css

import "strings"

// Importance records whether a declaration carried a trailing !important.
type Importance int

const (
	Normal Importance = iota
	Important
)

// Declaration is a single "name: value" pair inside a rule's block, per
// https://drafts.csswg.org/css-syntax/#declaration.
type Declaration struct {
	Name       InternedString
	Value      []Token
	Importance Importance
}

// QualifiedRule is a prelude of component values followed by a {}-block, per
// https://drafts.csswg.org/css-syntax/#qualified-rule. Style rules (the only
// kind this package constructs) hold their block's declarations directly;
// the raw prelude tokens are kept for selector parsing done elsewhere.
type QualifiedRule struct {
	Prelude      []Token
	Declarations []Declaration
}

// Stylesheet is the top-level list of qualified rules, per
// https://drafts.csswg.org/css-syntax/#parse-a-css-stylesheet.
type Stylesheet struct {
	Rules []QualifiedRule
}

// ParseStylesheet tokenizes and parses source as a stylesheet, consuming any
// leading/interleaved CDO/CDC tokens per the top-level stylesheet grammar.
func ParseStylesheet(source string) (*Stylesheet, error) {
	p := NewParser(source)
	rules := p.consumeListOfRules(true)
	return &Stylesheet{Rules: rules}, nil
}

// consumeListOfRules implements
// https://drafts.csswg.org/css-syntax/#consume-list-of-rules. At the top
// level, CDO/CDC tokens are discarded; nested inside a block they would
// instead be reconsumed into a qualified rule, but this package only
// constructs stylesheets, never nested rule lists.
func (p *Parser) consumeListOfRules(topLevel bool) []QualifiedRule {
	var rules []QualifiedRule
	for i := 0; i < maxIterations*maxIterations; i++ {
		tok := p.peekToken(0)
		switch {
		case tok.Kind == EOF:
			return rules
		case tok.Kind == Whitespace:
			p.nextToken()
		case tok.Kind == CDO || tok.Kind == CDC:
			if topLevel {
				p.nextToken()
				continue
			}
			if rule, ok := p.consumeQualifiedRule(); ok {
				rules = append(rules, rule)
			}
		default:
			if rule, ok := p.consumeQualifiedRule(); ok {
				rules = append(rules, rule)
			}
		}
	}
	return rules
}

// consumeQualifiedRule implements
// https://drafts.csswg.org/css-syntax/#consume-qualified-rule: collect
// prelude tokens up to the block's opening brace, then parse the block's
// contents as a list of declarations. EOF before the block starts is a
// parse error with no rule produced.
func (p *Parser) consumeQualifiedRule() (QualifiedRule, bool) {
	var rule QualifiedRule
	for {
		tok := p.peekToken(0)
		switch tok.Kind {
		case EOF:
			return QualifiedRule{}, false
		case CurlyBraceOpen:
			p.nextToken()
			rule.Declarations = p.consumeListOfDeclarations()
			return rule, true
		default:
			rule.Prelude = append(rule.Prelude, p.nextToken())
		}
	}
}

// consumeListOfDeclarations implements
// https://drafts.csswg.org/css-syntax/#consume-list-of-declarations for a
// style rule's block: declarations separated by semicolons, terminated by
// the block's closing brace.
func (p *Parser) consumeListOfDeclarations() []Declaration {
	var decls []Declaration
	for i := 0; i < maxIterations; i++ {
		tok := p.peekToken(0)
		switch tok.Kind {
		case EOF, CurlyBraceClose:
			p.nextToken()
			return decls
		case Whitespace, Semicolon:
			p.nextToken()
		case AtKeyword:
			// At-rules nested in a declaration block (e.g. @media inside a
			// style rule) are outside this package's scope; tokens are
			// skipped through the next ';' or up to the next '}'. A nested
			// block is not skipped as a unit: its '}' ends this list.
			p.consumeRemnantsOfBadDeclaration(true)
		default:
			if decl, ok := p.consumeDeclaration(true); ok {
				decls = append(decls, decl)
			}
		}
	}
	return decls
}

// consumeDeclaration implements
// https://drafts.csswg.org/css-syntax/#consume-a-declaration. nested
// indicates the declaration's block may be closed by a CurlyBraceClose
// rather than only by ';' or EOF.
func (p *Parser) consumeDeclaration(nested bool) (Declaration, bool) {
	name, ok := p.expectIdentifier()
	if !ok {
		p.consumeRemnantsOfBadDeclaration(nested)
		return Declaration{}, false
	}
	decl := Declaration{Name: name}

	p.skipWhitespace()
	if p.peekToken(0).Kind != Colon {
		p.consumeRemnantsOfBadDeclaration(nested)
		return Declaration{}, false
	}
	p.nextToken()
	p.skipWhitespace()

	for {
		tok := p.peekToken(0)
		if tok.Kind == EOF || tok.Kind == Semicolon || (nested && tok.Kind == CurlyBraceClose) {
			break
		}
		decl.Value = append(decl.Value, p.nextToken())
	}

	// The last two non-whitespace tokens being '!' and the identifier
	// "important" (ASCII case-insensitive) mark the declaration important.
	decl.Importance = Normal
	decl.Value = trimTrailingWhitespace(decl.Value)
	if n := len(decl.Value); n >= 2 {
		last := decl.Value[n-1]
		rest := trimTrailingWhitespace(decl.Value[:n-1])
		if m := len(rest); m >= 1 && last.Kind == Ident &&
			strings.EqualFold(last.Value.String(), "important") &&
			rest[m-1].Kind == Delim && rest[m-1].Delim == '!' {
			decl.Importance = Important
			decl.Value = trimTrailingWhitespace(rest[:m-1])
		}
	}
	decl.Value = trimSurroundingWhitespace(decl.Value)

	if p.peekToken(0).Kind == Semicolon {
		p.nextToken()
	} else if tok := p.peekToken(0); tok.Kind != EOF && !(nested && tok.Kind == CurlyBraceClose) {
		p.consumeRemnantsOfBadDeclaration(nested)
		return Declaration{}, false
	}
	return decl, true
}

// consumeRemnantsOfBadDeclaration implements
// https://drafts.csswg.org/css-syntax/#consume-the-remnants-of-a-bad-declaration:
// discard tokens up to (and including) the next ';', or up to but excluding
// the block's closing '}' when nested, or EOF.
func (p *Parser) consumeRemnantsOfBadDeclaration(nested bool) {
	for {
		tok := p.peekToken(0)
		switch {
		case tok.Kind == EOF:
			return
		case tok.Kind == Semicolon:
			p.nextToken()
			return
		case nested && tok.Kind == CurlyBraceClose:
			return
		default:
			p.nextToken()
		}
	}
}

func trimTrailingWhitespace(toks []Token) []Token {
	for len(toks) > 0 && toks[len(toks)-1].Kind == Whitespace {
		toks = toks[:len(toks)-1]
	}
	return toks
}

func trimSurroundingWhitespace(toks []Token) []Token {
	for len(toks) > 0 && toks[0].Kind == Whitespace {
		toks = toks[1:]
	}
	return trimTrailingWhitespace(toks)
}
