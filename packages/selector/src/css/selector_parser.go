package css

import (
	"errors"
	"fmt"

	"ngsel-go/packages/selector/src/core"
	"ngsel-go/packages/selector/src/util"
)

var (
	// ErrNestedNot is wrapped by parse errors for a :not() inside a :not()
	ErrNestedNot = errors.New("nested :not")
	// ErrMultipleInNot is wrapped by parse errors for a selector list inside a :not()
	ErrMultipleInNot = errors.New("multiple selectors in :not")
	// ErrSyntax is wrapped by every other selector parse error
	ErrSyntax = errors.New("selector syntax error")
)

const selectorSourceURL = "selector"

// ParseCssSelector parses a comma separated selector list into its alternatives.
// Malformed input is rejected with a *util.ParseError; no partial result is returned.
func ParseCssSelector(selector string) ([]*CssSelector, error) {
	p := &selectorParser{
		file:  util.NewParseSourceFile(selector, selectorSourceURL),
		input: selector,
	}
	return p.parseList()
}

type selectorParser struct {
	file  *util.ParseSourceFile
	input string
	index int
}

func (p *selectorParser) atEnd() bool {
	return p.index >= len(p.input)
}

func (p *selectorParser) peek() int {
	if p.atEnd() {
		return core.CharEOF
	}
	return int(p.input[p.index])
}

func (p *selectorParser) startsWith(prefix string) bool {
	return len(p.input)-p.index >= len(prefix) && p.input[p.index:p.index+len(prefix)] == prefix
}

// skipWhitespace reports whether anything was skipped
func (p *selectorParser) skipWhitespace() bool {
	start := p.index
	for !p.atEnd() && core.IsWhitespace(p.peek()) {
		p.index++
	}
	return p.index > start
}

func (p *selectorParser) readIdentifier() string {
	start := p.index
	for !p.atEnd() && core.IsIdentifierPart(p.peek()) {
		p.index++
	}
	return p.input[start:p.index]
}

func (p *selectorParser) errorAt(start int, msg string, related error) *util.ParseError {
	end := p.index
	if end < start {
		end = start
	}
	err := util.NewParseError(util.NewParseSourceSpan(
		util.LocationAt(p.file, start),
		util.LocationAt(p.file, end),
		nil,
	), msg)
	err.RelatedError = related
	return err
}

func (p *selectorParser) parseList() ([]*CssSelector, error) {
	results := []*CssSelector{}

	for {
		p.skipWhitespace()
		start := p.index
		cssSelector, err := p.parseCompound(false)
		if err != nil {
			return nil, err
		}
		if cssSelector.isEmpty() {
			return nil, p.errorAt(start, "Empty selector", ErrSyntax)
		}
		if len(cssSelector.NotSelectors) > 0 &&
			cssSelector.Element == nil &&
			len(cssSelector.ClassNames) == 0 &&
			len(cssSelector.Attrs) == 0 {
			cssSelector.SetElement("*")
		}
		results = append(results, cssSelector)

		skipped := p.skipWhitespace()
		if p.atEnd() {
			return results, nil
		}
		if err := p.expectSeparator(skipped); err != nil {
			return nil, err
		}
	}
}

// expectSeparator consumes the ',' between two alternatives
func (p *selectorParser) expectSeparator(afterWhitespace bool) error {
	ch := p.peek()
	switch {
	case ch == core.CharCOMMA:
		p.index++
		return nil
	case ch == core.CharRPAREN:
		return p.errorAt(p.index, "Unexpected ')' without a matching :not(", ErrSyntax)
	case core.IsCombinator(ch) || afterWhitespace:
		return p.errorAt(p.index, "Combinators are not supported in selectors", ErrSyntax)
	default:
		return p.errorAt(p.index, fmt.Sprintf("Unexpected character '%c'", ch), ErrSyntax)
	}
}

func (p *selectorParser) parseCompound(inNot bool) (*CssSelector, error) {
	cssSelector := NewCssSelector()

	if p.peek() == core.CharSTAR {
		p.index++
		cssSelector.SetElement("*")
	} else if !p.atEnd() && core.IsIdentifierPart(p.peek()) {
		cssSelector.SetElement(p.readIdentifier())
	}

	for !p.atEnd() {
		start := p.index
		switch p.peek() {
		case core.CharPERIOD:
			p.index++
			className := p.readIdentifier()
			if className == "" {
				return nil, p.errorAt(start, "Expected a class name after '.'", ErrSyntax)
			}
			cssSelector.AddClassName(className)
		case core.CharHASH:
			p.index++
			id := p.readIdentifier()
			if id == "" {
				return nil, p.errorAt(start, "Expected an id after '#'", ErrSyntax)
			}
			cssSelector.AddAttribute("id", id)
		case core.CharLBRACKET:
			if err := p.parseAttribute(cssSelector); err != nil {
				return nil, err
			}
		case core.CharCOLON:
			if !p.startsWith(":not(") {
				return nil, p.errorAt(start, "Only :not() pseudo-classes are supported in selectors", ErrSyntax)
			}
			if inNot {
				return nil, p.errorAt(start, "Nested :not is not allowed in selectors", ErrNestedNot)
			}
			notSelector, err := p.parseNot()
			if err != nil {
				return nil, err
			}
			cssSelector.NotSelectors = append(cssSelector.NotSelectors, notSelector)
		default:
			return normalizeWildcard(cssSelector), nil
		}
	}
	return normalizeWildcard(cssSelector), nil
}

// normalizeWildcard drops an explicit '*' from a compound that also requires classes or attributes
func normalizeWildcard(cssSelector *CssSelector) *CssSelector {
	if cssSelector.Element != nil && *cssSelector.Element == "*" &&
		(len(cssSelector.ClassNames) > 0 || len(cssSelector.Attrs) > 0) {
		cssSelector.Element = nil
	}
	return cssSelector
}

func (p *selectorParser) parseNot() (*CssSelector, error) {
	start := p.index
	p.index += len(":not(")
	p.skipWhitespace()

	notSelector, err := p.parseCompound(true)
	if err != nil {
		return nil, err
	}
	skipped := p.skipWhitespace()

	switch ch := p.peek(); {
	case p.atEnd():
		return nil, p.errorAt(start, "Unterminated :not(", ErrSyntax)
	case ch == core.CharCOMMA:
		return nil, p.errorAt(p.index, "Multiple selectors in :not are not supported", ErrMultipleInNot)
	case ch == core.CharRPAREN:
		p.index++
	case core.IsCombinator(ch) || skipped:
		return nil, p.errorAt(p.index, "Combinators are not supported in selectors", ErrSyntax)
	default:
		return nil, p.errorAt(p.index, fmt.Sprintf("Unexpected character '%c' in :not()", ch), ErrSyntax)
	}

	if notSelector.isEmpty() {
		return nil, p.errorAt(start, "Empty :not() selector", ErrSyntax)
	}
	return notSelector, nil
}

// parseAttribute handles [name], [name=value], [name='value'] and [name="value"]
func (p *selectorParser) parseAttribute(cssSelector *CssSelector) error {
	start := p.index
	p.index++

	nameStart := p.index
	for !p.atEnd() && core.IsAttributeNamePart(p.peek()) {
		if p.peek() == core.CharBACKSLASH {
			p.index++
			if p.atEnd() {
				return p.errorAt(start, "Unterminated escape sequence in attribute selector", ErrSyntax)
			}
		}
		p.index++
	}
	rawName := p.input[nameStart:p.index]
	if rawName == "" {
		return p.errorAt(start, "Expected an attribute name after '['", ErrSyntax)
	}
	name, err := UnescapeAttribute(rawName)
	if err != nil {
		return p.errorAt(start, err.Error(), ErrSyntax)
	}

	value := ""
	if p.peek() == core.CharEQ {
		p.index++
		if core.IsQuote(p.peek()) {
			quote := p.peek()
			p.index++
			valueStart := p.index
			for !p.atEnd() && p.peek() != quote {
				p.index++
			}
			if p.atEnd() {
				return p.errorAt(start, "Unterminated quoted value in attribute selector", ErrSyntax)
			}
			value = p.input[valueStart:p.index]
			p.index++
		} else {
			valueStart := p.index
			for !p.atEnd() && p.peek() != core.CharRBRACKET && !core.IsWhitespace(p.peek()) {
				if ch := p.peek(); core.IsQuote(ch) || ch == core.CharEQ {
					return p.errorAt(p.index, fmt.Sprintf("Unexpected character '%c' in attribute value", ch), ErrSyntax)
				}
				p.index++
			}
			value = p.input[valueStart:p.index]
			if value == "" {
				return p.errorAt(start, "Expected an attribute value after '='", ErrSyntax)
			}
		}
	}

	if p.atEnd() {
		return p.errorAt(start, "Unterminated attribute selector", ErrSyntax)
	}
	if p.peek() != core.CharRBRACKET {
		return p.errorAt(p.index, "Expected ']' in attribute selector", ErrSyntax)
	}
	p.index++

	cssSelector.AddAttribute(name, value)
	return nil
}
