package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// The tag columns arrive as Python-style literals: lists of dicts with
// single-quoted strings, None, True/False. encoding/json rejects that
// grammar, so this file implements a small non-evaluating recursive-descent
// parser. It produces a generic tree of []any, map[string]any, string,
// float64, bool, and nil. Anything outside the literal grammar is a parse
// error; callers fail closed on error and emit an empty value.

type literalParser struct {
	input string
	pos   int
}

// parseLiteral parses a complete Python-style literal. Trailing input after
// the literal is an error.
func parseLiteral(input string) (any, error) {
	p := &literalParser{input: input}
	p.skipSpace()
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("literal: trailing input at offset %d", p.pos)
	}
	return v, nil
}

func (p *literalParser) parseValue() (any, error) {
	if p.pos >= len(p.input) {
		return nil, fmt.Errorf("literal: unexpected end of input")
	}
	switch c := p.input[p.pos]; {
	case c == '[':
		return p.parseSeq('[', ']')
	case c == '(':
		// Tuples are treated as lists; the projection code only cares
		// about sequence order.
		return p.parseSeq('(', ')')
	case c == '{':
		return p.parseDict()
	case c == '\'' || c == '"':
		return p.parseString()
	case c == '-' || c == '+' || (c >= '0' && c <= '9') || c == '.':
		return p.parseNumber()
	default:
		return p.parseKeyword()
	}
}

func (p *literalParser) parseSeq(open, close byte) (any, error) {
	p.pos++ // consume open
	out := []any{}
	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return nil, fmt.Errorf("literal: unterminated %q", string(open))
		}
		if p.input[p.pos] == close {
			p.pos++
			return out, nil
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		p.skipSpace()
		if p.pos < len(p.input) && p.input[p.pos] == ',' {
			p.pos++
			continue
		}
		if p.pos < len(p.input) && p.input[p.pos] == close {
			p.pos++
			return out, nil
		}
		return nil, fmt.Errorf("literal: expected ',' or %q at offset %d", string(close), p.pos)
	}
}

func (p *literalParser) parseDict() (any, error) {
	p.pos++ // consume '{'
	out := map[string]any{}
	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return nil, fmt.Errorf("literal: unterminated dict")
		}
		if p.input[p.pos] == '}' {
			p.pos++
			return out, nil
		}
		key, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.pos >= len(p.input) || p.input[p.pos] != ':' {
			return nil, fmt.Errorf("literal: expected ':' at offset %d", p.pos)
		}
		p.pos++
		p.skipSpace()
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		// Only string keys are projectable; other key types parse but
		// their entries are dropped.
		if ks, ok := key.(string); ok {
			out[ks] = val
		}
		p.skipSpace()
		if p.pos < len(p.input) && p.input[p.pos] == ',' {
			p.pos++
			continue
		}
		if p.pos < len(p.input) && p.input[p.pos] == '}' {
			p.pos++
			return out, nil
		}
		return nil, fmt.Errorf("literal: expected ',' or '}' at offset %d", p.pos)
	}
}

func (p *literalParser) parseString() (any, error) {
	quote := p.input[p.pos]
	p.pos++
	var b strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch c {
		case quote:
			p.pos++
			return b.String(), nil
		case '\\':
			p.pos++
			if p.pos >= len(p.input) {
				return nil, fmt.Errorf("literal: unterminated escape")
			}
			switch e := p.input[p.pos]; e {
			case 'x':
				p.pos++
				v, err := p.readHex(2)
				if err != nil {
					return nil, err
				}
				b.WriteByte(byte(v))
			case 'u':
				p.pos++
				v, err := p.readHex(4)
				if err != nil {
					return nil, err
				}
				b.WriteRune(rune(v))
			case 'U':
				p.pos++
				v, err := p.readHex(8)
				if err != nil {
					return nil, err
				}
				if v > utf8.MaxRune {
					return nil, fmt.Errorf("literal: escape out of range at offset %d", p.pos)
				}
				b.WriteRune(rune(v))
			default:
				b.WriteByte(unescape(e))
				p.pos++
			}
		default:
			r, size := utf8.DecodeRuneInString(p.input[p.pos:])
			b.WriteRune(r)
			p.pos += size
		}
	}
	return nil, fmt.Errorf("literal: unterminated string")
}

// readHex consumes exactly n hex digits and returns their value. A short
// or non-hex sequence is an error so the surrounding cell fails closed.
func (p *literalParser) readHex(n int) (uint32, error) {
	if p.pos+n > len(p.input) {
		return 0, fmt.Errorf("literal: truncated escape at offset %d", p.pos)
	}
	v, err := strconv.ParseUint(p.input[p.pos:p.pos+n], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("literal: bad escape at offset %d", p.pos)
	}
	p.pos += n
	return uint32(v), nil
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		// \', \", \\ and any unknown escape keep the escaped byte.
		return c
	}
}

func (p *literalParser) parseNumber() (any, error) {
	start := p.pos
	if c := p.input[p.pos]; c == '-' || c == '+' {
		p.pos++
	}
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' {
			p.pos++
			continue
		}
		if (c == '-' || c == '+') && p.pos > start {
			prev := p.input[p.pos-1]
			if prev == 'e' || prev == 'E' {
				p.pos++
				continue
			}
		}
		break
	}
	text := p.input[start:p.pos]
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("literal: bad number %q", text)
	}
	return f, nil
}

func (p *literalParser) parseKeyword() (any, error) {
	switch {
	case strings.HasPrefix(p.input[p.pos:], "None"):
		p.pos += len("None")
		return nil, nil
	case strings.HasPrefix(p.input[p.pos:], "True"):
		p.pos += len("True")
		return true, nil
	case strings.HasPrefix(p.input[p.pos:], "False"):
		p.pos += len("False")
		return false, nil
	default:
		return nil, fmt.Errorf("literal: unexpected token at offset %d", p.pos)
	}
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// parseList parses input and returns it as a list, or an error when the
// parsed value is not a list.
func parseList(input string) ([]any, error) {
	v, err := parseLiteral(input)
	if err != nil {
		return nil, err
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("literal: not a list")
	}
	return list, nil
}

// getMap returns v as a map when it is one.
func getMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// getString returns the string value at key when present and a string.
func getString(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}
