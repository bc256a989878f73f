package decl

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
)

// ParseRequests parses the surface grammar of a deriving annotation into
// an ordered list of requests. The grammar is:
//
//	requests := request ("," request)*
//	request  := name | name "{" option ("," option)* "}"
//	option   := key "=" value
//	value    := string | int | bool | bare-expression
//
// For example:
//
//	show, ord { affix = "compare" }, eq { strict = true }
//
// Unquoted values that are not integers or booleans are kept verbatim as
// expression strings; their interpretation belongs to the plugin.
func ParseRequests(src string) ([]*Request, error) {
	p := newRequestParser(src)
	var reqs []*Request
	for {
		req, err := p.request()
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
		tok := p.next()
		switch tok {
		case ',':
			continue
		case scanner.EOF:
			return reqs, nil
		default:
			return nil, p.errorf("expected ',' or end of annotation, got %q", p.text(tok))
		}
	}
}

type requestParser struct {
	sc     scanner.Scanner
	pushed rune
	hasTok bool
	err    error
}

func newRequestParser(src string) *requestParser {
	p := &requestParser{}
	p.sc.Init(strings.NewReader(src))
	p.sc.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanStrings
	p.sc.Error = func(_ *scanner.Scanner, msg string) {
		if p.err == nil {
			p.err = fmt.Errorf("deriving annotation: %s", msg)
		}
	}
	return p
}

func (p *requestParser) next() rune {
	if p.hasTok {
		p.hasTok = false
		return p.pushed
	}
	return p.sc.Scan()
}

// push returns a token to the stream. At most one token is buffered,
// and TokenText still refers to it since nothing is scanned in between.
func (p *requestParser) push(tok rune) {
	p.pushed = tok
	p.hasTok = true
}

func (p *requestParser) text(tok rune) string {
	if tok == scanner.EOF {
		return "EOF"
	}
	return p.sc.TokenText()
}

func (p *requestParser) errorf(format string, args ...any) error {
	if p.err != nil {
		return p.err
	}
	pos := p.sc.Pos()
	return fmt.Errorf("deriving annotation at offset %d: %s", pos.Offset, fmt.Sprintf(format, args...))
}

// request parses one plugin invocation.
func (p *requestParser) request() (*Request, error) {
	tok := p.next()
	if tok != scanner.Ident {
		return nil, p.errorf("expected plugin name, got %q", p.text(tok))
	}
	req := &Request{Plugin: p.sc.TokenText()}
	if tok := p.next(); tok != '{' {
		p.push(tok)
		return req, nil
	}
	for {
		kv, err := p.option()
		if err != nil {
			return nil, err
		}
		req.Options = append(req.Options, kv)
		switch tok := p.next(); tok {
		case ',':
			continue
		case '}':
			return req, nil
		default:
			return nil, p.errorf("expected ',' or '}' in options, got %q", p.text(tok))
		}
	}
}

// option parses one "key = value" pair.
func (p *requestParser) option() (*KV, error) {
	tok := p.next()
	if tok != scanner.Ident {
		return nil, p.errorf("expected option key, got %q", p.text(tok))
	}
	key := p.sc.TokenText()
	if tok = p.next(); tok != '=' {
		return nil, p.errorf("expected '=' after option key %q, got %q", key, p.text(tok))
	}
	val, err := p.value()
	if err != nil {
		return nil, err
	}
	return &KV{Key: key, Value: val}, nil
}

// value parses a string, integer, boolean, or bare expression value.
func (p *requestParser) value() (any, error) {
	switch tok := p.next(); tok {
	case scanner.String:
		return strconv.Unquote(p.sc.TokenText())
	case scanner.Int:
		return strconv.Atoi(p.sc.TokenText())
	case '-':
		if tok = p.next(); tok != scanner.Int {
			return nil, p.errorf("expected integer after '-', got %q", p.text(tok))
		}
		n, err := strconv.Atoi(p.sc.TokenText())
		if err != nil {
			return nil, err
		}
		return -n, nil
	case scanner.Ident:
		text := p.sc.TokenText()
		switch text {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		// Bare expressions may be dot-qualified (e.g. Pervasives.compare).
		var b strings.Builder
		b.WriteString(text)
		for p.sc.Peek() == '.' {
			p.next()
			if tok = p.next(); tok != scanner.Ident {
				return nil, p.errorf("expected identifier after '.', got %q", p.text(tok))
			}
			b.WriteByte('.')
			b.WriteString(p.sc.TokenText())
		}
		return b.String(), nil
	case scanner.EOF:
		return nil, p.errorf("unexpected end of annotation in option value")
	default:
		return nil, p.errorf("unexpected option value %q", p.text(tok))
	}
}
