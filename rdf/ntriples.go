package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// SyntaxError reports a malformed N-Triples line.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("n-triples line %d: %s", e.Line, e.Msg)
}

// DecodeNTriples reads N-Triples from r into w and returns the number of
// triples read.
func DecodeNTriples(r io.Reader, w Writer) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	n, line := 0, 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		t, err := parseLine(text, line)
		if err != nil {
			return n, err
		}
		w.Add(t)
		n++
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("read n-triples: %w", err)
	}
	return n, nil
}

// EncodeNTriples writes triples to w, one per line.
func EncodeNTriples(w io.Writer, triples []Triple) error {
	bw := bufio.NewWriter(w)
	for _, t := range triples {
		if _, err := bw.WriteString(t.String() + "\n"); err != nil {
			return fmt.Errorf("write n-triples: %w", err)
		}
	}
	return bw.Flush()
}

type lineParser struct {
	s    string
	i    int
	line int
}

func parseLine(s string, line int) (Triple, error) {
	p := &lineParser{s: s, line: line}
	subj, err := p.term()
	if err != nil {
		return Triple{}, err
	}
	if !subj.IsResource() {
		return Triple{}, p.errorf("subject must be an IRI or blank node")
	}
	pred, err := p.term()
	if err != nil {
		return Triple{}, err
	}
	if !pred.IsIRI() {
		return Triple{}, p.errorf("predicate must be an IRI")
	}
	obj, err := p.term()
	if err != nil {
		return Triple{}, err
	}
	p.skipSpace()
	if p.i >= len(p.s) || p.s[p.i] != '.' {
		return Triple{}, p.errorf("expected '.'")
	}
	p.i++
	p.skipSpace()
	if p.i < len(p.s) && p.s[p.i] != '#' {
		return Triple{}, p.errorf("unexpected trailing input")
	}
	return Triple{S: subj, P: pred, O: obj}, nil
}

func (p *lineParser) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *lineParser) skipSpace() {
	for p.i < len(p.s) && (p.s[p.i] == ' ' || p.s[p.i] == '\t') {
		p.i++
	}
}

func (p *lineParser) term() (Term, error) {
	p.skipSpace()
	if p.i >= len(p.s) {
		return Term{}, p.errorf("unexpected end of line")
	}
	switch p.s[p.i] {
	case '<':
		v, err := p.iri()
		return IRI(v), err
	case '_':
		if !strings.HasPrefix(p.s[p.i:], "_:") {
			return Term{}, p.errorf("bad blank node")
		}
		p.i += 2
		start := p.i
		for p.i < len(p.s) && (isAlnum(p.s[p.i]) || strings.IndexByte("_-.", p.s[p.i]) >= 0) {
			p.i++
		}
		// A label may contain '.' but not end with it.
		for p.i > start && p.s[p.i-1] == '.' {
			p.i--
		}
		if p.i == start {
			return Term{}, p.errorf("empty blank node label")
		}
		return Blank(p.s[start:p.i]), nil
	case '"':
		return p.literal()
	default:
		return Term{}, p.errorf("unexpected character %q", p.s[p.i])
	}
}

func (p *lineParser) iri() (string, error) {
	p.i++ // '<'
	end := strings.IndexByte(p.s[p.i:], '>')
	if end < 0 {
		return "", p.errorf("unterminated IRI")
	}
	raw := p.s[p.i : p.i+end]
	p.i += end + 1
	if strings.ContainsAny(raw, " <\"{}|^`") {
		return "", p.errorf("invalid character in IRI %q", raw)
	}
	if strings.Contains(raw, `\u`) || strings.Contains(raw, `\U`) {
		return unescape(raw, p)
	}
	return raw, nil
}

func (p *lineParser) literal() (Term, error) {
	p.i++ // opening quote
	start := p.i
	for p.i < len(p.s) && p.s[p.i] != '"' {
		if p.s[p.i] == '\\' {
			p.i++
		}
		p.i++
	}
	if p.i >= len(p.s) {
		return Term{}, p.errorf("unterminated literal")
	}
	lex, err := unescape(p.s[start:p.i], p)
	if err != nil {
		return Term{}, err
	}
	p.i++ // closing quote

	switch {
	case strings.HasPrefix(p.s[p.i:], "^^"):
		p.i += 2
		if p.i >= len(p.s) || p.s[p.i] != '<' {
			return Term{}, p.errorf("expected datatype IRI")
		}
		dt, err := p.iri()
		if err != nil {
			return Term{}, err
		}
		return Literal(lex, dt), nil
	case p.i < len(p.s) && p.s[p.i] == '@':
		p.i++
		start := p.i
		for p.i < len(p.s) && (isAlnum(p.s[p.i]) || p.s[p.i] == '-') {
			p.i++
		}
		if p.i == start {
			return Term{}, p.errorf("empty language tag")
		}
		return LangLiteral(lex, p.s[start:p.i]), nil
	default:
		return Literal(lex, ""), nil
	}
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func unescape(s string, p *lineParser) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", p.errorf("dangling escape")
		}
		switch s[i] {
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case '"', '\'', '\\':
			b.WriteByte(s[i])
		case 'u', 'U':
			width := 4
			if s[i] == 'U' {
				width = 8
			}
			if i+1+width > len(s) {
				return "", p.errorf("short unicode escape")
			}
			code, err := strconv.ParseUint(s[i+1:i+1+width], 16, 32)
			if err != nil || !utf8.ValidRune(rune(code)) {
				return "", p.errorf("bad unicode escape")
			}
			b.WriteRune(rune(code))
			i += width
		default:
			return "", p.errorf("unknown escape \\%c", s[i])
		}
	}
	return b.String(), nil
}
