package pdf

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
)

// Content stream scrubbing. pdfcpu parses objects but has no public lexer
// for page operators, so the few operators that position and show text are
// interpreted here.

var errUnterminated = errors.New("unterminated token in content stream")

type tokKind int

const (
	tokEOF tokKind = iota
	tokNumber
	tokString
	tokName
	tokArray
	tokDict
	tokArrayClose
	tokDictClose
	tokOperator
	tokOther
)

type token struct {
	kind       tokKind
	start, end int
}

type lexer struct {
	b   []byte
	pos int
}

func isWhite(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelim(c byte) bool { return strings.IndexByte("()<>[]{}/%", c) >= 0 }

func (l *lexer) skipSpace() {
	for l.pos < len(l.b) {
		c := l.b[l.pos]
		switch {
		case isWhite(c):
			l.pos++
		case c == '%':
			for l.pos < len(l.b) && l.b[l.pos] != '\n' && l.b[l.pos] != '\r' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) peek(off int) byte {
	if l.pos+off < len(l.b) {
		return l.b[l.pos+off]
	}
	return 0
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.b) {
		return token{kind: tokEOF, start: l.pos, end: l.pos}, nil
	}
	start := l.pos
	switch c := l.b[l.pos]; {
	case c == '(':
		if err := l.skipString(); err != nil {
			return token{}, err
		}
		return token{kind: tokString, start: start, end: l.pos}, nil
	case c == '<' && l.peek(1) == '<':
		l.pos += 2
		if err := l.skipUntil(tokDictClose); err != nil {
			return token{}, err
		}
		return token{kind: tokDict, start: start, end: l.pos}, nil
	case c == '<':
		i := bytes.IndexByte(l.b[l.pos:], '>')
		if i < 0 {
			return token{}, errUnterminated
		}
		l.pos += i + 1
		return token{kind: tokString, start: start, end: l.pos}, nil
	case c == '>' && l.peek(1) == '>':
		l.pos += 2
		return token{kind: tokDictClose, start: start, end: l.pos}, nil
	case c == '[':
		l.pos++
		if err := l.skipUntil(tokArrayClose); err != nil {
			return token{}, err
		}
		return token{kind: tokArray, start: start, end: l.pos}, nil
	case c == ']':
		l.pos++
		return token{kind: tokArrayClose, start: start, end: l.pos}, nil
	case c == '/':
		l.pos++
		l.skipRegular()
		return token{kind: tokName, start: start, end: l.pos}, nil
	}

	l.skipRegular()
	if l.pos == start {
		// stray delimiter
		l.pos++
		return token{kind: tokOther, start: start, end: l.pos}, nil
	}
	if c := l.b[start]; c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9') {
		return token{kind: tokNumber, start: start, end: l.pos}, nil
	}
	return token{kind: tokOperator, start: start, end: l.pos}, nil
}

func (l *lexer) skipRegular() {
	for l.pos < len(l.b) && !isWhite(l.b[l.pos]) && !isDelim(l.b[l.pos]) {
		l.pos++
	}
}

// skipString consumes a literal string, honoring escapes and balanced
// parentheses.
func (l *lexer) skipString() error {
	depth := 0
	for l.pos < len(l.b) {
		switch l.b[l.pos] {
		case '\\':
			l.pos += 2
			continue
		case '(':
			depth++
		case ')':
			depth--
		}
		l.pos++
		if depth == 0 {
			return nil
		}
	}
	return errUnterminated
}

func (l *lexer) skipUntil(closer tokKind) error {
	for {
		t, err := l.next()
		if err != nil {
			return err
		}
		switch t.kind {
		case closer:
			return nil
		case tokEOF:
			return errUnterminated
		}
	}
}

// skipInlineImage moves past the binary data following an ID operator.
func (l *lexer) skipInlineImage() error {
	if l.pos < len(l.b) && isWhite(l.b[l.pos]) {
		l.pos++
	}
	for i := l.pos; i+1 < len(l.b); i++ {
		if l.b[i] != 'E' || l.b[i+1] != 'I' {
			continue
		}
		if i > 0 && !isWhite(l.b[i-1]) {
			continue
		}
		if i+2 < len(l.b) && !isWhite(l.b[i+2]) && !isDelim(l.b[i+2]) {
			continue
		}
		l.pos = i + 2
		return nil
	}
	return errUnterminated
}

// matrix is a PDF transformation matrix [a b c d e f].
type matrix [6]float64

var identity = matrix{1, 0, 0, 1, 0, 0}

func translate(tx, ty float64) matrix { return matrix{1, 0, 0, 1, tx, ty} }

// mul returns m × n.
func (m matrix) mul(n matrix) matrix {
	return matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

type edit struct {
	start, end int
	repl       string
}

// scrubText blanks the string operand of every text-showing operator whose
// text origin, in default user space, lies inside one of areas. It returns
// the rewritten stream and the number of operators blanked. Text drawn by
// form XObjects is not reached.
func scrubText(src []byte, areas []overlay) ([]byte, int, error) {
	var (
		l        = &lexer{b: src}
		operands []token
		ctm      = identity
		saved    []matrix
		tm, tlm  = identity, identity
		leading  float64
		edits    []edit
	)

	hidden := func() bool {
		o := tm.mul(ctm)
		x, y := o[4], o[5]
		for _, a := range areas {
			if x >= a.llx && x <= a.urx && y >= a.lly && y <= a.ury {
				return true
			}
		}
		return false
	}
	nums := func(n int) ([]float64, bool) {
		if len(operands) < n {
			return nil, false
		}
		out := make([]float64, n)
		for i, t := range operands[len(operands)-n:] {
			if t.kind != tokNumber {
				return nil, false
			}
			v, err := strconv.ParseFloat(string(src[t.start:t.end]), 64)
			if err != nil {
				return nil, false
			}
			out[i] = v
		}
		return out, true
	}
	blank := func(repl string) {
		if len(operands) == 0 {
			return
		}
		t := operands[len(operands)-1]
		if t.kind != tokString && t.kind != tokArray {
			return
		}
		edits = append(edits, edit{start: t.start, end: t.end, repl: repl})
	}
	nextLine := func(tx, ty float64) {
		tlm = translate(tx, ty).mul(tlm)
		tm = tlm
	}

	for {
		t, err := l.next()
		if err != nil {
			return nil, 0, err
		}
		if t.kind == tokEOF {
			break
		}
		if t.kind != tokOperator {
			operands = append(operands, t)
			continue
		}
		switch string(src[t.start:t.end]) {
		case "q":
			saved = append(saved, ctm)
		case "Q":
			if n := len(saved); n > 0 {
				ctm, saved = saved[n-1], saved[:n-1]
			}
		case "cm":
			if v, ok := nums(6); ok {
				ctm = matrix{v[0], v[1], v[2], v[3], v[4], v[5]}.mul(ctm)
			}
		case "BT":
			tm, tlm = identity, identity
		case "Td":
			if v, ok := nums(2); ok {
				nextLine(v[0], v[1])
			}
		case "TD":
			if v, ok := nums(2); ok {
				leading = -v[1]
				nextLine(v[0], v[1])
			}
		case "Tm":
			if v, ok := nums(6); ok {
				tlm = matrix{v[0], v[1], v[2], v[3], v[4], v[5]}
				tm = tlm
			}
		case "TL":
			if v, ok := nums(1); ok {
				leading = v[0]
			}
		case "T*":
			nextLine(0, -leading)
		case "Tj":
			if hidden() {
				blank("()")
			}
		case "TJ":
			if hidden() {
				blank("[]")
			}
		case "'", "\"":
			nextLine(0, -leading)
			if hidden() {
				blank("()")
			}
		case "ID":
			if err := l.skipInlineImage(); err != nil {
				return nil, 0, err
			}
		}
		operands = operands[:0]
	}

	if len(edits) == 0 {
		return src, 0, nil
	}
	var out bytes.Buffer
	last := 0
	for _, e := range edits {
		out.Write(src[last:e.start])
		out.WriteString(e.repl)
		last = e.end
	}
	out.Write(src[last:])
	return out.Bytes(), len(edits), nil
}
