package smiles

const eof = 0

// scanner walks the bytes of a SMILES string. SMILES is ASCII, so there is
// no need to decode runes.
type scanner struct {
	input string
	pos   int
	width int
}

func (sc *scanner) next() byte {
	if sc.pos >= len(sc.input) {
		sc.width = 0
		return eof
	}
	c := sc.input[sc.pos]
	sc.width = 1
	sc.pos++
	return c
}

// backup steps back one byte. Can be called only once per call of next.
func (sc *scanner) backup() {
	sc.pos -= sc.width
	sc.width = 0
}

// peek returns but does not consume the next byte in the input.
func (sc *scanner) peek() byte {
	c := sc.next()
	sc.backup()
	return c
}

// accept consumes the next byte if it's equal to `valid`.
func (sc *scanner) accept(valid byte) bool {
	if sc.next() == valid {
		return true
	}
	sc.backup()
	return false
}

// number consumes a run of decimal digits. ok is false if there were none.
func (sc *scanner) number() (n int, ok bool) {
	for isDigit(sc.peek()) {
		n = n*10 + int(sc.next()-'0')
		ok = true
	}
	return n, ok
}

// errorf returns a syntax error at the position of the byte just consumed.
func (sc *scanner) errorf(format string, values ...interface{}) *SyntaxError {
	pos := sc.pos - 1
	if pos < 0 {
		pos = 0
	}
	return errorAt(sc.input, pos, format, values...)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}
