package smiles

import (
	"fmt"
	"strings"

	"github.com/TuftsBCB/ligsplit/mol"
)

// SyntaxError describes a malformed SMILES string. Pos is the byte offset of
// the problem.
type SyntaxError struct {
	SMILES string
	Pos    int
	Msg    string
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("smiles: %s at position %d in %q", e.Msg, e.Pos, e.SMILES)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func errorAt(s string, pos int, format string, values ...interface{}) *SyntaxError {
	return &SyntaxError{SMILES: s, Pos: pos, Msg: fmt.Sprintf(format, values...)}
}

// Organic subset atoms may be written without brackets. Their hydrogen
// count is implicit.
var organic = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true,
	"F": true, "Cl": true, "Br": true, "I": true,
}

// Elements that may be written in lower case to mark them aromatic.
var aromaticOrganic = map[string]bool{
	"b": true, "c": true, "n": true, "o": true, "p": true, "s": true,
}

var aromaticBracket = map[string]bool{
	"b": true, "c": true, "n": true, "o": true, "p": true, "s": true,
	"se": true, "as": true, "te": true,
}

var chiralClasses = []string{"TH", "AL", "SP", "TB", "OH"}

// ringBond is a ring closure digit that has been opened but not closed.
type ringBond struct {
	atom int
	bond byte
	pos  int
}

type parser struct {
	scanner
	m *mol.Molecule

	// atomPos is the input offset of each atom. implicit marks organic
	// subset atoms whose hydrogen count is computed after parsing.
	atomPos  []int
	implicit []bool

	prev     int
	bond     byte
	bondPos  int
	branches []int
	branchAt []int
	rings    map[int]ringBond
}

// Parse reads a SMILES string into a molecule.
//
// Explicit hydrogen atoms bonded to a single heavy atom are folded into that
// atom's hydrogen count. Aromatic bonds are kekulized, so every bond has an
// integer order, while atoms and bonds keep their aromatic flags. Chirality
// and double bond stereo are read but not recorded.
func Parse(s string) (*mol.Molecule, error) {
	p := &parser{
		scanner: scanner{input: s},
		m:       &mol.Molecule{},
		prev:    -1,
		rings:   make(map[int]ringBond),
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	if len(p.m.Atoms) == 0 {
		return nil, errorAt(s, 0, "no atoms")
	}
	p.foldHydrogens()

	// Aromatic bonds outside of rings, like the bond joining the rings of
	// biphenyl, are single.
	inRing := p.m.RingBonds()
	for i := range p.m.Bonds {
		if !inRing[i] {
			p.m.Bonds[i].Aromatic = false
		}
	}
	if err := p.m.Kekulize(); err != nil {
		pos := len(s)
		for i, a := range p.m.Atoms {
			if a.Aromatic {
				pos = p.atomPos[i]
				break
			}
		}
		se := errorAt(s, pos, "%s", err)
		se.Err = err
		return nil, se
	}
	for i := range p.m.Atoms {
		if p.implicit[i] {
			a := &p.m.Atoms[i]
			a.HCount += mol.ImplicitHydrogens(a.Element, a.Charge, p.m.Valence(i)+a.HCount)
		}
	}
	return p.m, nil
}

func (p *parser) parse() error {
	for {
		c := p.next()
		switch {
		case c == eof:
			return p.finish()
		case isUpper(c) || c == '*':
			if err := p.organicAtom(c, false); err != nil {
				return err
			}
		case isLower(c):
			if err := p.organicAtom(c, true); err != nil {
				return err
			}
		case c == '[':
			if err := p.bracketAtom(); err != nil {
				return err
			}
		case isBondSymbol(c):
			if p.prev < 0 {
				return p.errorf("bond '%c' without a preceding atom", c)
			}
			if p.bond != 0 {
				return p.errorf("two bonds in a row")
			}
			p.bond, p.bondPos = c, p.pos-1
		case c == '(':
			if p.prev < 0 {
				return p.errorf("branch without a preceding atom")
			}
			p.branches = append(p.branches, p.prev)
			p.branchAt = append(p.branchAt, p.pos-1)
		case c == ')':
			if len(p.branches) == 0 {
				return p.errorf("unbalanced ')'")
			}
			if p.bond != 0 {
				return p.errorf("bond at the end of a branch")
			}
			p.prev = p.branches[len(p.branches)-1]
			p.branches = p.branches[:len(p.branches)-1]
			p.branchAt = p.branchAt[:len(p.branchAt)-1]
		case isDigit(c) || c == '%':
			if err := p.ringClosure(c); err != nil {
				return err
			}
		case c == '.':
			if p.bond != 0 {
				return p.errorf("bond before '.'")
			}
			if len(p.branches) > 0 {
				return p.errorf("'.' inside a branch")
			}
			p.prev = -1
		default:
			return p.errorf("unexpected character '%c'", c)
		}
	}
}

func (p *parser) finish() error {
	if p.bond != 0 {
		return errorAt(p.input, p.bondPos, "bond '%c' at the end of input", p.bond)
	}
	if len(p.branches) > 0 {
		return errorAt(p.input, p.branchAt[len(p.branchAt)-1], "unclosed branch")
	}
	if len(p.rings) > 0 {
		first := -1
		for _, rb := range p.rings {
			if first < 0 || rb.pos < first {
				first = rb.pos
			}
		}
		return errorAt(p.input, first, "unclosed ring")
	}
	return nil
}

func (p *parser) organicAtom(c byte, aromatic bool) error {
	start := p.pos - 1
	sym := string(c)
	switch {
	case c == '*':
	case aromatic:
		if !aromaticOrganic[sym] {
			return p.errorf("unknown aromatic atom '%c'", c)
		}
		sym = mol.NormalizeSymbol(sym)
	case c == 'C' && p.accept('l'):
		sym = "Cl"
	case c == 'B' && p.accept('r'):
		sym = "Br"
	case !organic[sym]:
		return p.errorf("element '%c' must be in brackets", c)
	}
	return p.addAtom(mol.Atom{Element: sym, Aromatic: aromatic}, start, c != '*')
}

func (p *parser) bracketAtom() error {
	start := p.pos - 1
	var a mol.Atom
	if n, ok := p.number(); ok {
		a.Isotope = n
	}

	c := p.next()
	switch {
	case c == '*':
		a.Element = "*"
	case isUpper(c):
		a.Element = string(c)
		if l := p.peek(); isLower(l) && mol.IsElement(string([]byte{c, l})) {
			p.next()
			a.Element = string([]byte{c, l})
		}
		if !mol.IsElement(a.Element) {
			return p.errorf("unknown element %q", a.Element)
		}
	case isLower(c):
		sym := string(c)
		if l := p.peek(); isLower(l) && aromaticBracket[string([]byte{c, l})] {
			p.next()
			sym = string([]byte{c, l})
		}
		if !aromaticBracket[sym] {
			return p.errorf("unknown aromatic element %q", sym)
		}
		a.Element = mol.NormalizeSymbol(sym)
		a.Aromatic = true
	default:
		return p.errorf("expected an element symbol")
	}

	// Chirality is skipped: '@', '@@' or a named class like '@TH1'.
	if p.accept('@') && !p.accept('@') {
		for _, class := range chiralClasses {
			if strings.HasPrefix(p.input[p.pos:], class) {
				p.pos += len(class)
				p.number()
				break
			}
		}
	}

	if p.accept('H') {
		a.HCount = 1
		if n, ok := p.number(); ok {
			a.HCount = n
		}
	}

	if sign := p.peek(); sign == '+' || sign == '-' {
		p.next()
		unit := 1
		if sign == '-' {
			unit = -1
		}
		if n, ok := p.number(); ok {
			a.Charge = unit * n
		} else {
			a.Charge = unit
			for p.accept(sign) {
				a.Charge += unit
			}
		}
	}

	if p.accept(':') {
		if _, ok := p.number(); !ok {
			return p.errorf("expected an atom class")
		}
	}
	if !p.accept(']') {
		p.next()
		return p.errorf("expected ']'")
	}
	return p.addAtom(a, start, false)
}

func (p *parser) addAtom(a mol.Atom, pos int, implicit bool) error {
	i := p.m.AddAtom(a)
	p.atomPos = append(p.atomPos, pos)
	p.implicit = append(p.implicit, implicit)
	if p.prev >= 0 {
		if err := p.addBond(p.prev, i, p.bond, pos); err != nil {
			return err
		}
	}
	p.prev, p.bond = i, 0
	return nil
}

func (p *parser) ringClosure(c byte) error {
	start := p.pos - 1
	if p.prev < 0 {
		return p.errorf("ring closure without a preceding atom")
	}
	num := int(c - '0')
	if c == '%' {
		d1, d2 := p.next(), p.next()
		if !isDigit(d1) || !isDigit(d2) {
			return errorAt(p.input, start, "expected two digits after '%%'")
		}
		num = int(d1-'0')*10 + int(d2-'0')
	}

	open, ok := p.rings[num]
	if !ok {
		p.rings[num] = ringBond{atom: p.prev, bond: p.bond, pos: start}
		p.bond = 0
		return nil
	}
	delete(p.rings, num)

	bond := p.bond
	switch {
	case bond == 0:
		bond = open.bond
	case open.bond != 0 && open.bond != bond && !isStereoBond(bond) && !isStereoBond(open.bond):
		return errorAt(p.input, start, "conflicting ring bonds for ring %d", num)
	}
	p.bond = 0
	if open.atom == p.prev {
		return errorAt(p.input, start, "ring %d closes on itself", num)
	}
	return p.addBond(open.atom, p.prev, bond, start)
}

func (p *parser) addBond(a, b int, sym byte, pos int) error {
	order, aromatic := 1, false
	switch sym {
	case '=':
		order = 2
	case '#':
		order = 3
	case '$':
		order = 4
	case ':':
		aromatic = true
	case 0:
		aromatic = p.m.Atoms[a].Aromatic && p.m.Atoms[b].Aromatic
	}
	if err := p.m.AddBond(a, b, order, aromatic); err != nil {
		se := errorAt(p.input, pos, "%s", err)
		se.Err = err
		return se
	}
	return nil
}

// foldHydrogens removes plain hydrogen atoms bonded to exactly one heavy
// atom, adding them to that atom's hydrogen count instead.
func (p *parser) foldHydrogens() {
	m := p.m
	drop := make([]bool, len(m.Atoms))
	folding := false
	for i, a := range m.Atoms {
		if a.Element != "H" || a.Isotope != 0 || a.Charge != 0 || a.HCount != 0 {
			continue
		}
		if m.Degree(i) != 1 {
			continue
		}
		bi := m.AtomBonds(i)[0]
		other := m.Bonds[bi].Other(i)
		if m.Atoms[other].Element == "H" || m.Bonds[bi].Order != 1 {
			continue
		}
		drop[i] = true
		folding = true
	}
	if !folding {
		return
	}

	folded := &mol.Molecule{Name: m.Name}
	index := make([]int, len(m.Atoms))
	var pos []int
	var implicit []bool
	for i, a := range m.Atoms {
		if drop[i] {
			index[i] = -1
			continue
		}
		index[i] = folded.AddAtom(a)
		pos = append(pos, p.atomPos[i])
		implicit = append(implicit, p.implicit[i])
	}
	for _, b := range m.Bonds {
		switch {
		case drop[b.A]:
			folded.Atoms[index[b.B]].HCount++
		case drop[b.B]:
			folded.Atoms[index[b.A]].HCount++
		default:
			folded.AddBond(index[b.A], index[b.B], b.Order, b.Aromatic)
		}
	}
	p.m, p.atomPos, p.implicit = folded, pos, implicit
}

func isBondSymbol(c byte) bool {
	switch c {
	case '-', '=', '#', '$', ':', '/', '\\':
		return true
	}
	return false
}

func isStereoBond(c byte) bool {
	return c == '/' || c == '\\'
}
