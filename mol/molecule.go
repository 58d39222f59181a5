package mol

import (
	"fmt"
	"sort"

	"github.com/TuftsBCB/structure"
)

// Atom is a node in a molecular graph.
type Atom struct {
	// Element is a normalized element symbol, or "*" for a wildcard atom.
	Element string
	Charge  int

	// HCount is the total number of hydrogens attached to this atom that
	// are not themselves atoms in the graph.
	HCount   int
	Isotope  int
	Aromatic bool

	// Coordinates, serial number and atom name are only set for atoms that
	// come from a structure.
	structure.Coords
	Serial int
	Name   string
}

// Bond is an edge between the atoms at indices A and B. Order is always an
// integer bond order. Aromatic bonds carry the order of one Kekule form.
type Bond struct {
	A, B     int
	Order    int
	Aromatic bool
}

// Other returns the end of the bond that is not atom i.
func (b Bond) Other(i int) int {
	if b.A == i {
		return b.B
	}
	return b.A
}

// Molecule is a molecular graph. Atoms are referred to by their index in
// Atoms.
type Molecule struct {
	Name  string
	Atoms []Atom
	Bonds []Bond

	// adj maps an atom index to the indices of its bonds. It is built
	// lazily and kept current by AddAtom and AddBond.
	adj [][]int
}

// AddAtom appends an atom and returns its index.
func (m *Molecule) AddAtom(a Atom) int {
	m.Atoms = append(m.Atoms, a)
	if m.adj != nil {
		m.adj = append(m.adj, nil)
	}
	return len(m.Atoms) - 1
}

// AddBond adds a bond between atoms a and b. It is an error to bond an atom
// to itself or to add a second bond between the same pair of atoms.
func (m *Molecule) AddBond(a, b, order int, aromatic bool) error {
	switch {
	case a < 0 || b < 0 || a >= len(m.Atoms) || b >= len(m.Atoms):
		return fmt.Errorf("bond %d-%d: atom index out of range", a, b)
	case a == b:
		return fmt.Errorf("bond %d-%d: atom bonded to itself", a, b)
	case m.BondBetween(a, b) >= 0:
		return fmt.Errorf("bond %d-%d: atoms already bonded", a, b)
	}
	m.Bonds = append(m.Bonds, Bond{A: a, B: b, Order: order, Aromatic: aromatic})
	if m.adj != nil {
		bi := len(m.Bonds) - 1
		m.adj[a] = append(m.adj[a], bi)
		m.adj[b] = append(m.adj[b], bi)
	}
	return nil
}

func (m *Molecule) adjacency() [][]int {
	if m.adj != nil {
		return m.adj
	}
	m.adj = make([][]int, len(m.Atoms))
	for i, b := range m.Bonds {
		m.adj[b.A] = append(m.adj[b.A], i)
		m.adj[b.B] = append(m.adj[b.B], i)
	}
	return m.adj
}

// AtomBonds returns the indices of the bonds of atom i.
func (m *Molecule) AtomBonds(i int) []int {
	return m.adjacency()[i]
}

// Neighbors returns the indices of the atoms bonded to atom i.
func (m *Molecule) Neighbors(i int) []int {
	bonds := m.AtomBonds(i)
	ns := make([]int, len(bonds))
	for k, bi := range bonds {
		ns[k] = m.Bonds[bi].Other(i)
	}
	return ns
}

// Degree returns the number of bonds of atom i.
func (m *Molecule) Degree(i int) int {
	return len(m.AtomBonds(i))
}

// BondBetween returns the index of the bond between atoms a and b, or -1.
func (m *Molecule) BondBetween(a, b int) int {
	if a < 0 || a >= len(m.Atoms) {
		return -1
	}
	for _, bi := range m.AtomBonds(a) {
		if m.Bonds[bi].Other(a) == b {
			return bi
		}
	}
	return -1
}

// Valence returns the sum of the bond orders of atom i, not counting
// hydrogens.
func (m *Molecule) Valence(i int) int {
	v := 0
	for _, bi := range m.AtomBonds(i) {
		v += m.Bonds[bi].Order
	}
	return v
}

// Copy returns a deep copy of the molecule.
func (m *Molecule) Copy() *Molecule {
	return &Molecule{
		Name:  m.Name,
		Atoms: append([]Atom(nil), m.Atoms...),
		Bonds: append([]Bond(nil), m.Bonds...),
	}
}

// HeavyAtoms returns the number of atoms that are not hydrogens.
func (m *Molecule) HeavyAtoms() int {
	n := 0
	for _, a := range m.Atoms {
		if a.Element != "H" && a.Element != "D" {
			n++
		}
	}
	return n
}

// Formula returns the molecular formula in Hill order, counting implicit
// hydrogens.
func (m *Molecule) Formula() string {
	counts := make(map[string]int)
	for _, a := range m.Atoms {
		counts[a.Element]++
		if a.HCount > 0 {
			counts["H"] += a.HCount
		}
	}
	order := make([]string, 0, len(counts))
	if counts["C"] > 0 {
		order = append(order, "C")
		if counts["H"] > 0 {
			order = append(order, "H")
		}
	}
	rest := make([]string, 0, len(counts))
	for sym := range counts {
		if counts["C"] > 0 && (sym == "C" || sym == "H") {
			continue
		}
		rest = append(rest, sym)
	}
	sort.Strings(rest)
	order = append(order, rest...)

	s := ""
	for _, sym := range order {
		s += sym
		if counts[sym] > 1 {
			s += fmt.Sprintf("%d", counts[sym])
		}
	}
	return s
}

func (m *Molecule) String() string {
	return fmt.Sprintf("%s (%d atoms, %d bonds)", m.Name, len(m.Atoms), len(m.Bonds))
}
