package pdb

import (
	"fmt"
	"strings"

	"github.com/TuftsBCB/seq"
)

// Predicate reports whether an atom belongs to a selection.
type Predicate func(a *Atom) bool

// Protein selects atoms whose residue is an amino acid.
func Protein(a *Atom) bool {
	return IsAmino(a.ResName)
}

// Water selects atoms of water molecules.
func Water(a *Atom) bool {
	return IsWater(a.ResName)
}

// Hetero selects atoms from HETATM records.
func Hetero(a *Atom) bool {
	return a.Het
}

// ResName selects atoms with the given residue name.
func ResName(name string) Predicate {
	return func(a *Atom) bool {
		return a.ResName == name
	}
}

// Chain selects atoms with the given chain identifier.
func Chain(ident byte) Predicate {
	return func(a *Atom) bool {
		return a.ChainID == ident
	}
}

// Not negates a predicate.
func Not(pred Predicate) Predicate {
	return func(a *Atom) bool {
		return !pred(a)
	}
}

// And is satisfied when all of the given predicates are.
func And(preds ...Predicate) Predicate {
	return func(a *Atom) bool {
		for _, pred := range preds {
			if !pred(a) {
				return false
			}
		}
		return true
	}
}

// Ligand selects everything that is neither protein nor water. This
// includes ions, cofactors and nucleic acids.
var Ligand = And(Not(Protein), Not(Water))

// Selection is an ordered subset of the atoms of an entry.
type Selection struct {
	Entry *Entry
	Atoms []Atom
}

// Select returns the atoms of the entry satisfying pred, in file order.
func (e *Entry) Select(pred Predicate) *Selection {
	sel := &Selection{Entry: e, Atoms: make([]Atom, 0)}
	for i := range e.Atoms {
		if pred(&e.Atoms[i]) {
			sel.Atoms = append(sel.Atoms, e.Atoms[i])
		}
	}
	return sel
}

// Select refines a selection.
func (s *Selection) Select(pred Predicate) *Selection {
	sub := &Selection{Entry: s.Entry, Atoms: make([]Atom, 0)}
	for i := range s.Atoms {
		if pred(&s.Atoms[i]) {
			sub.Atoms = append(sub.Atoms, s.Atoms[i])
		}
	}
	return sub
}

// Len returns the number of selected atoms.
func (s *Selection) Len() int {
	return len(s.Atoms)
}

// Empty returns true if no atoms are selected.
func (s *Selection) Empty() bool {
	return len(s.Atoms) == 0
}

// ResNames returns the distinct residue names in the selection in order of
// first appearance.
func (s *Selection) ResNames() []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, a := range s.Atoms {
		if !seen[a.ResName] {
			seen[a.ResName] = true
			names = append(names, a.ResName)
		}
	}
	return names
}

// Conect returns the CONECT bonds of the entry between selected atoms,
// keyed by serial number.
func (s *Selection) Conect() map[int][]int {
	in := make(map[int]bool, len(s.Atoms))
	for _, a := range s.Atoms {
		in[a.Serial] = true
	}
	conect := make(map[int][]int)
	if s.Entry == nil {
		return conect
	}
	for _, a := range s.Atoms {
		for _, other := range s.Entry.Conect[a.Serial] {
			if in[other] {
				conect[a.Serial] = append(conect[a.Serial], other)
			}
		}
	}
	return conect
}

// Sequences returns the amino acid sequence of each chain in the selection,
// in order of first appearance. Residues are delimited by a change of
// residue number or insertion code.
//
// Each sequence is named "<id>:<chain>", e.g., "1abc:A", with '_' standing
// in for a blank chain identifier. When the entry has no id code, the file
// name up to its first '.' is used instead.
func (s *Selection) Sequences() []seq.Sequence {
	seqs := make([]seq.Sequence, 0, 2)
	index := make(map[byte]int)
	type resKey struct {
		num   int
		icode byte
	}
	last := make(map[byte]resKey)
	for _, a := range s.Atoms {
		i, ok := index[a.ChainID]
		if !ok {
			i = len(seqs)
			index[a.ChainID] = i
			seqs = append(seqs, seq.Sequence{Name: s.chainName(a.ChainID)})
		}
		key := resKey{a.ResSeq, a.ICode}
		if prev, ok := last[a.ChainID]; ok && prev == key {
			continue
		}
		last[a.ChainID] = key
		seqs[i].Residues = append(seqs[i].Residues, AminoAbbrev(a.ResName))
	}
	return seqs
}

func (s *Selection) chainName(ident byte) string {
	name := ""
	if s.Entry != nil {
		name = s.Entry.IdString()
		if name == "" {
			name = s.Entry.Name()
			if i := strings.IndexByte(name, '.'); i >= 0 {
				name = name[:i]
			}
		}
	}
	if ident == 0 || ident == ' ' {
		ident = '_'
	}
	return fmt.Sprintf("%s:%c", name, ident)
}
