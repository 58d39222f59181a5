package mol

import (
	"errors"
	"fmt"
)

// ErrKekulize is returned when an aromatic system has no Kekule structure.
var ErrKekulize = errors.New("cannot kekulize aromatic system")

// Kekulize assigns integer orders to aromatic bonds. An aromatic atom needs a
// double bond when its smallest allowed valence exceeds the sum of its bond
// orders (aromatic bonds counted as single) plus its hydrogen count. Double
// bonds are then placed so that every such atom gets exactly one, which is
// a perfect matching over those atoms using aromatic bonds only.
//
// Aromatic flags are kept. Every aromatic bond gets order 1 or 2.
func (m *Molecule) Kekulize() error {
	needs := make([]bool, len(m.Atoms))
	nneed := 0
	for i, a := range m.Atoms {
		if !a.Aromatic {
			continue
		}
		valence := a.HCount
		for _, bi := range m.AtomBonds(i) {
			b := m.Bonds[bi]
			if b.Aromatic {
				valence++
			} else {
				valence += b.Order
			}
		}
		vs := Valences(a.Element, a.Charge)
		if len(vs) == 0 {
			continue
		}
		target := vs[len(vs)-1]
		for _, v := range vs {
			if v >= valence {
				target = v
				break
			}
		}
		if target-valence >= 1 {
			needs[i] = true
			nneed++
		}
	}
	for bi := range m.Bonds {
		if m.Bonds[bi].Aromatic {
			m.Bonds[bi].Order = 1
		}
	}
	if nneed == 0 {
		return nil
	}
	if nneed%2 == 1 {
		return fmt.Errorf("%w: odd number of atoms need a double bond", ErrKekulize)
	}

	k := &kekulizer{m: m, needs: needs, mate: make([]int, len(m.Atoms))}
	for i := range k.mate {
		k.mate[i] = -1
	}
	if !k.match() {
		return ErrKekulize
	}
	for i, j := range k.mate {
		if j > i {
			m.Bonds[m.BondBetween(i, j)].Order = 2
		}
	}
	return nil
}

type kekulizer struct {
	m     *Molecule
	needs []bool
	mate  []int
}

// candidates returns the unmatched neighbors of atom i that also need a
// double bond and are joined to i by an aromatic bond.
func (k *kekulizer) candidates(i int) []int {
	var cs []int
	for _, bi := range k.m.AtomBonds(i) {
		b := k.m.Bonds[bi]
		j := b.Other(i)
		if b.Aromatic && k.needs[j] && k.mate[j] < 0 {
			cs = append(cs, j)
		}
	}
	return cs
}

// match pairs up all atoms that need a double bond by backtracking. The
// unmatched atom with the fewest options is always tried first, so chains
// and ring fusions resolve without much search.
func (k *kekulizer) match() bool {
	best, bestCands := -1, []int(nil)
	for i, need := range k.needs {
		if !need || k.mate[i] >= 0 {
			continue
		}
		cs := k.candidates(i)
		if len(cs) == 0 {
			return false
		}
		if best < 0 || len(cs) < len(bestCands) {
			best, bestCands = i, cs
		}
	}
	if best < 0 {
		return true
	}
	for _, j := range bestCands {
		k.mate[best], k.mate[j] = j, best
		if k.match() {
			return true
		}
		k.mate[best], k.mate[j] = -1, -1
	}
	return false
}
