package mol

import (
	"github.com/TuftsBCB/ligsplit/pdb"
)

const (
	// Atoms closer than this are never bonded.
	minBondDist = 0.16

	// Added to the sum of covalent radii when deciding if two atoms are
	// bonded.
	bondTolerance = 0.45
)

// FromPDB builds a molecule from structure atoms. Hydrogens are dropped,
// and atoms with a blank or unknown element become "*" wildcards.
// Bonds come from CONECT records between the given atoms and from
// proximity: two atoms are bonded when their distance d satisfies
// 0.16 < d <= rcov(a) + rcov(b) + 0.45. Every bond is single and every
// formal charge is zero; the structure carries no bond order information.
func FromPDB(name string, atoms []pdb.Atom, conect map[int][]int) *Molecule {
	m := &Molecule{Name: name}
	bySerial := make(map[int]int, len(atoms))
	for _, a := range atoms {
		if a.IsHydrogen() {
			continue
		}
		elem := NormalizeSymbol(a.Element)
		if !IsElement(elem) {
			elem = "*"
		}
		i := m.AddAtom(Atom{
			Element: elem,
			Coords:  a.Coords,
			Serial:  a.Serial,
			Name:    a.Name,
		})
		if a.Serial != 0 {
			bySerial[a.Serial] = i
		}
	}

	bonded := make(map[[2]int]bool)
	bond := func(i, j int) {
		if i > j {
			i, j = j, i
		}
		if i == j || bonded[[2]int{i, j}] {
			return
		}
		bonded[[2]int{i, j}] = true
		m.AddBond(i, j, 1, false)
	}

	for i := range m.Atoms {
		for _, other := range conect[m.Atoms[i].Serial] {
			if j, ok := bySerial[other]; ok {
				bond(i, j)
			}
		}
	}
	for i := range m.Atoms {
		ri := CovalentRadius(m.Atoms[i].Element)
		for j := i + 1; j < len(m.Atoms); j++ {
			d := pdb.Distance(m.Atoms[i].Coords, m.Atoms[j].Coords)
			if d > minBondDist && d <= ri+CovalentRadius(m.Atoms[j].Element)+bondTolerance {
				bond(i, j)
			}
		}
	}
	return m
}
