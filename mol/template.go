package mol

import (
	"errors"
)

// ErrNoMatch is returned when a template does not match a structure.
var ErrNoMatch = errors.New("no matching found between template and structure")

// AssignBondOrdersFromTemplate returns a copy of m with bond orders, formal
// charges, aromatic flags and hydrogen counts taken from template.
//
// Both molecules are first reduced to their connectivity: every bond single,
// every formal charge zero. The reduced template is then matched against the
// reduced structure, and the properties of each matched template atom and
// bond are copied onto the structure.
//
// Structure atoms of unknown element ("*") match any template atom and take
// its element.
//
// Matching is repeated on the structure atoms not yet matched, so a
// structure holding several copies of the template gets bond orders for
// each of them. The number of copies matched is returned. When there is
// none, ErrNoMatch is returned.
func AssignBondOrdersFromTemplate(template, m *Molecule) (*Molecule, int, error) {
	query := reduce(template)
	out := reduce(m)

	used := make([]bool, len(out.Atoms))
	copies := 0
	for {
		match := firstMatch(query, out, used)
		if match == nil {
			break
		}
		copies++
		for q, t := range match {
			used[t] = true
			ta := template.Atoms[q]
			out.Atoms[t].Charge = ta.Charge
			out.Atoms[t].Aromatic = ta.Aromatic
			out.Atoms[t].HCount = ta.HCount
			if out.Atoms[t].Element == "*" {
				out.Atoms[t].Element = ta.Element
			}
		}
		for _, b := range template.Bonds {
			bi := out.BondBetween(match[b.A], match[b.B])
			out.Bonds[bi].Order = b.Order
			out.Bonds[bi].Aromatic = b.Aromatic
		}
	}
	if copies == 0 {
		return nil, 0, ErrNoMatch
	}
	return out, copies, nil
}

// reduce returns a copy of m with every bond single and non-aromatic, and
// every atom uncharged.
func reduce(m *Molecule) *Molecule {
	r := m.Copy()
	for i := range r.Bonds {
		r.Bonds[i].Order = 1
		r.Bonds[i].Aromatic = false
	}
	for i := range r.Atoms {
		r.Atoms[i].Charge = 0
		r.Atoms[i].Aromatic = false
	}
	return r
}
