package mol

// RingBonds reports, for each bond, whether it is part of a ring. A bond is
// in a ring exactly when it is not a bridge of the molecular graph.
func (m *Molecule) RingBonds() []bool {
	inRing := make([]bool, len(m.Bonds))
	for i := range inRing {
		inRing[i] = true
	}

	disc := make([]int, len(m.Atoms))
	low := make([]int, len(m.Atoms))
	time := 0

	var visit func(u, parentBond int)
	visit = func(u, parentBond int) {
		time++
		disc[u], low[u] = time, time
		for _, bi := range m.AtomBonds(u) {
			if bi == parentBond {
				continue
			}
			v := m.Bonds[bi].Other(u)
			if disc[v] == 0 {
				visit(v, bi)
				if low[v] < low[u] {
					low[u] = low[v]
				}
				if low[v] > disc[u] {
					inRing[bi] = false
				}
			} else if disc[v] < low[u] {
				low[u] = disc[v]
			}
		}
	}
	for u := range m.Atoms {
		if disc[u] == 0 {
			visit(u, -1)
		}
	}
	return inRing
}

// RingAtoms reports, for each atom, whether it is part of a ring.
func (m *Molecule) RingAtoms() []bool {
	atoms := make([]bool, len(m.Atoms))
	for i, in := range m.RingBonds() {
		if in {
			atoms[m.Bonds[i].A] = true
			atoms[m.Bonds[i].B] = true
		}
	}
	return atoms
}
