package mol

import (
	"errors"
	"math"
	"testing"

	"github.com/TuftsBCB/structure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TuftsBCB/ligsplit/pdb"
)

// acetate returns the acetate ion with explicit bond orders:
// CH3-C(=O)-[O-].
func acetate() *Molecule {
	m := &Molecule{Name: "ACT"}
	m.AddAtom(Atom{Element: "C", HCount: 3})
	m.AddAtom(Atom{Element: "C"})
	m.AddAtom(Atom{Element: "O"})
	m.AddAtom(Atom{Element: "O", Charge: -1})
	m.AddBond(0, 1, 1, false)
	m.AddBond(1, 2, 2, false)
	m.AddBond(1, 3, 1, false)
	return m
}

// aromaticRing returns a ring of aromatic atoms joined by aromatic bonds.
func aromaticRing(elems ...string) *Molecule {
	m := &Molecule{}
	for _, e := range elems {
		m.AddAtom(Atom{Element: e, Aromatic: true})
	}
	for i := range elems {
		m.AddBond(i, (i+1)%len(elems), 1, true)
	}
	return m
}

// acetateAtoms returns structure atoms for acetate, including a hydrogen,
// offset along the x axis.
func acetateAtoms(serial int, dx float64) []pdb.Atom {
	at := func(s int, name, elem string, x, y float64) pdb.Atom {
		return pdb.Atom{
			Het: true, Serial: s, Name: name, ResName: "ACT",
			Element: elem, Coords: structure.Coords{X: x + dx, Y: y},
		}
	}
	return []pdb.Atom{
		at(serial, "C", "C", 21.52, 0),
		at(serial+1, "O", "O", 22.15, 1.06),
		at(serial+2, "OXT", "O", 22.15, -1.06),
		at(serial+3, "CH3", "C", 20, 0),
		at(serial+4, "H1", "H", 19.6, 1.0),
	}
}

func TestValences(t *testing.T) {
	tests := []struct {
		elem   string
		charge int
		want   []int
	}{
		{"C", 0, []int{4}},
		{"N", 0, []int{3}},
		{"N", 1, []int{4}},
		{"O", -1, []int{1}},
		{"O", 1, []int{3}},
		{"S", 0, []int{2, 4, 6}},
		{"P", 0, []int{3, 5}},
		{"Cl", 0, []int{1, 3, 5, 7}},
		{"B", -1, []int{4}},
		{"Na", 1, []int{0}},
		{"Zn", 2, nil},
		{"Xx", 0, nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Valences(tt.elem, tt.charge), "%s%+d", tt.elem, tt.charge)
	}

	assert.Equal(t, 2, ImplicitHydrogens("C", 0, 2))
	assert.Equal(t, 0, ImplicitHydrogens("N", 0, 3))
	assert.Equal(t, 1, ImplicitHydrogens("S", 0, 3))
	assert.Equal(t, 0, ImplicitHydrogens("C", 0, 5))
	assert.Equal(t, 3, ImplicitHydrogens("N", 1, 1))
}

func TestElements(t *testing.T) {
	assert.Equal(t, "Cl", NormalizeSymbol("CL"))
	assert.Equal(t, "C", NormalizeSymbol(" c"))
	assert.Equal(t, "", NormalizeSymbol(" "))
	assert.True(t, IsElement("Se"))
	assert.False(t, IsElement("*"))
	assert.False(t, IsElement("SE"))
	assert.Equal(t, 30, AtomicNumber("Zn"))
	assert.Equal(t, 63, AtomicNumber("Eu"))
	assert.Equal(t, 92, AtomicNumber("U"))
	assert.True(t, IsElement("Lu"))
	assert.Nil(t, Valences("Eu", 3))
	assert.Equal(t, 0.68, CovalentRadius("C"))
	assert.Equal(t, defaultRcov, CovalentRadius("Xx"))
}

func TestMoleculeGraph(t *testing.T) {
	m := acetate()
	assert.Equal(t, 3, m.Degree(1))
	assert.ElementsMatch(t, []int{0, 2, 3}, m.Neighbors(1))
	assert.Equal(t, 1, m.BondBetween(2, 1))
	assert.Equal(t, -1, m.BondBetween(0, 2))
	assert.Equal(t, 4, m.Valence(1))
	assert.Equal(t, "C2H3O2", m.Formula())
	assert.Equal(t, 4, m.HeavyAtoms())

	assert.Error(t, m.AddBond(1, 2, 1, false))
	assert.Error(t, m.AddBond(1, 1, 1, false))
	assert.Error(t, m.AddBond(1, 9, 1, false))

	cp := m.Copy()
	cp.Bonds[1].Order = 1
	cp.Atoms[3].Charge = 0
	assert.Equal(t, 2, m.Bonds[1].Order)
	assert.Equal(t, -1, m.Atoms[3].Charge)
}

func kekuleDoubles(t *testing.T, m *Molecule) int {
	t.Helper()
	doubles := 0
	for _, b := range m.Bonds {
		if b.Aromatic {
			require.Contains(t, []int{1, 2}, b.Order)
		}
		if b.Order == 2 {
			doubles++
		}
	}
	return doubles
}

func TestKekulizeBenzene(t *testing.T) {
	m := aromaticRing("C", "C", "C", "C", "C", "C")
	require.NoError(t, m.Kekulize())
	assert.Equal(t, 3, kekuleDoubles(t, m))
	for i := range m.Atoms {
		assert.Equal(t, 3, m.Valence(i), "atom %d", i)
		assert.True(t, m.Atoms[i].Aromatic)
	}
}

func TestKekulizePyrrole(t *testing.T) {
	m := aromaticRing("C", "C", "C", "N", "C")
	m.Atoms[3].HCount = 1
	require.NoError(t, m.Kekulize())
	assert.Equal(t, 2, kekuleDoubles(t, m))
	assert.Equal(t, 2, m.Valence(3))
}

func TestKekulizeFused(t *testing.T) {
	// Naphthalene: two six membered rings sharing the 0-5 bond.
	m := aromaticRing("C", "C", "C", "C", "C", "C")
	for i := 0; i < 4; i++ {
		m.AddAtom(Atom{Element: "C", Aromatic: true})
	}
	m.AddBond(5, 6, 1, true)
	m.AddBond(6, 7, 1, true)
	m.AddBond(7, 8, 1, true)
	m.AddBond(8, 9, 1, true)
	m.AddBond(9, 0, 1, true)
	require.NoError(t, m.Kekulize())
	assert.Equal(t, 5, kekuleDoubles(t, m))
}

func TestKekulizeFailure(t *testing.T) {
	m := aromaticRing("C", "C", "C", "N", "C")
	err := m.Kekulize()
	assert.True(t, errors.Is(err, ErrKekulize))
}

func TestFromPDB(t *testing.T) {
	atoms := acetateAtoms(14, 0)
	m := FromPDB("ACT", atoms, nil)

	require.Len(t, m.Atoms, 4, "hydrogen is dropped")
	assert.Equal(t, "ACT", m.Name)
	assert.Equal(t, 14, m.Atoms[0].Serial)
	assert.Equal(t, "OXT", m.Atoms[2].Name)
	assert.Equal(t, 20.0, m.Atoms[3].X)

	require.Len(t, m.Bonds, 3)
	for _, pair := range [][2]int{{0, 1}, {0, 2}, {0, 3}} {
		bi := m.BondBetween(pair[0], pair[1])
		require.True(t, bi >= 0, "bond %v", pair)
		assert.Equal(t, 1, m.Bonds[bi].Order)
	}
	assert.Equal(t, -1, m.BondBetween(1, 2))
}

func TestFromPDBConect(t *testing.T) {
	atoms := []pdb.Atom{
		{Serial: 1, Name: "ZN", Element: "Zn"},
		{Serial: 2, Name: "S", Element: "S", Coords: structure.Coords{X: 5}},
		{Serial: 3, Name: "C", Element: "", Coords: structure.Coords{X: 10}},
		{Serial: 4, Name: "C2", Element: "C", Coords: structure.Coords{X: 10.1}},
	}
	conect := map[int][]int{1: {2, 99}, 2: {1}}
	m := FromPDB("X", atoms, conect)

	assert.Equal(t, "*", m.Atoms[2].Element)
	assert.True(t, m.BondBetween(0, 1) >= 0, "CONECT bond")
	assert.Equal(t, -1, m.BondBetween(2, 3), "too close")
	assert.Len(t, m.Bonds, 1)
}

func TestSubstructMatches(t *testing.T) {
	ring := reduce(aromaticRing("C", "C", "C", "C", "C", "C"))

	// A ring matches itself twelve ways, all over the same atoms.
	assert.Len(t, SubstructMatches(ring, ring, 0), 1)

	edge := &Molecule{}
	edge.AddAtom(Atom{Element: "C"})
	edge.AddAtom(Atom{Element: "C"})
	edge.AddBond(0, 1, 1, false)
	assert.Len(t, SubstructMatches(edge, ring, 0), 6)
	assert.Len(t, SubstructMatches(edge, ring, 2), 2)

	wild := &Molecule{}
	wild.AddAtom(Atom{Element: "*"})
	wild.AddAtom(Atom{Element: "O"})
	wild.AddBond(0, 1, 2, false)
	matches := SubstructMatches(wild, acetate(), 0)
	require.Len(t, matches, 1)
	assert.Equal(t, []int{1, 2}, matches[0])

	assert.Empty(t, SubstructMatches(ring, acetate(), 0))
	assert.Empty(t, SubstructMatches(&Molecule{}, ring, 0))
}

func TestAssignBondOrders(t *testing.T) {
	tpl := acetate()
	target := FromPDB("ACT", acetateAtoms(14, 0), nil)

	out, copies, err := AssignBondOrdersFromTemplate(tpl, target)
	require.NoError(t, err)
	assert.Equal(t, 1, copies)
	assert.Equal(t, "ACT", out.Name)

	// Carbonyl carbon is atom 0, the methyl carbon atom 3.
	assert.Equal(t, 1, out.Bonds[out.BondBetween(0, 3)].Order)
	o1 := out.Bonds[out.BondBetween(0, 1)].Order
	o2 := out.Bonds[out.BondBetween(0, 2)].Order
	assert.ElementsMatch(t, []int{1, 2}, []int{o1, o2})

	singleO := 1
	if o1 == 2 {
		singleO = 2
	}
	assert.Equal(t, -1, out.Atoms[singleO].Charge)
	assert.Equal(t, 0, out.Atoms[3-singleO].Charge)
	assert.Equal(t, 3, out.Atoms[3].HCount)
	assert.Equal(t, 22.15, out.Atoms[1].X)

	// Inputs are left alone.
	assert.Equal(t, 2, tpl.Bonds[1].Order)
	for _, b := range target.Bonds {
		assert.Equal(t, 1, b.Order)
	}
}

func TestAssignBondOrdersUnknownElement(t *testing.T) {
	atoms := acetateAtoms(14, 0)
	atoms[2].Element = ""
	target := FromPDB("ACT", atoms, nil)
	require.Equal(t, "*", target.Atoms[2].Element)

	out, copies, err := AssignBondOrdersFromTemplate(acetate(), target)
	require.NoError(t, err)
	assert.Equal(t, 1, copies)
	assert.Equal(t, "O", out.Atoms[2].Element)
	assert.Equal(t, "*", target.Atoms[2].Element)

	o1 := out.Bonds[out.BondBetween(0, 1)].Order
	o2 := out.Bonds[out.BondBetween(0, 2)].Order
	assert.ElementsMatch(t, []int{1, 2}, []int{o1, o2})

	// A wildcard stands in for one atom only.
	atoms[1].Element = "N"
	_, _, err = AssignBondOrdersFromTemplate(acetate(), FromPDB("ACT", atoms, nil))
	assert.True(t, errors.Is(err, ErrNoMatch))
}

func TestAssignBondOrdersCopies(t *testing.T) {
	atoms := append(acetateAtoms(1, 0), acetateAtoms(10, 10)...)
	target := FromPDB("ACT", atoms, nil)
	require.Len(t, target.Atoms, 8)

	out, copies, err := AssignBondOrdersFromTemplate(acetate(), target)
	require.NoError(t, err)
	assert.Equal(t, 2, copies)

	doubles, charge := 0, 0
	for _, b := range out.Bonds {
		if b.Order == 2 {
			doubles++
		}
	}
	for _, a := range out.Atoms {
		charge += a.Charge
	}
	assert.Equal(t, 2, doubles)
	assert.Equal(t, -2, charge)
}

func TestAssignBondOrdersAromatic(t *testing.T) {
	tpl := aromaticRing("C", "C", "C", "C", "C", "C")
	require.NoError(t, tpl.Kekulize())

	var atoms []pdb.Atom
	for i := 0; i < 6; i++ {
		angle := float64(i) * math.Pi / 3
		atoms = append(atoms, pdb.Atom{
			Serial: i + 1, Element: "C",
			Coords: structure.Coords{X: 1.39 * math.Cos(angle), Y: 1.39 * math.Sin(angle)},
		})
	}
	target := FromPDB("BNZ", atoms, nil)
	require.Len(t, target.Bonds, 6)

	out, copies, err := AssignBondOrdersFromTemplate(tpl, target)
	require.NoError(t, err)
	assert.Equal(t, 1, copies)
	assert.Equal(t, 3, kekuleDoubles(t, out))
	for i, a := range out.Atoms {
		assert.True(t, a.Aromatic)
		assert.Equal(t, 3, out.Valence(i))
	}
}

func TestAssignBondOrdersNoMatch(t *testing.T) {
	target := FromPDB("ACT", acetateAtoms(14, 0), nil)
	ring := aromaticRing("C", "C", "C", "C", "C", "C")

	_, copies, err := AssignBondOrdersFromTemplate(ring, target)
	assert.True(t, errors.Is(err, ErrNoMatch))
	assert.Equal(t, 0, copies)

	// A structure missing an atom of the template does not match.
	partial := FromPDB("ACT", acetateAtoms(14, 0)[:3], nil)
	_, _, err = AssignBondOrdersFromTemplate(acetate(), partial)
	assert.True(t, errors.Is(err, ErrNoMatch))
}

func TestRingBonds(t *testing.T) {
	for _, in := range acetate().RingBonds() {
		assert.False(t, in)
	}

	// Two rings joined by a single bond.
	m := aromaticRing("C", "C", "C", "C", "C", "C")
	for i := 0; i < 6; i++ {
		m.AddAtom(Atom{Element: "C", Aromatic: true})
	}
	for i := 0; i < 6; i++ {
		m.AddBond(6+i, 6+(i+1)%6, 1, true)
	}
	m.AddBond(0, 6, 1, true)

	inRing := m.RingBonds()
	require.Len(t, inRing, 13)
	for i := 0; i < 12; i++ {
		assert.True(t, inRing[i], "bond %d", i)
	}
	assert.False(t, inRing[12])
	for _, in := range m.RingAtoms() {
		assert.True(t, in)
	}
}
