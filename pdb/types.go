package pdb

import (
	"fmt"
	"math"
	"path"
	"strings"

	"github.com/TuftsBCB/structure"
)

// Entry represents the atoms of a single PDB file.
type Entry struct {
	Path   string
	IdCode string
	Atoms  []Atom

	// Conect maps an atom serial number to the serial numbers of the atoms
	// it is bonded to, as given by CONECT records. Each bond is recorded in
	// both directions.
	Conect map[int][]int
}

// Atom corresponds to an ATOM or HETATM record.
type Atom struct {
	Het     bool
	Serial  int
	Name    string
	AltLoc  byte
	ResName string
	ChainID byte
	ResSeq  int
	ICode   byte
	structure.Coords
	Occupancy  float64
	TempFactor float64

	// Element is the element symbol, normalized to title case ("Cl", "Fe").
	// When the element columns are blank, it is guessed from the atom name.
	Element string
	Charge  string
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b structure.Coords) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// IsHydrogen returns true for hydrogen and deuterium atoms.
func (a Atom) IsHydrogen() bool {
	return a.Element == "H" || a.Element == "D"
}

func (a Atom) String() string {
	return fmt.Sprintf("(%d, %s, %s %c%d, [%0.3f %0.3f %0.3f])",
		a.Serial, a.Name, a.ResName, a.ChainID, a.ResSeq, a.X, a.Y, a.Z)
}

// Name returns the base name of the path of this PDB entry.
func (e *Entry) Name() string {
	return path.Base(e.Path)
}

// IdString returns the lower case id code.
func (e *Entry) IdString() string {
	return strings.ToLower(e.IdCode)
}

// Bonded returns the serial numbers bonded to serial by CONECT records.
func (e *Entry) Bonded(serial int) []int {
	return e.Conect[serial]
}

func (e *Entry) addConect(a, b int) {
	if a == b {
		return
	}
	for _, other := range e.Conect[a] {
		if other == b {
			return
		}
	}
	e.Conect[a] = append(e.Conect[a], b)
	e.Conect[b] = append(e.Conect[b], a)
}
