package mol

import (
	"strings"
)

// element holds the per-element data needed for bond perception and
// valence handling.
type element struct {
	number int

	// rcov is the covalent radius in Angstroms used for proximity bonding.
	rcov float64

	// outer is the number of outer shell electrons of main group elements,
	// or 0 when the element has no default valence.
	outer int
}

var elements = map[string]element{
	"*":  {0, 0.68, 0},
	"H":  {1, 0.23, 1},
	"D":  {1, 0.23, 1},
	"He": {2, 1.50, 0},
	"Li": {3, 0.68, 1},
	"Be": {4, 0.35, 2},
	"B":  {5, 0.83, 3},
	"C":  {6, 0.68, 4},
	"N":  {7, 0.68, 5},
	"O":  {8, 0.68, 6},
	"F":  {9, 0.64, 7},
	"Ne": {10, 1.50, 0},
	"Na": {11, 0.97, 1},
	"Mg": {12, 1.10, 2},
	"Al": {13, 1.35, 3},
	"Si": {14, 1.20, 4},
	"P":  {15, 1.05, 5},
	"S":  {16, 1.02, 6},
	"Cl": {17, 0.99, 7},
	"Ar": {18, 1.51, 0},
	"K":  {19, 1.33, 1},
	"Ca": {20, 0.99, 2},
	"Sc": {21, 1.44, 0},
	"Ti": {22, 1.47, 0},
	"V":  {23, 1.33, 0},
	"Cr": {24, 1.35, 0},
	"Mn": {25, 1.35, 0},
	"Fe": {26, 1.34, 0},
	"Co": {27, 1.33, 0},
	"Ni": {28, 1.50, 0},
	"Cu": {29, 1.52, 0},
	"Zn": {30, 1.45, 0},
	"Ga": {31, 1.22, 3},
	"Ge": {32, 1.17, 4},
	"As": {33, 1.21, 5},
	"Se": {34, 1.22, 6},
	"Br": {35, 1.21, 7},
	"Kr": {36, 1.50, 0},
	"Rb": {37, 1.47, 1},
	"Sr": {38, 1.12, 2},
	"Y":  {39, 1.78, 0},
	"Zr": {40, 1.56, 0},
	"Nb": {41, 1.48, 0},
	"Mo": {42, 1.47, 0},
	"Tc": {43, 1.35, 0},
	"Ru": {44, 1.40, 0},
	"Rh": {45, 1.45, 0},
	"Pd": {46, 1.50, 0},
	"Ag": {47, 1.59, 0},
	"Cd": {48, 1.69, 0},
	"In": {49, 1.63, 3},
	"Sn": {50, 1.46, 4},
	"Sb": {51, 1.46, 5},
	"Te": {52, 1.47, 6},
	"I":  {53, 1.40, 7},
	"Xe": {54, 1.50, 0},
	"Cs": {55, 1.67, 1},
	"Ba": {56, 1.34, 2},
	"La": {57, 1.87, 0},
	"Ce": {58, 1.83, 0},
	"Pr": {59, 1.82, 0},
	"Nd": {60, 1.81, 0},
	"Pm": {61, 1.80, 0},
	"Sm": {62, 1.80, 0},
	"Eu": {63, 1.99, 0},
	"Gd": {64, 1.79, 0},
	"Tb": {65, 1.76, 0},
	"Dy": {66, 1.75, 0},
	"Ho": {67, 1.74, 0},
	"Er": {68, 1.73, 0},
	"Tm": {69, 1.72, 0},
	"Yb": {70, 1.94, 0},
	"Lu": {71, 1.72, 0},
	"Hf": {72, 1.57, 0},
	"Ta": {73, 1.43, 0},
	"W":  {74, 1.37, 0},
	"Re": {75, 1.35, 0},
	"Os": {76, 1.37, 0},
	"Ir": {77, 1.32, 0},
	"Pt": {78, 1.50, 0},
	"Au": {79, 1.50, 0},
	"Hg": {80, 1.70, 0},
	"Tl": {81, 1.55, 3},
	"Pb": {82, 1.54, 4},
	"Bi": {83, 1.54, 5},
	"Po": {84, 1.68, 6},
	"At": {85, 1.50, 7},
	"Rn": {86, 1.50, 0},
	"Fr": {87, 1.50, 1},
	"Ra": {88, 1.90, 2},
	"Ac": {89, 1.88, 0},
	"Th": {90, 1.79, 0},
	"Pa": {91, 1.61, 0},
	"U":  {92, 1.58, 0},
	"Np": {93, 1.55, 0},
	"Pu": {94, 1.53, 0},
	"Am": {95, 1.51, 0},
	"Cm": {96, 1.50, 0},
	"Bk": {97, 1.50, 0},
	"Cf": {98, 1.50, 0},
	"Es": {99, 1.50, 0},
	"Fm": {100, 1.50, 0},
	"Md": {101, 1.50, 0},
	"No": {102, 1.50, 0},
	"Lr": {103, 1.50, 0},
}

// defaultRcov is used for elements missing from the table.
const defaultRcov = 1.50

// NormalizeSymbol returns an element symbol in title case, e.g., "CL"
// becomes "Cl".
func NormalizeSymbol(sym string) string {
	sym = strings.TrimSpace(sym)
	if len(sym) == 0 {
		return sym
	}
	return strings.ToUpper(sym[:1]) + strings.ToLower(sym[1:])
}

// IsElement returns true if sym is a known element symbol. sym must be
// normalized.
func IsElement(sym string) bool {
	_, ok := elements[sym]
	return ok && sym != "*"
}

// AtomicNumber returns the atomic number of an element, or 0 if the element
// is unknown.
func AtomicNumber(sym string) int {
	return elements[sym].number
}

// CovalentRadius returns the covalent radius of an element in Angstroms.
func CovalentRadius(sym string) float64 {
	if e, ok := elements[sym]; ok {
		return e.rcov
	}
	return defaultRcov
}

// Valences returns the allowed valences of an element carrying the given
// formal charge, in increasing order. Charged atoms are treated like the
// isoelectronic neutral atom, so N+ has the valence of C and O- the
// valence of F. Second period elements have a single valence. Elements
// without a default valence (metals, noble gases) return nil.
func Valences(sym string, charge int) []int {
	e, ok := elements[sym]
	if !ok || e.outer == 0 {
		return nil
	}
	outer := e.outer - charge
	var vs []int
	switch {
	case outer <= 0 || outer >= 8:
		return []int{0}
	case outer <= 4:
		vs = []int{outer}
	case outer == 5:
		vs = []int{3, 5}
	case outer == 6:
		vs = []int{2, 4, 6}
	case outer == 7:
		vs = []int{1, 3, 5, 7}
	}
	if e.number <= 10 {
		return vs[:1]
	}
	return vs
}

// ImplicitHydrogens returns the number of hydrogens needed to bring an atom
// with the given explicit valence (sum of bond orders) up to its smallest
// allowed valence. It is 0 when no allowed valence fits.
func ImplicitHydrogens(sym string, charge, valence int) int {
	for _, v := range Valences(sym, charge) {
		if v >= valence {
			return v - valence
		}
	}
	return 0
}
