package pdb

import (
	"github.com/TuftsBCB/seq"
)

// aminoMap maps residue names that are treated as protein to their single
// letter abbreviation. Besides the standard twenty, it covers the residue
// names force fields and the PDB use for modified or differently protonated
// amino acids, so that e.g. selenomethionine stays part of the protein.
var aminoMap = map[string]seq.Residue{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
	"SEC": 'U', "PYL": 'O',

	// Modified residues that are HETATM records in most entries.
	"MSE": 'M', "SEP": 'S', "TPO": 'T', "PTR": 'Y', "CSO": 'C',
	"HYP": 'P', "MLY": 'K', "KCX": 'K',

	// Protonation states.
	"HSD": 'H', "HSE": 'H', "HSP": 'H', "HID": 'H', "HIE": 'H', "HIP": 'H',
	"CYX": 'C', "CYM": 'C', "ASH": 'D', "GLH": 'E', "LYN": 'K',

	"ASX": 'X', "GLX": 'X', "UNK": 'X',
}

// waterMap is the set of residue names used for water molecules.
var waterMap = map[string]bool{
	"HOH": true, "WAT": true, "H2O": true, "DOD": true, "D2O": true,
	"SOL": true, "TIP": true, "TIP3": true, "TIP4": true, "TIP5": true,
	"T3P": true, "T4P": true, "T5P": true, "SPC": true,
}

// IsAmino returns true if resName is a residue name treated as protein.
func IsAmino(resName string) bool {
	_, ok := aminoMap[resName]
	return ok
}

// IsWater returns true if resName is a residue name used for water.
func IsWater(resName string) bool {
	return waterMap[resName]
}

// AminoAbbrev returns the single letter abbreviation of an amino acid
// residue name, or 'X' if the residue name is not recognized.
func AminoAbbrev(resName string) seq.Residue {
	if v, ok := aminoMap[resName]; ok {
		return v
	}
	return 'X'
}
