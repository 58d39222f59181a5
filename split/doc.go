/*
Package split implements the ligsplit pipeline: a protein-ligand structure
is partitioned into its protein atoms, written as a PDB file, and its ligand
residues, each written as an SD file with bond orders and formal charges
taken from the Ligand Expo dictionary.

Given "complex.pdb", the files written are "complex_protein.pdb" and, for
each distinct ligand residue name RES, "complex_RES_ligand.sdf". Water is
neither protein nor ligand and is dropped.
*/
package split
