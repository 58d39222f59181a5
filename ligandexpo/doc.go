/*
Package ligandexpo reads the chemical component dictionaries published by
the RCSB Ligand Expo, which map the residue names used for ligands in PDB
files to SMILES strings.

The dictionary is normally the file Components-smiles-stereo-oe.smi, which
is downloaded on first use. See http://ligand-expo.rcsb.org/ld-download.html.
*/
package ligandexpo
