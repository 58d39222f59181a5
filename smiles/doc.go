/*
Package smiles provides a reader for molecules written as SMILES strings, as
described by OpenSMILES: http://opensmiles.org/opensmiles.html.

Organic subset and bracket atoms, bond symbols, branches, ring closures and
disconnected components are supported. Stereochemistry is accepted but
ignored. Aromatic input is kekulized.
*/
package smiles
