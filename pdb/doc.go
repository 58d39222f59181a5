/*
Package pdb provides support for reading, selecting and writing the atoms of
PDB files.

Both ATOM and HETATM records are read, along with CONECT records and the id
code in the HEADER record. Only the first model of a multi-model file is
read, and of alternate atom locations only the blank and 'A' locations are
kept.

Atoms are partitioned with Selections, which are built from predicates such
as Protein, Water and ResName and may be written back out in PDB format.
A structure may also be fetched from the RCSB by its four character id code.
*/
package pdb
