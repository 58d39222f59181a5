/*
Package mol provides molecular graphs and the routines needed to give a
ligand read from a PDB file its proper chemistry.

A structure carries coordinates but no bond orders or formal charges. FromPDB
recovers connectivity from CONECT records and interatomic distances, and
AssignBondOrdersFromTemplate copies bond orders, charges and hydrogen counts
from a template molecule (usually parsed from SMILES) onto every copy of the
template found in the structure.
*/
package mol
