/*
Package fasta provides routines for reading and writing FASTA files of
sequences from github.com/TuftsBCB/seq. It is used here to record the
sequences of the protein chains split out of a structure.

The format used is the one described by NCBI:
http://blast.ncbi.nlm.nih.gov/blastcgihelp.shtml
*/
package fasta
