package pdb

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"
)

// ErrNoAtoms is returned when input contains no ATOM or HETATM records.
var ErrNoAtoms = errors.New("no ATOM or HETATM records found")

type pdbParser struct {
	entry   *Entry
	line    []byte
	lineNum int

	// models counts MODEL records. Once a second model starts (or the first
	// one ends), coordinate records are ignored.
	models int
	done   bool
}

// ReadFile reads a PDB entry from a file. If the file name ends with ".gz",
// gzip decompression is used.
func ReadFile(fp string) (*Entry, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if path.Ext(fp) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fp, err)
		}
		defer gz.Close()
		reader = gz
	}
	return Read(reader, fp)
}

// Read reads a PDB entry from r. The path given is recorded in the entry and
// is used to guess an id code when there is no HEADER record.
func Read(r io.Reader, fp string) (*Entry, error) {
	entry := &Entry{
		Path:   fp,
		Atoms:  make([]Atom, 0, 1000),
		Conect: make(map[int][]int),
	}
	parser := pdbParser{entry: entry}

	// The order of ATOM/HETATM records is preserved. Writers downstream
	// rely on it to emit chains contiguously.
	breader := bufio.NewReader(r)
	for {
		line, err := breader.ReadBytes('\n')
		if err == io.EOF && len(line) == 0 {
			break
		} else if err != io.EOF && err != nil {
			return nil, err
		}
		parser.lineNum++
		parser.line = bytes.TrimRight(line, "\r\n")
		if err := parser.parseLine(); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", fp, parser.lineNum, err)
		}
		if err == io.EOF {
			break
		}
	}

	if len(entry.Atoms) == 0 {
		return nil, fmt.Errorf("%s: %w", fp, ErrNoAtoms)
	}
	if len(entry.IdCode) == 0 {
		entry.IdCode = idFromPath(fp)
	}
	return entry, nil
}

// idFromPath inspects the base name of a file path for a PDB id code.
func idFromPath(fp string) string {
	name := path.Base(fp)
	stem := name
	if i := strings.IndexByte(stem, '.'); i >= 0 {
		stem = stem[:i]
	}
	switch {
	case len(name) >= 7 && name[0:3] == "pdb":
		return name[3:7]
	case len(stem) == 4:
		return stem
	case len(name) == 7: // cath
		return name[0:4]
	}
	return ""
}

func (p *pdbParser) parseLine() error {
	switch p.cols(1, 6) {
	case "HEADER":
		p.entry.IdCode = p.cols(63, 66)
	case "MODEL":
		p.models++
		if p.models > 1 {
			p.done = true
		}
	case "ENDMDL":
		p.done = true
	case "ATOM", "HETATM":
		if p.done {
			return nil
		}
		return p.parseAtom()
	case "CONECT":
		return p.parseConect()
	}
	return nil
}

func (p *pdbParser) parseAtom() error {
	var err error

	altLoc := p.at(17)
	if altLoc != ' ' && altLoc != 0 && altLoc != 'A' {
		return nil
	}

	atom := Atom{
		Het:     p.cols(1, 6) == "HETATM",
		Name:    p.cols(13, 16),
		AltLoc:  altLoc,
		ResName: p.cols(18, 21),
		ChainID: p.at(22),
		ICode:   p.at(27),
		Charge:  p.cols(79, 80),
	}
	if atom.AltLoc == 0 {
		atom.AltLoc = ' '
	}
	if atom.ChainID == 0 {
		atom.ChainID = ' '
	}
	if atom.ICode == 0 {
		atom.ICode = ' '
	}

	if atom.Serial, err = p.atoi(7, 11); err != nil {
		return fmt.Errorf("bad atom serial number: %w", err)
	}
	if atom.ResSeq, err = p.atoi(23, 26); err != nil {
		return fmt.Errorf("bad residue sequence number: %w", err)
	}
	if atom.X, err = p.atof(31, 38); err != nil {
		return err
	}
	if atom.Y, err = p.atof(39, 46); err != nil {
		return err
	}
	if atom.Z, err = p.atof(47, 54); err != nil {
		return err
	}

	// Occupancy and temperature factor are often missing in files written
	// by modeling programs.
	atom.Occupancy = 1.0
	if s := p.cols(55, 60); s != "" {
		if atom.Occupancy, err = strconv.ParseFloat(s, 64); err != nil {
			return err
		}
	}
	if s := p.cols(61, 66); s != "" {
		if atom.TempFactor, err = strconv.ParseFloat(s, 64); err != nil {
			return err
		}
	}

	atom.Element = normalizeElement(p.cols(77, 78))
	if atom.Element == "" {
		atom.Element = guessElement(p.rawCols(13, 16), atom.Het)
	}

	p.entry.Atoms = append(p.entry.Atoms, atom)
	return nil
}

// parseConect reads a CONECT record. Columns 7-11 hold the atom serial
// number and columns 12-31 up to four bonded serial numbers.
func (p *pdbParser) parseConect() error {
	from, err := p.atoi(7, 11)
	if err != nil {
		return fmt.Errorf("bad CONECT serial number: %w", err)
	}
	for c := 12; c <= 27; c += 5 {
		if p.cols(c, c+4) == "" {
			continue
		}
		to, err := p.atoi(c, c+4)
		if err != nil {
			return fmt.Errorf("bad CONECT serial number: %w", err)
		}
		p.entry.addConect(from, to)
	}
	return nil
}

func (p *pdbParser) atoi(start, end int) (int, error) {
	return strconv.Atoi(p.cols(start, end))
}

func (p *pdbParser) atof(start, end int) (float64, error) {
	return strconv.ParseFloat(p.cols(start, end), 64)
}

// cols returns the trimmed text in the one-based inclusive column range.
func (p *pdbParser) cols(start, end int) string {
	return strings.TrimSpace(p.rawCols(start, end))
}

func (p *pdbParser) rawCols(start, end int) string {
	rs, re := start-1, end
	if rs >= len(p.line) || rs < 0 {
		return ""
	}
	if re > len(p.line) {
		re = len(p.line)
	}
	if re < rs {
		return ""
	}
	return string(p.line[rs:re])
}

func (p *pdbParser) at(column int) byte {
	i := column - 1
	if i < 0 || i >= len(p.line) {
		return 0
	}
	return p.line[i]
}

// normalizeElement converts an element symbol to title case.
func normalizeElement(sym string) string {
	sym = strings.TrimSpace(sym)
	if sym == "" {
		return ""
	}
	return strings.ToUpper(sym[:1]) + strings.ToLower(sym[1:])
}

// twoLetter is the set of two letter element symbols that are likely to
// show up as HETATM records without an element column.
var twoLetter = map[string]bool{
	"Cl": true, "Br": true, "Fe": true, "Zn": true, "Mg": true, "Mn": true,
	"Ca": true, "Na": true, "Cu": true, "Co": true, "Ni": true, "Cd": true,
	"Hg": true, "Se": true, "Si": true, "Li": true, "Al": true, "Pt": true,
	"Au": true, "Ag": true, "Pb": true, "Mo": true, "Ru": true, "Rh": true,
	"Pd": true, "Ir": true, "Os": true, "Cs": true, "Sr": true, "Ba": true,
	"Ga": true, "Gd": true, "As": true, "Sb": true, "Te": true, "Tl": true,
	"Yb": true, "Be": true, "Cr": true, "Re": true, "Rb": true, "Xe": true,
	"Kr": true, "Sn": true, "Ge": true, "Bi": true, "Eu": true, "Tb": true,
}

// guessElement guesses an element symbol from the raw (untrimmed) atom name
// in columns 13-16. By convention, the element symbol is right justified in
// columns 13-14, so a two letter symbol starts in column 13 and a one letter
// symbol in column 14.
func guessElement(raw string, het bool) string {
	if len(raw) >= 2 && raw[0] != ' ' && !isDigit(raw[0]) {
		if two := normalizeElement(raw[0:2]); het && twoLetter[two] {
			return two
		}
	}
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == ' ' || isDigit(c) {
			continue
		}
		return normalizeElement(string(c))
	}
	return ""
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
