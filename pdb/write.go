package pdb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// A Writer writes selections in PDB format.
type Writer struct {
	// When true, CONECT records between selected atoms are written.
	// By default, this is true.
	Conect bool
	buf    *bufio.Writer
}

// NewWriter creates a new PDB writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		Conect: true,
		buf:    bufio.NewWriter(w),
	}
}

// Write writes the atoms of a selection, followed by a TER record after the
// last atom of each chain, CONECT records and a final END record. It always
// flushes.
func (w *Writer) Write(sel *Selection) error {
	for i, a := range sel.Atoms {
		if err := w.writeAtom(a); err != nil {
			return err
		}
		if i+1 == len(sel.Atoms) || sel.Atoms[i+1].ChainID != a.ChainID {
			if err := w.writeTer(a); err != nil {
				return err
			}
		}
	}
	if w.Conect {
		if err := w.writeConect(sel.Conect()); err != nil {
			return err
		}
	}
	if _, err := w.buf.WriteString("END\n"); err != nil {
		return err
	}
	return w.buf.Flush()
}

func (w *Writer) writeAtom(a Atom) error {
	record := "ATOM"
	if a.Het {
		record = "HETATM"
	}
	_, err := fmt.Fprintf(w.buf,
		"%-6s%5d %-4s%c%s%c%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s%-2s\n",
		record, a.Serial, atomName(a), byteOr(a.AltLoc, ' '), resNameCols(a.ResName),
		byteOr(a.ChainID, ' '), a.ResSeq, byteOr(a.ICode, ' '),
		a.X, a.Y, a.Z, a.Occupancy, a.TempFactor,
		strings.ToUpper(a.Element), a.Charge)
	return err
}

func (w *Writer) writeTer(last Atom) error {
	_, err := fmt.Fprintf(w.buf, "TER   %5d      %s%c%4d%c\n",
		last.Serial+1, resNameCols(last.ResName), byteOr(last.ChainID, ' '),
		last.ResSeq, byteOr(last.ICode, ' '))
	return err
}

// writeConect writes at most four bonded atoms per CONECT record, sorted by
// serial number.
func (w *Writer) writeConect(conect map[int][]int) error {
	serials := make([]int, 0, len(conect))
	for serial := range conect {
		serials = append(serials, serial)
	}
	sort.Ints(serials)
	for _, serial := range serials {
		bonded := append([]int(nil), conect[serial]...)
		sort.Ints(bonded)
		for len(bonded) > 0 {
			n := len(bonded)
			if n > 4 {
				n = 4
			}
			if _, err := fmt.Fprintf(w.buf, "CONECT%5d", serial); err != nil {
				return err
			}
			for _, other := range bonded[:n] {
				if _, err := fmt.Fprintf(w.buf, "%5d", other); err != nil {
					return err
				}
			}
			if err := w.buf.WriteByte('\n'); err != nil {
				return err
			}
			bonded = bonded[n:]
		}
	}
	return nil
}

// WriteFile writes a selection to a PDB file.
func WriteFile(fp string, sel *Selection) error {
	f, err := os.Create(fp)
	if err != nil {
		return err
	}
	if err := NewWriter(f).Write(sel); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// atomName pads an atom name to four columns. Names of fewer than four
// characters with a one letter element start in column 14.
func atomName(a Atom) string {
	if len(a.Name) < 4 && len(a.Element) < 2 {
		return " " + a.Name
	}
	return a.Name
}

// resNameCols fills columns 18-21. Standard names of up to three characters
// are right justified in columns 18-20; four character names, as written by
// CHARMM and NAMD, take column 21 as well.
func resNameCols(name string) string {
	if len(name) <= 3 {
		return fmt.Sprintf("%3s ", name)
	}
	return fmt.Sprintf("%-4.4s", name)
}

func byteOr(b, def byte) byte {
	if b == 0 {
		return def
	}
	return b
}
