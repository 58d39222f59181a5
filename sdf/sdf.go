package sdf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TuftsBCB/ligsplit/mol"
)

// Program is written in the program field of each molecule's header.
const Program = "ligsplit"

// maxCount is the largest atom or bond count a V2000 counts line can hold.
const maxCount = 999

// A Writer writes molecules as records of an MDL SD file. Each molecule is
// written as a V2000 molfile with 3D coordinates, followed by "$$$$".
type Writer struct {
	buf *bufio.Writer
}

// NewWriter creates a new SD file writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{buf: bufio.NewWriter(w)}
}

// Write writes a single molecule record. It always flushes.
//
// Bonds are written with their integer orders, so aromatic systems appear
// in their Kekule form. Formal charges and isotopes are written as
// "M  CHG" and "M  ISO" properties. Hydrogen counts are not written.
func (w *Writer) Write(m *mol.Molecule) error {
	if len(m.Atoms) > maxCount || len(m.Bonds) > maxCount {
		return fmt.Errorf("molecule %s: %d atoms and %d bonds do not fit in "+
			"a V2000 molfile", m.Name, len(m.Atoms), len(m.Bonds))
	}

	name := strings.SplitN(m.Name, "\n", 2)[0]
	if len(name) > 80 {
		name = name[:80]
	}
	fmt.Fprintf(w.buf, "%s\n", name)
	fmt.Fprintf(w.buf, "  %-8s%10s3D\n", Program, "")
	fmt.Fprintf(w.buf, "\n")
	fmt.Fprintf(w.buf, "%3d%3d  0  0  0  0  0  0  0  0999 V2000\n",
		len(m.Atoms), len(m.Bonds))

	for _, a := range m.Atoms {
		fmt.Fprintf(w.buf, "%10.4f%10.4f%10.4f %-3s 0  0  0  0  0  0  0  0  0  0  0  0\n",
			a.X, a.Y, a.Z, a.Element)
	}
	for _, b := range m.Bonds {
		fmt.Fprintf(w.buf, "%3d%3d%3d  0\n", b.A+1, b.B+1, bondType(b))
	}

	var charges, isotopes [][2]int
	for i, a := range m.Atoms {
		if a.Charge != 0 {
			charges = append(charges, [2]int{i + 1, a.Charge})
		}
		if a.Isotope != 0 {
			isotopes = append(isotopes, [2]int{i + 1, a.Isotope})
		}
	}
	w.writeProperty("CHG", charges)
	w.writeProperty("ISO", isotopes)

	fmt.Fprintf(w.buf, "M  END\n$$$$\n")
	return w.buf.Flush()
}

// writeProperty writes atom properties, at most eight per line.
func (w *Writer) writeProperty(name string, entries [][2]int) {
	for len(entries) > 0 {
		n := len(entries)
		if n > 8 {
			n = 8
		}
		fmt.Fprintf(w.buf, "M  %s%3d", name, n)
		for _, e := range entries[:n] {
			fmt.Fprintf(w.buf, "%4d%4d", e[0], e[1])
		}
		fmt.Fprintf(w.buf, "\n")
		entries = entries[n:]
	}
}

// bondType returns the V2000 bond type. Orders a molfile cannot express
// are written as "any" (8).
func bondType(b mol.Bond) int {
	if b.Order >= 1 && b.Order <= 3 {
		return b.Order
	}
	return 8
}

// WriteFile writes molecules to an SD file.
func WriteFile(fp string, mols ...*mol.Molecule) error {
	f, err := os.Create(fp)
	if err != nil {
		return err
	}
	w := NewWriter(f)
	for _, m := range mols {
		if err := w.Write(m); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
