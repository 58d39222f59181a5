package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TuftsBCB/seq"
)

// StringCols returns a sequence in FASTA format, with its name as the
// header and its residues wrapped at the number of columns given. If cols
// is <= 0, then no wrapping is done.
func StringCols(s seq.Sequence, cols int) string {
	rs := residueBytes(s.Residues)
	if cols <= 0 || len(rs) == 0 {
		return fmt.Sprintf(">%s\n%s", s.Name, rs)
	}

	wrapped := make([]string, 1+((len(rs)-1)/cols))
	for i := range wrapped {
		start := cols * i
		end := start + cols
		if end > len(rs) {
			end = len(rs)
		}
		wrapped[i] = string(rs[start:end])
	}
	return fmt.Sprintf(">%s\n%s", s.Name, strings.Join(wrapped, "\n"))
}

func residueBytes(rs []seq.Residue) []byte {
	bs := make([]byte, len(rs))
	for i, r := range rs {
		bs[i] = byte(r)
	}
	return bs
}

// A Reader reads entries from FASTA encoded input.
type Reader struct {
	buf        *bufio.Reader
	line       int
	nextHeader []byte
}

// NewReader creates a new FASTA reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{buf: bufio.NewReader(r)}
}

// ReadAll reads all entries in the input. The first error encountered is
// returned with no entries.
func (r *Reader) ReadAll() ([]seq.Sequence, error) {
	var entries []seq.Sequence
	for {
		entry, err := r.Read()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
}

// Read reads the next entry. The header becomes the sequence name. Blank
// lines and surrounding whitespace are ignored, and residues are upper
// cased. At the end of the input, io.EOF is returned.
func (r *Reader) Read() (seq.Sequence, error) {
	var entry seq.Sequence
	seenHeader := false
	if r.nextHeader != nil {
		entry.Name = trimHeader(r.nextHeader)
		r.nextHeader = nil
		seenHeader = true
	}
	for {
		line, err := r.buf.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return seq.Sequence{}, err
		}
		if err == io.EOF && len(line) == 0 {
			if seenHeader {
				return entry, nil
			}
			return seq.Sequence{}, io.EOF
		}
		r.line++
		line = bytes.TrimSpace(line)

		switch {
		case len(line) == 0:
		case !seenHeader:
			if line[0] != '>' {
				return seq.Sequence{}, fmt.Errorf("line %d: expected '>', got '%c'",
					r.line, line[0])
			}
			entry.Name = trimHeader(line)
			seenHeader = true
		case line[0] == '>':
			r.nextHeader = line
			return entry, nil
		default:
			for _, b := range bytes.ToUpper(line) {
				entry.Residues = append(entry.Residues, seq.Residue(b))
			}
		}
	}
}

func trimHeader(line []byte) string {
	return string(bytes.TrimSpace(bytes.TrimLeft(line, ">")))
}

// A Writer writes entries to a FASTA encoded file. The header text is never
// wrapped.
type Writer struct {
	// The number of columns to wrap a sequence at. By default, this
	// is set to 60. A value <= 0 will result in no wrapping.
	Columns int
	buf     *bufio.Writer
}

// NewWriter creates a new FASTA writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		Columns: 60,
		buf:     bufio.NewWriter(w),
	}
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	return w.buf.Flush()
}

// Write writes a single sequence. You may need to call Flush in order for
// the sequence to be written.
func (w *Writer) Write(s seq.Sequence) error {
	_, err := fmt.Fprintf(w.buf, "%s\n", StringCols(s, w.Columns))
	return err
}

// WriteAll writes sequences and calls Flush.
func (w *Writer) WriteAll(entries []seq.Sequence) error {
	for _, entry := range entries {
		if err := w.Write(entry); err != nil {
			return err
		}
	}
	return w.Flush()
}

// WriteFile writes sequences to a FASTA file.
func WriteFile(fp string, entries []seq.Sequence) error {
	f, err := os.Create(fp)
	if err != nil {
		return err
	}
	if err := NewWriter(f).WriteAll(entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads all sequences in a FASTA file.
func ReadFile(fp string) ([]seq.Sequence, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewReader(f).ReadAll()
}
