package fasta

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TuftsBCB/seq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFastaInput = `
>1abc:A
GASTDEFH
KLMN

>1abc:B
  mse
>empty
`

func residues(s seq.Sequence) string {
	return string(residueBytes(s.Residues))
}

func TestReadAll(t *testing.T) {
	entries, err := NewReader(strings.NewReader(testFastaInput)).ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "1abc:A", entries[0].Name)
	assert.Equal(t, "GASTDEFHKLMN", residues(entries[0]))
	assert.Equal(t, "1abc:B", entries[1].Name)
	assert.Equal(t, "MSE", residues(entries[1]))
	assert.Equal(t, "empty", entries[2].Name)
	assert.Empty(t, entries[2].Residues)
}

func TestReadNoHeader(t *testing.T) {
	_, err := NewReader(strings.NewReader("\nACGT\n")).ReadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestStringCols(t *testing.T) {
	s := seq.Sequence{Name: "x", Residues: []seq.Residue("ABCDEFG")}
	assert.Equal(t, ">x\nABC\nDEF\nG", StringCols(s, 3))
	assert.Equal(t, ">x\nABCDEFG", StringCols(s, 0))
	assert.Equal(t, ">x\n", StringCols(seq.Sequence{Name: "x"}, 3))
}

func TestReadWrite(t *testing.T) {
	entries := []seq.Sequence{
		{Name: "long", Residues: []seq.Residue(strings.Repeat("ACDEFGHIKL", 13))},
		{Name: "short", Residues: []seq.Residue("W")},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteAll(entries))
	lines := strings.Split(buf.String(), "\n")
	assert.Len(t, lines[1], 60)
	assert.Len(t, lines[3], 10)

	again, err := NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, entries, again)
}

func TestWriteFile(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "protein.fasta")
	s := seq.Sequence{Name: "1abc:A", Residues: []seq.Residue("GA")}
	require.NoError(t, WriteFile(fp, []seq.Sequence{s}))

	again, err := ReadFile(fp)
	require.NoError(t, err)
	assert.Equal(t, []seq.Sequence{s}, again)

	assert.Error(t, WriteFile(filepath.Join(t.TempDir(), "no", "x.fasta"), nil))
}
