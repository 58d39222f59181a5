package split

import (
	"os"
	"time"

	"github.com/goccy/go-json"
)

// Report summarizes one run.
type Report struct {
	RunID   string         `json:"run_id"`
	Input   string         `json:"input"`
	IdCode  string         `json:"id_code,omitempty"`
	Started time.Time      `json:"started"`
	Elapsed string         `json:"elapsed"`
	Protein ProteinResult  `json:"protein"`
	Ligands []LigandResult `json:"ligands"`
}

// ProteinResult describes the protein file.
type ProteinResult struct {
	File      string   `json:"file"`
	FASTAFile string   `json:"fasta_file,omitempty"`
	Atoms     int      `json:"atoms"`
	Residues  []string `json:"residues"`
}

// LigandResult describes what happened to one ligand residue name.
type LigandResult struct {
	ResName string `json:"res_name"`
	Name    string `json:"name,omitempty"`
	SMILES  string `json:"smiles,omitempty"`
	Atoms   int    `json:"atoms"`
	Copies  int    `json:"copies"`
	File    string `json:"file,omitempty"`
	Skipped bool   `json:"skipped"`
	Reason  string `json:"reason,omitempty"`
}

// Written returns the residue names whose SD files were written.
func (r *Report) Written() []string {
	var names []string
	for _, l := range r.Ligands {
		if !l.Skipped {
			names = append(names, l.ResName)
		}
	}
	return names
}

// Skipped returns the residue names that were skipped.
func (r *Report) Skipped() []string {
	var names []string
	for _, l := range r.Ligands {
		if l.Skipped {
			names = append(names, l.ResName)
		}
	}
	return names
}

// WriteFile writes the report as indented JSON.
func (r *Report) WriteFile(fp string) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fp, append(b, '\n'), 0644)
}

// ReadReport reads a report written by WriteFile.
func ReadReport(fp string) (*Report, error) {
	b, err := os.ReadFile(fp)
	if err != nil {
		return nil, err
	}
	r := &Report{}
	if err := json.Unmarshal(b, r); err != nil {
		return nil, err
	}
	return r, nil
}
