package split

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TuftsBCB/ligsplit/fasta"
	"github.com/TuftsBCB/ligsplit/internal/config"
	"github.com/TuftsBCB/ligsplit/internal/logging"
	"github.com/TuftsBCB/ligsplit/ligandexpo"
	"github.com/TuftsBCB/ligsplit/mol"
	"github.com/TuftsBCB/ligsplit/pdb"
	"github.com/TuftsBCB/ligsplit/sdf"
	"github.com/TuftsBCB/ligsplit/smiles"
)

// ErrSkipped is returned by Run in strict mode when at least one ligand
// could not be written.
var ErrSkipped = errors.New("ligands skipped")

// Splitter splits structures into a protein file and one SD file per
// ligand residue name.
type Splitter struct {
	Config     *config.Config
	Logger     logging.Logger
	Dictionary ligandexpo.Dictionary

	// HTTPClient is used to download structures given by id code.
	// http.DefaultClient when nil.
	HTTPClient *http.Client
}

// New returns a Splitter. A nil logger discards all output.
func New(cfg *config.Config, dict ligandexpo.Dictionary, logger logging.Logger) *Splitter {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Splitter{Config: cfg, Logger: logger, Dictionary: dict}
}

// OutputBase returns the prefix of all files written for input: the input
// with its extension removed, moved into dir when dir is not empty.
func OutputBase(input, dir string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if dir != "" {
		base = filepath.Join(dir, filepath.Base(base))
	}
	return base
}

// Run splits the structure named by input, which is a PDB file or a PDB id
// code. The protein atoms are written to "<base>_protein.pdb" and each
// distinct ligand residue to "<base>_<RES>_ligand.sdf".
//
// A ligand that cannot be written is skipped and recorded in the report;
// the remaining ligands are still processed. In strict mode, an error
// wrapping ErrSkipped is then returned along with the report.
func (s *Splitter) Run(ctx context.Context, input string) (*Report, error) {
	cfg := s.Config
	report := &Report{
		RunID:   uuid.New().String(),
		Input:   input,
		Started: time.Now(),
	}
	log := s.Logger.With(logging.String("run_id", report.RunID))

	entry, err := pdb.Open(ctx, input, pdb.FetchOptions{
		URL:    cfg.Fetch.PDBURL,
		Dir:    cfg.Fetch.Dir,
		Client: s.HTTPClient,
	})
	if err != nil {
		return nil, err
	}
	report.IdCode = entry.IdCode
	log.Debug("structure read",
		logging.String("path", entry.Path),
		logging.Int("atoms", len(entry.Atoms)))

	if cfg.Output.Dir != "" {
		if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
			return nil, err
		}
	}
	base := OutputBase(input, cfg.Output.Dir)

	protein := entry.Select(pdb.Protein)
	if protein.Empty() {
		log.Warn("no protein atoms found", logging.String("input", input))
	}
	report.Protein = ProteinResult{
		File:     base + "_protein.pdb",
		Atoms:    protein.Len(),
		Residues: protein.ResNames(),
	}
	if err := pdb.WriteFile(report.Protein.File, protein); err != nil {
		return nil, fmt.Errorf("writing protein: %w", err)
	}
	log.Info("wrote " + report.Protein.File)

	if cfg.Output.FASTA {
		fp := base + "_protein.fasta"
		if err := fasta.WriteFile(fp, protein.Sequences()); err != nil {
			return nil, fmt.Errorf("writing protein sequences: %w", err)
		}
		report.Protein.FASTAFile = fp
		log.Info("wrote " + fp)
	}

	ligands := entry.Select(pdb.Ligand)
	for _, res := range ligands.ResNames() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := s.processLigand(log, ligands.Select(pdb.ResName(res)), res, base)
		if err != nil {
			result.Skipped = true
			result.Reason = err.Error()
			log.Warn("ligand skipped",
				logging.String("residue", res),
				logging.Err(err))
		}
		report.Ligands = append(report.Ligands, result)
	}
	report.Elapsed = time.Since(report.Started).String()

	if cfg.Output.Report != "" {
		if err := report.WriteFile(cfg.Output.Report); err != nil {
			return report, fmt.Errorf("writing report: %w", err)
		}
		log.Info("wrote " + cfg.Output.Report)
	}

	if skipped := report.Skipped(); cfg.Strict && len(skipped) > 0 {
		return report, fmt.Errorf("%w: %s", ErrSkipped, strings.Join(skipped, ", "))
	}
	return report, nil
}

// ProcessLigand assigns bond orders to the atoms of one ligand residue name,
// using its SMILES from the dictionary as a template, and writes them to
// "<base>_<res>_ligand.sdf". Every copy of the residue in the selection is
// written as part of the same molecule.
func (s *Splitter) ProcessLigand(sel *pdb.Selection, res, base string) (LigandResult, error) {
	return s.processLigand(s.Logger, sel, res, base)
}

func (s *Splitter) processLigand(log logging.Logger, sel *pdb.Selection, res, base string) (LigandResult, error) {
	result := LigandResult{ResName: res, Atoms: sel.Len()}

	dictEntry, err := s.Dictionary.Get(res)
	if err != nil {
		return result, err
	}
	result.Name = dictEntry.Name
	result.SMILES = dictEntry.SMILES

	template, err := smiles.Parse(dictEntry.SMILES)
	if err != nil {
		return result, fmt.Errorf("%s: template: %w", res, err)
	}
	structure := mol.FromPDB(res, sel.Atoms, sel.Conect())
	m, copies, err := mol.AssignBondOrdersFromTemplate(template, structure)
	if err != nil {
		return result, fmt.Errorf("%s: %w", res, err)
	}
	result.Copies = copies
	if copies > 1 {
		log.Warn("template matched more than once",
			logging.String("residue", res),
			logging.Int("copies", copies))
	}
	if unmatched := len(m.Atoms) - copies*len(template.Atoms); unmatched > 0 {
		log.Warn("structure atoms not covered by template",
			logging.String("residue", res),
			logging.Int("atoms", unmatched))
	}

	fp := fmt.Sprintf("%s_%s_ligand.sdf", base, res)
	if err := sdf.WriteFile(fp, m); err != nil {
		return result, fmt.Errorf("%s: %w", res, err)
	}
	result.File = fp
	log.Info("wrote " + fp)
	return result, nil
}
