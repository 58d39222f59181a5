package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TuftsBCB/ligsplit/internal/config"
	"github.com/TuftsBCB/ligsplit/internal/logging"
	"github.com/TuftsBCB/ligsplit/ligandexpo"
	"github.com/TuftsBCB/ligsplit/split"
)

// Build-time variables injected via ldflags.
var version = "dev"

type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ligsplit [flags] <pdb-file-or-id>",
		Short: "Split a protein-ligand complex into protein and ligand files",
		Long: "ligsplit writes the protein atoms of a PDB structure to <base>_protein.pdb\n" +
			"and each ligand residue to <base>_<RES>_ligand.sdf, with bond orders and\n" +
			"formal charges assigned from the Ligand Expo SMILES dictionary.\n\n" +
			"The argument is a PDB file, or a four character PDB id to download.",
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "config file path (YAML)")
	f.String("dictionary", config.DefaultDictionaryPath, "Ligand Expo SMILES dictionary file")
	f.String("dict-url", config.DefaultDictionaryURL, "URL to download the dictionary from when it is missing")
	f.String("pdb-url", config.DefaultPDBURL, "URL template for downloading structures by id")
	f.String("fetch-dir", "", "directory for downloaded structures (default: current directory)")
	f.Duration("timeout", config.DefaultFetchTimeout, "timeout for each download")
	f.StringP("out-dir", "o", "", "output directory (default: next to the input)")
	f.Bool("fasta", false, "also write protein chain sequences to <base>_protein.fasta")
	f.String("report", "", "write a JSON report of the run to this file")
	f.Bool("strict", false, "exit with an error if any ligand is skipped")
	f.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	f.String("log-format", config.DefaultLogFormat, "log format (console, json)")

	return cmd
}

func run(cmd *cobra.Command, opts *rootOptions, input string) error {
	cfg, err := config.Load(opts.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	defer logger.Sync()

	ctx := cmd.Context()
	client := &http.Client{Timeout: cfg.Fetch.Timeout}
	dict, err := ligandexpo.Load(ctx, ligandexpo.Options{
		Path:       cfg.Dictionary.Path,
		URL:        cfg.Dictionary.URL,
		HTTPClient: client,
		Logger:     logger.Named("ligandexpo"),
	})
	if err != nil {
		return err
	}

	s := split.New(cfg, dict, logger.Named("split"))
	s.HTTPClient = client
	report, err := s.Run(ctx, input)
	if report != nil {
		printSummary(cmd.OutOrStdout(), report)
	}
	return err
}

func printSummary(w io.Writer, r *split.Report) {
	fmt.Fprintf(w, "protein: %s (%d atoms)\n", r.Protein.File, r.Protein.Atoms)
	for _, l := range r.Ligands {
		if l.Skipped {
			fmt.Fprintf(w, "skipped: %s: %s\n", l.ResName, l.Reason)
			continue
		}
		fmt.Fprintf(w, "ligand:  %s (%d %s)\n", l.File, l.Copies, plural(l.Copies, "copy", "copies"))
	}
	if written := r.Written(); len(written) == 0 {
		fmt.Fprintln(w, "no ligands written")
	} else {
		fmt.Fprintf(w, "ligands: %s\n", strings.Join(written, ", "))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
