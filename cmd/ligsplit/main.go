// Command ligsplit splits a protein-ligand complex into a protein PDB file
// and one SD file per ligand, with bond orders taken from the Ligand Expo
// SMILES dictionary.
//
// Usage:
//
//	ligsplit [flags] <pdb-file-or-id>
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
