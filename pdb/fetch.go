package pdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/TuftsBCB/ligsplit/internal/fetch"
)

// DefaultURL is the RCSB download location. The %s verb is replaced with
// the upper case id code.
const DefaultURL = "https://files.rcsb.org/download/%s.pdb"

// FetchOptions controls how Open downloads entries given by id code.
type FetchOptions struct {
	// URL is a format string with a single %s verb. DefaultURL when empty.
	URL string

	// Dir is where downloaded files are written. The current directory
	// when empty.
	Dir string

	// Client is used for downloads. http.DefaultClient when nil.
	Client *http.Client
}

// IsIdCode returns true if s looks like a four character PDB id code: a
// digit followed by three alphanumeric characters.
func IsIdCode(s string) bool {
	if len(s) != 4 || !isDigit(s[0]) {
		return false
	}
	for i := 1; i < 4; i++ {
		c := s[i]
		if !isDigit(c) && !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}

// Open reads the PDB entry named by arg. If arg names an existing file, it
// is read. Otherwise, if arg is a PDB id code, a previously downloaded
// "<id>.pdb" in opts.Dir is read, or the entry is downloaded there first.
func Open(ctx context.Context, arg string, opts FetchOptions) (*Entry, error) {
	if _, err := os.Stat(arg); err == nil {
		return ReadFile(arg)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if !IsIdCode(arg) {
		return nil, fmt.Errorf("%s: %w", arg, os.ErrNotExist)
	}

	fp := filepath.Join(opts.Dir, strings.ToLower(arg)+".pdb")
	if _, err := os.Stat(fp); err == nil {
		return ReadFile(fp)
	}
	if err := Fetch(ctx, arg, fp, opts); err != nil {
		return nil, err
	}
	return ReadFile(fp)
}

// Fetch downloads the entry with the given id code to the file fp.
func Fetch(ctx context.Context, idCode, fp string, opts FetchOptions) error {
	format := opts.URL
	if format == "" {
		format = DefaultURL
	}
	url := fmt.Sprintf(format, strings.ToUpper(idCode))
	if _, err := fetch.ToFile(ctx, opts.Client, url, fp); err != nil {
		return fmt.Errorf("fetching PDB entry %s: %w", idCode, err)
	}
	return nil
}
