package ligandexpo

import (
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/TuftsBCB/ligsplit/internal/fetch"
	"github.com/TuftsBCB/ligsplit/internal/logging"
)

const (
	// DefaultPath is the file name the dictionary is stored under.
	DefaultPath = "Components-smiles-stereo-oe.smi"

	// DefaultURL is where the dictionary is downloaded from when it is not
	// found locally.
	DefaultURL = "http://ligand-expo.rcsb.org/dictionaries/" + DefaultPath
)

// ErrNotFound is returned by Get for residue names missing from the
// dictionary.
var ErrNotFound = errors.New("residue not in dictionary")

// Entry is one chemical component: its SMILES string, its three letter
// (or shorter) identifier and its name. Name may be empty.
type Entry struct {
	ID     string
	SMILES string
	Name   string
}

// Dictionary maps component identifiers to entries.
type Dictionary map[string]Entry

// Lookup returns the entry for a residue name. Names are matched exactly.
func (d Dictionary) Lookup(id string) (Entry, bool) {
	e, ok := d[id]
	return e, ok
}

// Get is like Lookup, but returns an error wrapping ErrNotFound for missing
// residue names.
func (d Dictionary) Get(id string) (Entry, error) {
	e, ok := d[id]
	if !ok {
		return Entry{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return e, nil
}

// IDs returns the identifiers in the dictionary in sorted order.
func (d Dictionary) IDs() []string {
	ids := make([]string, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Read reads a dictionary in the tab separated format used by Ligand Expo:
//
//	SMILES<TAB>ID<TAB>Name
//
// There is no header. Blank lines are skipped and the name may be missing.
// When an identifier appears more than once, the last line wins.
func Read(r io.Reader) (Dictionary, error) {
	d := make(Dictionary)
	buf := bufio.NewReader(r)
	for lineNum := 1; ; lineNum++ {
		line, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if entry, ok, perr := parseLine(line); perr != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, perr)
		} else if ok {
			d[entry.ID] = entry
		}
		if err == io.EOF {
			return d, nil
		}
	}
}

func parseLine(line string) (Entry, bool, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return Entry{}, false, nil
	}
	fields := strings.Split(line, "\t")
	if len(fields) < 2 {
		return Entry{}, false, fmt.Errorf("expected SMILES and ID separated by "+
			"a tab, got %q", line)
	}
	e := Entry{
		SMILES: strings.TrimSpace(fields[0]),
		ID:     strings.TrimSpace(fields[1]),
	}
	if len(fields) > 2 {
		e.Name = strings.TrimSpace(fields[2])
	}
	if e.ID == "" {
		return Entry{}, false, fmt.Errorf("missing ID in %q", line)
	}
	return e, true, nil
}

// ReadFile reads a dictionary from a file. Files ending in ".gz" are
// decompressed.
func ReadFile(fp string) (Dictionary, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(fp, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fp, err)
		}
		defer gz.Close()
		r = gz
	}
	d, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fp, err)
	}
	return d, nil
}

// Fetch downloads the dictionary at url to the file fp.
func Fetch(ctx context.Context, url, fp string) error {
	return fetchWith(ctx, nil, url, fp)
}

func fetchWith(ctx context.Context, client *http.Client, url, fp string) error {
	if _, err := fetch.ToFile(ctx, client, url, fp); err != nil {
		return fmt.Errorf("fetching dictionary: %w", err)
	}
	return nil
}

// Options controls Load.
type Options struct {
	// Path is the local dictionary file. DefaultPath when empty.
	Path string

	// URL is downloaded to Path when Path does not exist. DefaultURL when
	// empty.
	URL string

	// HTTPClient is used for the download. http.DefaultClient when nil.
	HTTPClient *http.Client

	Logger logging.Logger
}

// Load reads the dictionary at opts.Path, downloading it from opts.URL
// first if the file does not exist.
func Load(ctx context.Context, opts Options) (Dictionary, error) {
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}

	if _, err := os.Stat(opts.Path); errors.Is(err, os.ErrNotExist) {
		log.Info("dictionary not found, downloading",
			logging.String("path", opts.Path),
			logging.String("url", opts.URL))
		if err := fetchWith(ctx, opts.HTTPClient, opts.URL, opts.Path); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	d, err := ReadFile(opts.Path)
	if err != nil {
		return nil, err
	}
	log.Debug("dictionary loaded",
		logging.String("path", opts.Path),
		logging.Int("entries", len(d)))
	return d, nil
}
