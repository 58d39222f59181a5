package ligandexpo

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/TuftsBCB/ligsplit/internal/logging"
)

const testDict = "CC(=O)[O-]\tACT\tACETATE ION\n" +
	"c1ccccc1\tBNZ\tBENZENE\n" +
	"\n" +
	"[Zn+2]\tZN\n" +
	"O\tHOH\tWATER\r\n" +
	"CC(=O)O\tACT\tACETIC ACID"

func TestRead(t *testing.T) {
	d, err := Read(strings.NewReader(testDict))
	require.NoError(t, err)
	assert.Len(t, d, 4)
	assert.Equal(t, []string{"ACT", "BNZ", "HOH", "ZN"}, d.IDs())

	zn, ok := d.Lookup("ZN")
	require.True(t, ok)
	assert.Equal(t, Entry{ID: "ZN", SMILES: "[Zn+2]"}, zn)

	// The later ACT line wins.
	act, ok := d.Lookup("ACT")
	require.True(t, ok)
	assert.Equal(t, "CC(=O)O", act.SMILES)
	assert.Equal(t, "ACETIC ACID", act.Name)

	hoh, _ := d.Lookup("HOH")
	assert.Equal(t, "WATER", hoh.Name)

	_, ok = d.Lookup("act")
	assert.False(t, ok)

	_, err = d.Get("UNL")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "UNL")
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader("c1ccccc1\tBNZ\nno tabs here\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = Read(strings.NewReader("C\t\tNAME\n"))
	assert.Error(t, err)

	d, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, d)
}

func TestReadFileGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(testDict))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	fp := filepath.Join(t.TempDir(), "components.smi.gz")
	require.NoError(t, os.WriteFile(fp, buf.Bytes(), 0644))
	d, err := ReadFile(fp)
	require.NoError(t, err)
	assert.Len(t, d, 4)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.smi"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func dictServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/old.smi", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dictionaries/components.smi", http.StatusFound)
	})
	mux.HandleFunc("/dictionaries/components.smi", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Write([]byte(testDict))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadDownloads(t *testing.T) {
	var hits int32
	srv := dictServer(t, &hits)

	core, logs := observer.New(zap.DebugLevel)
	fp := filepath.Join(t.TempDir(), "cache", "components.smi")
	opts := Options{
		Path:       fp,
		URL:        srv.URL + "/old.smi",
		HTTPClient: srv.Client(),
		Logger:     logging.NewLoggerFromCore(core),
	}

	d, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Len(t, d, 4)
	assert.FileExists(t, fp)

	downloads := logs.FilterMessage("dictionary not found, downloading").All()
	require.Len(t, downloads, 1)
	assert.Equal(t, srv.URL+"/old.smi", downloads[0].ContextMap()["url"])

	// The second load reads the local copy.
	_, err = Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, 1, logs.FilterMessage("dictionary not found, downloading").Len())
	assert.Equal(t, 2, logs.FilterMessage("dictionary loaded").Len())
}

func TestLoadLocal(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "components.smi")
	require.NoError(t, os.WriteFile(fp, []byte("C\tMET\tMETHANE\n"), 0644))

	d, err := Load(context.Background(), Options{Path: fp, URL: "http://invalid.test/x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"MET"}, d.IDs())
}

func TestLoadDownloadFails(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	fp := filepath.Join(t.TempDir(), "components.smi")
	_, err := Load(context.Background(), Options{
		Path: fp, URL: srv.URL + "/x.smi", HTTPClient: srv.Client(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching dictionary")
	assert.NoFileExists(t, fp)
}

func TestFetch(t *testing.T) {
	var hits int32
	srv := dictServer(t, &hits)

	fp := filepath.Join(t.TempDir(), "components.smi")
	require.NoError(t, Fetch(context.Background(), srv.URL+"/dictionaries/components.smi", fp))
	raw, err := os.ReadFile(fp)
	require.NoError(t, err)
	assert.Equal(t, testDict, string(raw))
}
