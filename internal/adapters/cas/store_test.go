package cas_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pywf/internal/adapters/cas"
	"go.trai.ch/pywf/internal/core/domain"
)

func TestStore_GetAbsent(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "record.json"))
	require.NoError(t, err)

	rec, err := store.Get()
	require.NoError(t, err)
	assert.Nil(t, rec, "absent record must be (nil, nil), not an error")
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.json")
	store, err := cas.NewStore(path)
	require.NoError(t, err)

	want := domain.NewExportRecord([]byte("packageA==1.0.0"))
	require.NoError(t, store.Put(want))

	got, err := store.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Hash, got.Hash, "hash must round-trip verbatim")
	assert.Equal(t, domain.RecordDescription, got.Description)
}

func TestStore_PutIntoMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pywf", "record.json")
	store, err := cas.NewStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Put(domain.NewExportRecord([]byte("x"))))

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestStore_PutOverwritesWhole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.json")
	store, err := cas.NewStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Put(domain.NewExportRecord([]byte("v1"))))
	require.NoError(t, store.Put(domain.NewExportRecord([]byte("v2"))))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, domain.Digest([]byte("v2")), raw["hash"])
	assert.Len(t, raw, 2, "record is replaced, never merged")
}

func TestStore_GetCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := cas.NewStore(path)
	require.NoError(t, err)

	_, err = store.Get()
	require.ErrorIs(t, err, domain.ErrRecordCorrupt)
}

func TestStore_GetMissingHashField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"description": "no hash here"}`), 0o600))

	store, err := cas.NewStore(path)
	require.NoError(t, err)

	_, err = store.Get()
	require.ErrorIs(t, err, domain.ErrRecordCorrupt)
}

func TestStore_FileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.json")
	store, err := cas.NewStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Put(domain.NewExportRecord([]byte("packageA==1.0.0"))))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw struct {
		Hash        string `json:"hash"`
		Description string `json:"description"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Regexp(t, "^[0-9a-f]{64}$", raw.Hash)
	assert.NotEmpty(t, raw.Description)
}
